package service

import (
	"go.uber.org/zap"

	"github.com/jacksen-ng/shift-agent/config"
	"github.com/jacksen-ng/shift-agent/internal/oracle"
	"github.com/jacksen-ng/shift-agent/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Company CompanyService
	Crew    CrewService
	Shift   ShiftService
	Refine  RefineService
	Export  ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	lease WindowLease,
	oracleClient oracle.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Company: NewCompanyService(repo, logger),
		Crew:    NewCrewService(repo, logger),
		Shift:   NewShiftService(repo, logger),
		Refine:  NewRefineService(&cfg.Schedule, repo, lease, oracleClient, logger),
		Export:  NewExportService(repo, logger),
	}
}
