package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jacksen-ng/shift-agent/internal/dto"
	"github.com/jacksen-ng/shift-agent/internal/model"
	"github.com/jacksen-ng/shift-agent/internal/repository"
)

// ── 店铺模块业务错误 ──

var (
	ErrCompanyNotFound = errors.New("店铺不存在")
)

// CompanyService 店铺信息业务接口
type CompanyService interface {
	// 获取店铺信息（含定休日与岗位）
	GetInfo(ctx context.Context, companyID int) (*dto.CompanyInfoResponse, error)
	// 编辑店铺信息：定休日只替换今天及以后的行，岗位整表替换
	EditInfo(ctx context.Context, req *dto.EditCompanyInfoRequest) error
}

type companyService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCompanyService 创建 CompanyService 实例
func NewCompanyService(repo *repository.Repository, logger *zap.Logger) CompanyService {
	return &companyService{repo: repo, logger: logger}
}

func (s *companyService) GetInfo(ctx context.Context, companyID int) (*dto.CompanyInfoResponse, error) {
	company, err := s.repo.Company.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("查询店铺失败", zap.Error(err))
		return nil, err
	}

	restDays, err := s.repo.Company.ListRestDays(ctx, companyID)
	if err != nil {
		s.logger.Error("查询定休日失败", zap.Error(err))
		return nil, err
	}
	positions, err := s.repo.Company.ListPositions(ctx, companyID)
	if err != nil {
		s.logger.Error("查询岗位失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.CompanyInfoResponse{
		CompanyInfo: dto.CompanyInfoPayload{
			CompanyID:   company.CompanyID,
			CompanyName: company.CompanyName,
			StoreLocate: company.StoreLocate,
			OpenTime:    company.OpenTime,
			CloseTime:   company.CloseTime,
			TargetSales: company.TargetSales,
			LaborCost:   company.LaborCost,
			Comment:     company.Comment,
		},
		RestDay:  make([]string, 0, len(restDays)),
		Position: make([]string, 0, len(positions)),
	}
	for _, d := range restDays {
		resp.RestDay = append(resp.RestDay, formatDay(d.RestDay))
	}
	for _, p := range positions {
		resp.Position = append(resp.Position, p.PositionName)
	}
	return resp, nil
}

func (s *companyService) EditInfo(ctx context.Context, req *dto.EditCompanyInfoRequest) error {
	info := req.CompanyInfo

	// 存在性校验
	if _, err := s.repo.Company.GetByID(ctx, info.CompanyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCompanyNotFound
		}
		s.logger.Error("查询店铺失败", zap.Error(err))
		return err
	}

	openTime, err := normalizeClock(info.OpenTime)
	if err != nil {
		return err
	}
	closeTime, err := normalizeClock(info.CloseTime)
	if err != nil {
		return err
	}

	restDays := make([]time.Time, 0, len(req.RestDay))
	for _, d := range req.RestDay {
		day, err := parseDay(d)
		if err != nil {
			return err
		}
		restDays = append(restDays, day)
	}

	company := &model.Company{
		CompanyID:   info.CompanyID,
		CompanyName: info.CompanyName,
		StoreLocate: info.StoreLocate,
		OpenTime:    openTime,
		CloseTime:   closeTime,
		TargetSales: info.TargetSales,
		LaborCost:   info.LaborCost,
		Comment:     info.Comment,
	}

	if err := s.repo.Company.UpdateInfo(ctx, company, today(), restDays, req.Position); err != nil {
		s.logger.Error("更新店铺信息失败", zap.Int("company_id", info.CompanyID), zap.Error(err))
		return err
	}
	s.logger.Info("店铺信息已更新",
		zap.Int("company_id", info.CompanyID),
		zap.Int("rest_days", len(restDays)),
		zap.Int("positions", len(req.Position)))
	return nil
}
