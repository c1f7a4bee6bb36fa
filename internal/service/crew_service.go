package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jacksen-ng/shift-agent/internal/dto"
	"github.com/jacksen-ng/shift-agent/internal/repository"
)

// ── 员工模块业务错误 ──

var (
	ErrCrewNotFound = errors.New("员工档案不存在")
)

// CrewService 员工档案业务接口
type CrewService interface {
	// 获取店铺全部员工档案
	GetCrewInfo(ctx context.Context, companyID int) (*dto.CrewInfoResponse, error)
	// 编辑单个员工档案
	EditCrewInfo(ctx context.Context, req *dto.EditCrewInfoRequest) error
}

type crewService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCrewService 创建 CrewService 实例
func NewCrewService(repo *repository.Repository, logger *zap.Logger) CrewService {
	return &crewService{repo: repo, logger: logger}
}

func (s *crewService) GetCrewInfo(ctx context.Context, companyID int) (*dto.CrewInfoResponse, error) {
	profiles, err := s.repo.Worker.ListProfilesByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("查询员工列表失败", zap.Int("company_id", companyID), zap.Error(err))
		return nil, err
	}

	resp := &dto.CrewInfoResponse{CrewInfo: make([]dto.CrewProfileResponse, 0, len(profiles))}
	for _, p := range profiles {
		resp.CrewInfo = append(resp.CrewInfo, dto.CrewProfileResponse{
			UserID:     p.UserID,
			Name:       p.Name,
			Age:        p.Age,
			Phone:      p.Phone,
			Position:   p.Position,
			Evaluate:   p.Evaluate,
			Experience: p.Experience,
			HourPay:    p.HourPay,
			Post:       p.Post,
		})
	}
	return resp, nil
}

func (s *crewService) EditCrewInfo(ctx context.Context, req *dto.EditCrewInfoRequest) error {
	profile, err := s.repo.Worker.GetProfileByUserID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCrewNotFound
		}
		s.logger.Error("查询员工档案失败", zap.Int("user_id", req.UserID), zap.Error(err))
		return err
	}

	profile.Name = req.Name
	profile.Age = req.Age
	profile.Phone = req.Phone
	profile.Position = req.Position
	profile.Evaluate = req.Evaluate
	profile.Experience = req.Experience
	profile.HourPay = req.HourPay
	profile.Post = req.Post

	if err := s.repo.Worker.UpdateProfile(ctx, profile); err != nil {
		s.logger.Error("更新员工档案失败", zap.Int("user_id", req.UserID), zap.Error(err))
		return err
	}
	s.logger.Info("员工档案已更新", zap.Int("user_id", req.UserID))
	return nil
}
