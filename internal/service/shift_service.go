package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jacksen-ng/shift-agent/internal/dto"
	"github.com/jacksen-ng/shift-agent/internal/model"
	"github.com/jacksen-ng/shift-agent/internal/repository"
)

// ── 班次模块业务错误 ──

var (
	ErrEditShiftNotFound = errors.New("草稿班次不存在")
	ErrShiftDayInPast    = errors.New("不能为过去的日期新增班次")
	ErrWorkerNotFound    = errors.New("员工不存在")
)

// ShiftService 班次生命周期业务接口
type ShiftService interface {
	// 员工提交希望班次，同时播种草稿
	SubmitShifts(ctx context.Context, req *dto.SubmitShiftRequest) error
	// 店铺草稿一览（店主视图）
	GetEditShifts(ctx context.Context, companyID int) (*dto.EditShiftListResponse, error)
	// 店主批量增删改草稿
	EditShifts(ctx context.Context, req *dto.EditShiftRequest) (*dto.EditShiftListResponse, error)
	// 发布：把未来日期的草稿晋升为确定班次，可安全重放
	CompleteShift(ctx context.Context, companyID int) (*dto.CompleteShiftResponse, error)
	// 确定班次一览（首页）
	GetDecisionShifts(ctx context.Context, companyID int) (*dto.DecisionShiftResponse, error)
}

type shiftService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewShiftService 创建 ShiftService 实例
func NewShiftService(repo *repository.Repository, logger *zap.Logger) ShiftService {
	return &shiftService{repo: repo, logger: logger}
}

func (s *shiftService) SubmitShifts(ctx context.Context, req *dto.SubmitShiftRequest) error {
	member := req.CompanyMemberInfo

	if _, err := s.repo.Worker.GetUserByID(ctx, member.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkerNotFound
		}
		s.logger.Error("查询员工失败", zap.Int("user_id", member.UserID), zap.Error(err))
		return err
	}

	rows := make([]model.SubmittedShift, 0, len(req.SubmitShift))
	for _, slot := range req.SubmitShift {
		day, err := parseDay(slot.Day)
		if err != nil {
			return err
		}
		start, err := normalizeClock(slot.StartTime)
		if err != nil {
			return err
		}
		finish, err := normalizeClock(slot.FinishTime)
		if err != nil {
			return err
		}
		rows = append(rows, model.SubmittedShift{
			UserID:     member.UserID,
			CompanyID:  member.CompanyID,
			Day:        day,
			StartTime:  start,
			FinishTime: finish,
		})
	}

	if err := s.repo.Shift.SubmitShifts(ctx, rows); err != nil {
		s.logger.Error("提交希望班次失败", zap.Int("user_id", member.UserID), zap.Error(err))
		return err
	}
	s.logger.Info("希望班次已提交",
		zap.Int("user_id", member.UserID),
		zap.Int("company_id", member.CompanyID),
		zap.Int("shifts", len(rows)))
	return nil
}

func (s *shiftService) GetEditShifts(ctx context.Context, companyID int) (*dto.EditShiftListResponse, error) {
	drafts, err := s.repo.Shift.ListDraftsByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("查询草稿失败", zap.Int("company_id", companyID), zap.Error(err))
		return nil, err
	}

	names, err := s.workerNames(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := &dto.EditShiftListResponse{EditShift: make([]dto.ShiftEntryResponse, 0, len(drafts))}
	for _, d := range drafts {
		resp.EditShift = append(resp.EditShift, dto.ShiftEntryResponse{
			ShiftID:    d.EditShiftID,
			UserID:     d.UserID,
			Name:       names[d.UserID],
			Day:        formatDay(d.Day),
			StartTime:  d.StartTime,
			FinishTime: d.FinishTime,
		})
	}
	return resp, nil
}

func (s *shiftService) EditShifts(ctx context.Context, req *dto.EditShiftRequest) (*dto.EditShiftListResponse, error) {
	// 新增
	adds := make([]model.EditShift, 0, len(req.AddEditShift))
	for _, a := range req.AddEditShift {
		day, err := parseDay(a.Day)
		if err != nil {
			return nil, err
		}
		if day.Before(today()) {
			return nil, ErrShiftDayInPast
		}
		start, err := normalizeClock(a.StartTime)
		if err != nil {
			return nil, err
		}
		finish, err := normalizeClock(a.FinishTime)
		if err != nil {
			return nil, err
		}
		adds = append(adds, model.EditShift{
			UserID:     a.UserID,
			CompanyID:  req.CompanyID,
			Day:        day,
			StartTime:  start,
			FinishTime: finish,
		})
	}
	if err := s.repo.Shift.InsertDrafts(ctx, adds); err != nil {
		s.logger.Error("新增草稿失败", zap.Int("company_id", req.CompanyID), zap.Error(err))
		return nil, err
	}

	// 修改
	for _, u := range req.UpdateEditShift {
		start, err := normalizeClock(u.StartTime)
		if err != nil {
			return nil, err
		}
		finish, err := normalizeClock(u.FinishTime)
		if err != nil {
			return nil, err
		}
		if err := s.repo.Shift.UpdateDraftTimes(ctx, u.EditShiftID, start, finish); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrEditShiftNotFound
			}
			s.logger.Error("修改草稿失败", zap.Int("edit_shift_id", u.EditShiftID), zap.Error(err))
			return nil, err
		}
	}

	// 删除
	if err := s.repo.Shift.DeleteDrafts(ctx, req.DeleteEditShift); err != nil {
		s.logger.Error("删除草稿失败", zap.Int("company_id", req.CompanyID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("草稿已编辑",
		zap.Int("company_id", req.CompanyID),
		zap.Int("added", len(adds)),
		zap.Int("updated", len(req.UpdateEditShift)),
		zap.Int("deleted", len(req.DeleteEditShift)))

	return s.GetEditShifts(ctx, req.CompanyID)
}

func (s *shiftService) CompleteShift(ctx context.Context, companyID int) (*dto.CompleteShiftResponse, error) {
	promoted, err := s.repo.Shift.PromoteFutureDrafts(ctx, companyID, today())
	if err != nil {
		s.logger.Error("发布排班失败", zap.Int("company_id", companyID), zap.Error(err))
		return nil, err
	}
	s.logger.Info("排班已发布", zap.Int("company_id", companyID), zap.Int("promoted", promoted))
	return &dto.CompleteShiftResponse{Promoted: promoted}, nil
}

func (s *shiftService) GetDecisionShifts(ctx context.Context, companyID int) (*dto.DecisionShiftResponse, error) {
	decisions, err := s.repo.Shift.ListDecisionsByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("查询确定班次失败", zap.Int("company_id", companyID), zap.Error(err))
		return nil, err
	}

	names, err := s.workerNames(ctx, companyID)
	if err != nil {
		return nil, err
	}

	restDays, err := s.repo.Company.ListRestDays(ctx, companyID)
	if err != nil {
		s.logger.Error("查询定休日失败", zap.Int("company_id", companyID), zap.Error(err))
		return nil, err
	}

	resp := &dto.DecisionShiftResponse{
		DecisionShift: make([]dto.ShiftEntryResponse, 0, len(decisions)),
		RestDay:       make([]string, 0, len(restDays)),
	}
	for _, rd := range restDays {
		resp.RestDay = append(resp.RestDay, formatDay(rd.RestDay))
	}
	for _, d := range decisions {
		resp.DecisionShift = append(resp.DecisionShift, dto.ShiftEntryResponse{
			ShiftID:    d.DecisionShiftID,
			UserID:     d.UserID,
			Name:       names[d.UserID],
			Day:        formatDay(d.Day),
			StartTime:  d.StartTime,
			FinishTime: d.FinishTime,
		})
	}
	return resp, nil
}

// workerNames 返回 user_id → 姓名 映射，用于响应拼装
func (s *shiftService) workerNames(ctx context.Context, companyID int) (map[int]string, error) {
	profiles, err := s.repo.Worker.ListProfilesByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("查询员工列表失败", zap.Int("company_id", companyID), zap.Error(err))
		return nil, err
	}
	names := make(map[int]string, len(profiles))
	for _, p := range profiles {
		names[p.UserID] = p.Name
	}
	return names, nil
}
