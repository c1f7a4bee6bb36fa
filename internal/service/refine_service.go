package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jacksen-ng/shift-agent/config"
	"github.com/jacksen-ng/shift-agent/internal/dto"
	"github.com/jacksen-ng/shift-agent/internal/model"
	"github.com/jacksen-ng/shift-agent/internal/oracle"
	"github.com/jacksen-ng/shift-agent/internal/repository"
	pkgerrors "github.com/jacksen-ng/shift-agent/pkg/errors"
)

// ── 排班生成模块业务错误 ──

var (
	ErrNoSubmittedShifts = errors.New("窗口内没有员工提交的希望班次")
	ErrNoDecisionShifts  = errors.New("窗口内没有已发布的确定班次")
)

// WindowLease 排班窗口租约
// 同一店铺同一时刻只允许一个生成循环在跑，*redis.Client 满足该接口
type WindowLease interface {
	AcquireWindowLease(ctx context.Context, companyID int, ttl time.Duration) (string, bool, error)
	ReleaseWindowLease(ctx context.Context, companyID int, token string) error
}

// RefineService 生成→评估→修正 循环与最终评估
type RefineService interface {
	// CreateShift 对窗口执行完整的生成循环，把最优候选整体写入草稿表
	CreateShift(ctx context.Context, req *dto.GeminiCreateShiftRequest) (*dto.GeminiCreateShiftResponse, error)
	// EvaluateShift 对已发布的确定班次做最终评估并追加进评价历史
	EvaluateShift(ctx context.Context, req *dto.GeminiEvaluateShiftRequest) (*dto.GeminiEvaluateShiftResponse, error)
}

type refineService struct {
	repo      *repository.Repository
	lease     WindowLease
	generator *oracle.Generator
	evaluator *oracle.Evaluator
	reviser   *oracle.Reviser
	revisions int
	leaseTTL  time.Duration
	logger    *zap.Logger
}

// NewRefineService 创建 RefineService 实例
func NewRefineService(
	cfg *config.ScheduleConfig,
	repo *repository.Repository,
	lease WindowLease,
	client oracle.Client,
	logger *zap.Logger,
) RefineService {
	return &refineService{
		repo:      repo,
		lease:     lease,
		generator: oracle.NewGenerator(client, logger),
		evaluator: oracle.NewEvaluator(client, logger),
		reviser:   oracle.NewReviser(client, logger),
		revisions: cfg.Revisions,
		leaseTTL:  cfg.LeaseTTL,
		logger:    logger,
	}
}

// ════════════════════════════════════════════════════════════
// CreateShift — 生成 → {评估 → 修正} × N → 择优落库
// ════════════════════════════════════════════════════════════

func (s *refineService) CreateShift(ctx context.Context, req *dto.GeminiCreateShiftRequest) (*dto.GeminiCreateShiftResponse, error) {
	from, to, err := parseWindow(req.FirstDay, req.LastDay)
	if err != nil {
		return nil, err
	}

	// 窗口租约：同店铺并发生成会互相覆盖草稿，必须串行
	token, ok, err := s.lease.AcquireWindowLease(ctx, req.CompanyID, s.leaseTTL)
	if err != nil {
		s.logger.Error("获取窗口租约失败", zap.Int("company_id", req.CompanyID), zap.Error(err))
		return nil, err
	}
	if !ok {
		return nil, pkgerrors.ErrWindowLeaseHeld
	}
	defer func() {
		if err := s.lease.ReleaseWindowLease(context.WithoutCancel(ctx), req.CompanyID, token); err != nil {
			s.logger.Warn("释放窗口租约失败", zap.Int("company_id", req.CompanyID), zap.Error(err))
		}
	}()

	sc, err := s.assembleContext(ctx, req.CompanyID, from, to, req.Comment, false)
	if err != nil {
		return nil, err
	}
	if len(sc.SubmittedShifts) == 0 {
		return nil, ErrNoSubmittedShifts
	}

	// 初版
	candidate, err := s.generator.Generate(ctx, sc)
	if err != nil {
		return nil, err
	}
	eval, err := s.evaluator.Evaluate(ctx, sc, candidate)
	if err != nil {
		return nil, err
	}
	best, bestEval := candidate, eval
	rounds := 1

	// 修正循环，末轮修正结果同样参与评估
	for i := 0; i < s.revisions; i++ {
		revised, err := s.reviser.Revise(ctx, sc, candidate, eval.Feedback)
		if err != nil {
			return nil, err
		}
		eval, err = s.evaluator.Evaluate(ctx, sc, revised)
		if err != nil {
			return nil, err
		}
		rounds++
		if eval.Score > bestEval.Score {
			best, bestEval = revised, eval
		}
		candidate = revised
	}

	// 占位行只报告不落库
	rows := make([]model.EditShift, 0, len(best))
	openSlots := make([]dto.OpenSlotResponse, 0)
	for _, e := range best {
		if e.Unfilled {
			openSlots = append(openSlots, dto.OpenSlotResponse{
				Day:        e.Day,
				StartTime:  e.StartTime,
				FinishTime: e.FinishTime,
			})
			continue
		}
		day, err := parseDay(e.Day)
		if err != nil {
			return nil, err
		}
		rows = append(rows, model.EditShift{
			UserID:     e.UserID,
			CompanyID:  req.CompanyID,
			Day:        day,
			StartTime:  e.StartTime,
			FinishTime: e.FinishTime,
		})
	}

	if err := s.repo.Shift.ReplaceDraftWindow(ctx, req.CompanyID, from, to, rows); err != nil {
		s.logger.Error("替换窗口草稿失败", zap.Int("company_id", req.CompanyID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("排班生成完成",
		zap.Int("company_id", req.CompanyID),
		zap.String("window", req.FirstDay+".."+req.LastDay),
		zap.Int("score", bestEval.Score),
		zap.Int("rounds", rounds),
		zap.Int("entries", len(rows)),
		zap.Int("open_slots", len(openSlots)))

	return s.buildCreateResponse(ctx, req.CompanyID, from, to, openSlots, bestEval, rounds)
}

func (s *refineService) buildCreateResponse(
	ctx context.Context,
	companyID int,
	from, to time.Time,
	openSlots []dto.OpenSlotResponse,
	eval *oracle.Evaluation,
	rounds int,
) (*dto.GeminiCreateShiftResponse, error) {
	drafts, err := s.repo.Shift.ListDraftsInWindow(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}
	profiles, err := s.repo.Worker.ListProfilesByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	names := make(map[int]string, len(profiles))
	for _, p := range profiles {
		names[p.UserID] = p.Name
	}

	entries := make([]dto.ShiftEntryResponse, 0, len(drafts))
	for _, d := range drafts {
		entries = append(entries, dto.ShiftEntryResponse{
			ShiftID:    d.EditShiftID,
			UserID:     d.UserID,
			Name:       names[d.UserID],
			Day:        formatDay(d.Day),
			StartTime:  d.StartTime,
			FinishTime: d.FinishTime,
		})
	}
	return &dto.GeminiCreateShiftResponse{
		EditShift: entries,
		OpenSlots: openSlots,
		Score:     eval.Score,
		Feedback:  eval.Feedback,
		Rounds:    rounds,
	}, nil
}

// ════════════════════════════════════════════════════════════
// EvaluateShift — 对确定班次的最终评估
// ════════════════════════════════════════════════════════════

func (s *refineService) EvaluateShift(ctx context.Context, req *dto.GeminiEvaluateShiftRequest) (*dto.GeminiEvaluateShiftResponse, error) {
	from, to, err := parseWindow(req.FirstDay, req.LastDay)
	if err != nil {
		return nil, err
	}

	// 最终评估附带全部评价历史，让模型参照过往周期
	sc, err := s.assembleContext(ctx, req.CompanyID, from, to, "", true)
	if err != nil {
		return nil, err
	}

	decisions, err := s.repo.Shift.ListDecisionsInWindow(ctx, req.CompanyID, from, to)
	if err != nil {
		s.logger.Error("查询确定班次失败", zap.Int("company_id", req.CompanyID), zap.Error(err))
		return nil, err
	}
	if len(decisions) == 0 {
		return nil, ErrNoDecisionShifts
	}

	candidate := make([]oracle.DraftEntry, 0, len(decisions))
	for _, d := range decisions {
		candidate = append(candidate, oracle.DraftEntry{
			UserID:     d.UserID,
			CompanyID:  d.CompanyID,
			Day:        formatDay(d.Day),
			StartTime:  d.StartTime,
			FinishTime: d.FinishTime,
		})
	}

	eval, err := s.evaluator.Evaluate(ctx, sc, candidate)
	if err != nil {
		return nil, err
	}

	record := &model.EvaluateDecisionShift{
		CompanyID: req.CompanyID,
		StartDay:  from,
		FinishDay: to,
		Evaluate:  fmt.Sprintf("%d点: %s", eval.Score, eval.Feedback),
	}
	if err := s.repo.Evaluation.Record(ctx, record); err != nil {
		s.logger.Error("记录评价历史失败", zap.Int("company_id", req.CompanyID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("最终评估完成",
		zap.Int("company_id", req.CompanyID),
		zap.String("window", req.FirstDay+".."+req.LastDay),
		zap.Int("score", eval.Score))

	return &dto.GeminiEvaluateShiftResponse{Score: eval.Score, Feedback: eval.Feedback}, nil
}

// ── 上下文拼装 ──

// assembleContext 组装发给模型的只读快照，循环期间不再查库
func (s *refineService) assembleContext(
	ctx context.Context,
	companyID int,
	from, to time.Time,
	comment string,
	withHistory bool,
) (*oracle.ScheduleContext, error) {
	company, err := s.repo.Company.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("查询店铺失败", zap.Int("company_id", companyID), zap.Error(err))
		return nil, err
	}

	// 请求附带的备注优先于店铺常设备注
	if comment == "" {
		comment = company.Comment
	}

	info := oracle.CompanyInfo{
		CompanyID:   company.CompanyID,
		CompanyName: company.CompanyName,
		OpenTime:    company.OpenTime,
		CloseTime:   company.CloseTime,
		TargetSales: company.TargetSales,
		LaborCost:   company.LaborCost,
		Comment:     comment,
	}

	positions, err := s.repo.Company.ListPositions(ctx, companyID)
	if err != nil {
		return nil, err
	}
	restDays, err := s.repo.Company.ListRestDaysInWindow(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}
	profiles, err := s.repo.Worker.ListProfilesByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	submitted, err := s.repo.Shift.ListSubmittedInWindow(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}

	sc := &oracle.ScheduleContext{
		CompanyInfo: info,
		Positions:   make([]string, 0, len(positions)),
		RestDays:    make([]string, 0, len(restDays)),
		Workers:     make([]oracle.WorkerInfo, 0, len(profiles)),
		FirstDay:    formatDay(from),
		LastDay:     formatDay(to),
	}
	for _, p := range positions {
		sc.Positions = append(sc.Positions, p.PositionName)
	}
	for _, d := range restDays {
		sc.RestDays = append(sc.RestDays, formatDay(d.RestDay))
	}
	for _, p := range profiles {
		sc.Workers = append(sc.Workers, oracle.WorkerInfo{
			UserID:     p.UserID,
			Name:       p.Name,
			Position:   p.Position,
			Evaluate:   p.Evaluate,
			Experience: p.Experience,
			HourPay:    p.HourPay,
			Post:       p.Post,
		})
	}
	for _, sub := range submitted {
		sc.SubmittedShifts = append(sc.SubmittedShifts, oracle.ShiftEntry{
			UserID:     sub.UserID,
			CompanyID:  sub.CompanyID,
			Day:        formatDay(sub.Day),
			StartTime:  sub.StartTime,
			FinishTime: sub.FinishTime,
		})
	}

	if withHistory {
		history, err := s.repo.Evaluation.ListByCompany(ctx, companyID)
		if err != nil {
			return nil, err
		}
		for _, h := range history {
			sc.History = append(sc.History, oracle.HistoryEntry{
				StartDay:  formatDay(h.StartDay),
				FinishDay: formatDay(h.FinishDay),
				Evaluate:  h.Evaluate,
			})
		}
	}
	return sc, nil
}

// parseWindow 解析闭区间窗口，开始日晚于结束日直接拒绝
func parseWindow(firstDay, lastDay string) (time.Time, time.Time, error) {
	from, err := parseDay(firstDay)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseDay(lastDay)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, pkgerrors.ErrInvalidWindow
	}
	return from, to, nil
}
