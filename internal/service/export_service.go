package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/jacksen-ng/shift-agent/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoDecisions  = errors.New("该店铺暂无确定班次")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 确定班次以 Excel (.xlsx) 导出，按日期分组、同日按开始时刻排序，
// 以 bytes.Buffer 返回，由 Handler 层设置响应头后写入 Response
type ExportService interface {
	// ExportDecisionShifts 导出店铺全部确定班次
	ExportDecisionShifts(ctx context.Context, companyID int) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportDecisionShifts(ctx context.Context, companyID int) (*bytes.Buffer, string, error) {
	// 1. 查询确定班次
	decisions, err := s.repo.Shift.ListDecisionsByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("查询确定班次失败", zap.Int("company_id", companyID), zap.Error(err))
		return nil, "", err
	}
	if len(decisions) == 0 {
		return nil, "", ErrExportNoDecisions
	}

	// 2. 姓名映射
	profiles, err := s.repo.Worker.ListProfilesByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("查询员工列表失败", zap.Int("company_id", companyID), zap.Error(err))
		return nil, "", err
	}
	names := make(map[int]string, len(profiles))
	for _, p := range profiles {
		names[p.UserID] = p.Name
	}

	// 3. 排序：日期 → 开始时刻 → user_id
	sort.Slice(decisions, func(i, j int) bool {
		if !decisions[i].Day.Equal(decisions[j].Day) {
			return decisions[i].Day.Before(decisions[j].Day)
		}
		if decisions[i].StartTime != decisions[j].StartTime {
			return decisions[i].StartTime < decisions[j].StartTime
		}
		return decisions[i].UserID < decisions[j].UserID
	})

	// 4. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "確定シフト"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"日付", "従業員", "開始", "終了"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrExportGenerateFail, err)
		}
	}

	for row, d := range decisions {
		name := names[d.UserID]
		if name == "" {
			name = fmt.Sprintf("user_%d", d.UserID)
		}
		values := []interface{}{formatDay(d.Day), name, d.StartTime, d.FinishTime}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", fmt.Errorf("%w: %v", ErrExportGenerateFail, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写出 Excel 失败", zap.Error(err))
		return nil, "", fmt.Errorf("%w: %v", ErrExportGenerateFail, err)
	}

	filename := fmt.Sprintf("decision_shift_%d_%s.xlsx", companyID, time.Now().Format("20060102"))
	s.logger.Info("确定班次导出完成",
		zap.Int("company_id", companyID),
		zap.Int("rows", len(decisions)))
	return buf, filename, nil
}
