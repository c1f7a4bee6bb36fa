package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/jacksen-ng/shift-agent/internal/model"
)

func TestExportDecisionShiftsEmpty(t *testing.T) {
	repo, _, _, _, _ := newTestRepository()
	svc := NewExportService(repo, zap.NewNop())

	if _, _, err := svc.ExportDecisionShifts(context.Background(), 1); !errors.Is(err, ErrExportNoDecisions) {
		t.Fatalf("期望 ErrExportNoDecisions，得到 %v", err)
	}
}

func TestExportDecisionShifts(t *testing.T) {
	repo, _, worker, shift, _ := newTestRepository()
	seedWorker(worker, 2, 1, "佐藤")
	svc := NewExportService(repo, zap.NewNop())

	day := time.Date(2030, 7, 25, 0, 0, 0, 0, time.UTC)
	shift.decisions = []model.DecisionShift{
		{DecisionShiftID: 2, UserID: 2, CompanyID: 1, Day: day.AddDate(0, 0, 1), StartTime: "12:00:00", FinishTime: "20:00:00"},
		{DecisionShiftID: 1, UserID: 2, CompanyID: 1, Day: day, StartTime: "10:00:00", FinishTime: "18:00:00"},
	}

	buf, filename, err := svc.ExportDecisionShifts(context.Background(), 1)
	if err != nil {
		t.Fatalf("ExportDecisionShifts: %v", err)
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("filename = %q", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("打开导出文件失败: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("確定シフト")
	if err != nil {
		t.Fatalf("读取 Sheet 失败: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d，want 表头+2", len(rows))
	}
	if rows[0][0] != "日付" || rows[0][1] != "従業員" {
		t.Errorf("表头不正确: %v", rows[0])
	}
	// 按日期排序后第一行应是 07-25
	if rows[1][0] != "2030-07-25" || rows[1][1] != "佐藤" {
		t.Errorf("首行不正确: %v", rows[1])
	}
}
