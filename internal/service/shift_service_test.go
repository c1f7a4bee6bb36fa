package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jacksen-ng/shift-agent/internal/dto"
	"github.com/jacksen-ng/shift-agent/internal/model"
)

func seedWorker(worker *mockWorkerRepo, userID, companyID int, name string) {
	worker.users[userID] = &model.User{UserID: userID, CompanyID: companyID, Role: "crew"}
	worker.profiles[userID] = &model.UserProfile{
		UserID: userID, CompanyID: companyID, Name: name,
		Position: "hall", Evaluate: "3", Experience: "veteran", HourPay: 1100, Post: "part_timer",
	}
}

func TestSubmitShiftsSeedsDrafts(t *testing.T) {
	repo, _, worker, shift, _ := newTestRepository()
	seedWorker(worker, 2, 1, "佐藤")
	svc := NewShiftService(repo, zap.NewNop())

	err := svc.SubmitShifts(context.Background(), &dto.SubmitShiftRequest{
		CompanyMemberInfo: dto.CompanyMemberInfo{UserID: 2, CompanyID: 1},
		SubmitShift: []dto.ShiftSlot{
			{Day: "2030-07-25", StartTime: "10:00", FinishTime: "18:00"},
			{Day: "2030-07-26", StartTime: "09:00:00", FinishTime: "17:00:00"},
		},
	})
	if err != nil {
		t.Fatalf("SubmitShifts: %v", err)
	}

	if len(shift.submitted) != 2 || len(shift.drafts) != 2 {
		t.Fatalf("submitted=%d drafts=%d，希望与草稿应一比一", len(shift.submitted), len(shift.drafts))
	}
	if shift.submitted[0].StartTime != "10:00:00" {
		t.Errorf("时刻未规范化: %q", shift.submitted[0].StartTime)
	}
	if shift.drafts[0].UserID != 2 || shift.drafts[0].StartTime != "10:00:00" {
		t.Errorf("草稿播种不正确: %+v", shift.drafts[0])
	}
}

func TestSubmitShiftsUnknownWorker(t *testing.T) {
	repo, _, _, _, _ := newTestRepository()
	svc := NewShiftService(repo, zap.NewNop())

	err := svc.SubmitShifts(context.Background(), &dto.SubmitShiftRequest{
		CompanyMemberInfo: dto.CompanyMemberInfo{UserID: 99, CompanyID: 1},
		SubmitShift:       []dto.ShiftSlot{{Day: "2030-07-25", StartTime: "10:00", FinishTime: "18:00"}},
	})
	if !errors.Is(err, ErrWorkerNotFound) {
		t.Fatalf("期望 ErrWorkerNotFound，得到 %v", err)
	}
}

func TestEditShiftsAddUpdateDelete(t *testing.T) {
	repo, _, worker, shift, _ := newTestRepository()
	seedWorker(worker, 2, 1, "佐藤")
	seedWorker(worker, 3, 1, "鈴木")
	svc := NewShiftService(repo, zap.NewNop())

	futureDay := today().AddDate(0, 0, 5)
	shift.drafts = []model.EditShift{
		{EditShiftID: 10, UserID: 2, CompanyID: 1, Day: futureDay, StartTime: "10:00:00", FinishTime: "18:00:00"},
		{EditShiftID: 11, UserID: 3, CompanyID: 1, Day: futureDay, StartTime: "12:00:00", FinishTime: "20:00:00"},
	}
	shift.nextID = 11

	resp, err := svc.EditShifts(context.Background(), &dto.EditShiftRequest{
		CompanyID: 1,
		AddEditShift: []dto.AddEditShift{
			{UserID: 2, Day: formatDay(futureDay.AddDate(0, 0, 1)), StartTime: "09:00", FinishTime: "15:00"},
		},
		UpdateEditShift: []dto.UpdateEditShift{
			{EditShiftID: 10, StartTime: "11:00", FinishTime: "19:00"},
		},
		DeleteEditShift: []int{11},
	})
	if err != nil {
		t.Fatalf("EditShifts: %v", err)
	}
	if len(resp.EditShift) != 2 {
		t.Fatalf("草稿数 = %d，want 2", len(resp.EditShift))
	}
	for _, e := range resp.EditShift {
		if e.ShiftID == 10 && e.StartTime != "11:00:00" {
			t.Errorf("修改未生效: %+v", e)
		}
		if e.ShiftID == 11 {
			t.Error("已删除的草稿仍然存在")
		}
	}
}

func TestEditShiftsRejectsPastDay(t *testing.T) {
	repo, _, _, _, _ := newTestRepository()
	svc := NewShiftService(repo, zap.NewNop())

	_, err := svc.EditShifts(context.Background(), &dto.EditShiftRequest{
		CompanyID: 1,
		AddEditShift: []dto.AddEditShift{
			{UserID: 2, Day: formatDay(today().AddDate(0, 0, -1)), StartTime: "09:00", FinishTime: "15:00"},
		},
	})
	if !errors.Is(err, ErrShiftDayInPast) {
		t.Fatalf("期望 ErrShiftDayInPast，得到 %v", err)
	}
}

func TestEditShiftsUpdateMissing(t *testing.T) {
	repo, _, _, _, _ := newTestRepository()
	svc := NewShiftService(repo, zap.NewNop())

	_, err := svc.EditShifts(context.Background(), &dto.EditShiftRequest{
		CompanyID: 1,
		UpdateEditShift: []dto.UpdateEditShift{
			{EditShiftID: 404, StartTime: "09:00", FinishTime: "15:00"},
		},
	})
	if !errors.Is(err, ErrEditShiftNotFound) {
		t.Fatalf("期望 ErrEditShiftNotFound，得到 %v", err)
	}
}

func TestCompleteShiftIdempotent(t *testing.T) {
	repo, _, _, shift, _ := newTestRepository()
	svc := NewShiftService(repo, zap.NewNop())

	future := today().AddDate(0, 0, 3)
	past := today().AddDate(0, 0, -3)
	shift.drafts = []model.EditShift{
		{EditShiftID: 1, UserID: 2, CompanyID: 1, Day: future, StartTime: "10:00:00", FinishTime: "18:00:00"},
		{EditShiftID: 2, UserID: 3, CompanyID: 1, Day: future, StartTime: "12:00:00", FinishTime: "20:00:00"},
		{EditShiftID: 3, UserID: 2, CompanyID: 1, Day: past, StartTime: "10:00:00", FinishTime: "18:00:00"},
	}

	resp, err := svc.CompleteShift(context.Background(), 1)
	if err != nil {
		t.Fatalf("CompleteShift: %v", err)
	}
	if resp.Promoted != 2 {
		t.Fatalf("promoted = %d，want 2（过去的草稿不晋升）", resp.Promoted)
	}

	// 重复发布不会产生新行
	resp, err = svc.CompleteShift(context.Background(), 1)
	if err != nil {
		t.Fatalf("CompleteShift 重放: %v", err)
	}
	if resp.Promoted != 0 {
		t.Fatalf("重放 promoted = %d，want 0", resp.Promoted)
	}
	if len(shift.decisions) != 2 {
		t.Fatalf("decisions = %d，want 2", len(shift.decisions))
	}
}

func TestCompleteShiftPicksUpNewDrafts(t *testing.T) {
	repo, _, _, shift, _ := newTestRepository()
	svc := NewShiftService(repo, zap.NewNop())

	future := today().AddDate(0, 0, 3)
	shift.drafts = []model.EditShift{
		{EditShiftID: 1, UserID: 2, CompanyID: 1, Day: future, StartTime: "10:00:00", FinishTime: "18:00:00"},
	}
	if _, err := svc.CompleteShift(context.Background(), 1); err != nil {
		t.Fatalf("CompleteShift: %v", err)
	}

	// 草稿变更后再次发布，只有新五元组被晋升
	shift.drafts = append(shift.drafts, model.EditShift{
		EditShiftID: 2, UserID: 2, CompanyID: 1, Day: future.AddDate(0, 0, 1),
		StartTime: "10:00:00", FinishTime: "18:00:00",
	})
	resp, err := svc.CompleteShift(context.Background(), 1)
	if err != nil {
		t.Fatalf("CompleteShift: %v", err)
	}
	if resp.Promoted != 1 {
		t.Fatalf("promoted = %d，want 1", resp.Promoted)
	}
}

func TestGetDecisionShiftsWithNames(t *testing.T) {
	repo, company, worker, shift, _ := newTestRepository()
	seedWorker(worker, 2, 1, "佐藤")
	svc := NewShiftService(repo, zap.NewNop())

	day := time.Date(2030, 7, 25, 0, 0, 0, 0, time.UTC)
	shift.decisions = []model.DecisionShift{
		{DecisionShiftID: 1, UserID: 2, CompanyID: 1, Day: day, StartTime: "10:00:00", FinishTime: "18:00:00"},
	}
	company.restDays = append(company.restDays, model.CompanyRestDay{
		CompanyRestDayID: 1, CompanyID: 1,
		RestDay: time.Date(2030, 7, 28, 0, 0, 0, 0, time.UTC),
	})

	resp, err := svc.GetDecisionShifts(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetDecisionShifts: %v", err)
	}
	if len(resp.DecisionShift) != 1 {
		t.Fatalf("rows = %d，want 1", len(resp.DecisionShift))
	}
	got := resp.DecisionShift[0]
	if got.Name != "佐藤" || got.Day != "2030-07-25" {
		t.Errorf("意外的响应行: %+v", got)
	}
	if len(resp.RestDay) != 1 || resp.RestDay[0] != "2030-07-28" {
		t.Errorf("rest_day = %v，want [2030-07-28]", resp.RestDay)
	}
}
