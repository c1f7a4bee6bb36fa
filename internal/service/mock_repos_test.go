package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/jacksen-ng/shift-agent/internal/model"
	"github.com/jacksen-ng/shift-agent/internal/repository"
	pkgerrors "github.com/jacksen-ng/shift-agent/pkg/errors"
)

// ── Mock CompanyRepository ──

type mockCompanyRepo struct {
	companies map[int]*model.Company
	restDays  []model.CompanyRestDay
	positions []model.CompanyPosition
	nextID    int
}

func newMockCompanyRepo() *mockCompanyRepo {
	return &mockCompanyRepo{companies: make(map[int]*model.Company), nextID: 1}
}

func (m *mockCompanyRepo) GetByID(_ context.Context, companyID int) (*model.Company, error) {
	if c, ok := m.companies[companyID]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCompanyRepo) UpdateInfo(_ context.Context, company *model.Company, today time.Time, restDays []time.Time, positions []string) error {
	m.companies[company.CompanyID] = company

	// 定休日仅替换今天及以后的行
	kept := m.restDays[:0]
	for _, r := range m.restDays {
		if r.CompanyID != company.CompanyID || r.RestDay.Before(today) {
			kept = append(kept, r)
		}
	}
	m.restDays = kept
	for _, d := range restDays {
		m.nextID++
		m.restDays = append(m.restDays, model.CompanyRestDay{
			CompanyRestDayID: m.nextID, CompanyID: company.CompanyID, RestDay: d,
		})
	}

	// 岗位整表替换
	keptPos := m.positions[:0]
	for _, p := range m.positions {
		if p.CompanyID != company.CompanyID {
			keptPos = append(keptPos, p)
		}
	}
	m.positions = keptPos
	for _, name := range positions {
		m.nextID++
		m.positions = append(m.positions, model.CompanyPosition{
			CompanyPositionID: m.nextID, CompanyID: company.CompanyID, PositionName: name,
		})
	}
	return nil
}

func (m *mockCompanyRepo) ListRestDays(_ context.Context, companyID int) ([]model.CompanyRestDay, error) {
	var out []model.CompanyRestDay
	for _, r := range m.restDays {
		if r.CompanyID == companyID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockCompanyRepo) ListRestDaysInWindow(_ context.Context, companyID int, from, to time.Time) ([]model.CompanyRestDay, error) {
	var out []model.CompanyRestDay
	for _, r := range m.restDays {
		if r.CompanyID == companyID && !r.RestDay.Before(from) && !r.RestDay.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockCompanyRepo) ListPositions(_ context.Context, companyID int) ([]model.CompanyPosition, error) {
	var out []model.CompanyPosition
	for _, p := range m.positions {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

// ── Mock WorkerRepository ──

type mockWorkerRepo struct {
	users    map[int]*model.User
	profiles map[int]*model.UserProfile
}

func newMockWorkerRepo() *mockWorkerRepo {
	return &mockWorkerRepo{
		users:    make(map[int]*model.User),
		profiles: make(map[int]*model.UserProfile),
	}
}

func (m *mockWorkerRepo) GetUserByID(_ context.Context, userID int) (*model.User, error) {
	if u, ok := m.users[userID]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWorkerRepo) GetProfileByUserID(_ context.Context, userID int) (*model.UserProfile, error) {
	if p, ok := m.profiles[userID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWorkerRepo) ListProfilesByCompany(_ context.Context, companyID int) ([]model.UserProfile, error) {
	var out []model.UserProfile
	for _, p := range m.profiles {
		if p.CompanyID == companyID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (m *mockWorkerRepo) UpdateProfile(_ context.Context, profile *model.UserProfile) error {
	m.profiles[profile.UserID] = profile
	return nil
}

// ── Mock ShiftRepository ──

type mockShiftRepo struct {
	submitted []model.SubmittedShift
	drafts    []model.EditShift
	decisions []model.DecisionShift
	nextID    int
}

func newMockShiftRepo() *mockShiftRepo {
	return &mockShiftRepo{nextID: 0}
}

func (m *mockShiftRepo) SubmitShifts(_ context.Context, shifts []model.SubmittedShift) error {
	for _, s := range shifts {
		m.nextID++
		s.SubmittedShiftID = m.nextID
		m.submitted = append(m.submitted, s)

		m.nextID++
		m.drafts = append(m.drafts, model.EditShift{
			EditShiftID: m.nextID,
			UserID:      s.UserID,
			CompanyID:   s.CompanyID,
			Day:         s.Day,
			StartTime:   s.StartTime,
			FinishTime:  s.FinishTime,
		})
	}
	return nil
}

func (m *mockShiftRepo) ListSubmittedInWindow(_ context.Context, companyID int, from, to time.Time) ([]model.SubmittedShift, error) {
	var out []model.SubmittedShift
	for _, s := range m.submitted {
		if s.CompanyID == companyID && !s.Day.Before(from) && !s.Day.After(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockShiftRepo) ListDraftsByCompany(_ context.Context, companyID int) ([]model.EditShift, error) {
	var out []model.EditShift
	for _, d := range m.drafts {
		if d.CompanyID == companyID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockShiftRepo) ListDraftsInWindow(_ context.Context, companyID int, from, to time.Time) ([]model.EditShift, error) {
	var out []model.EditShift
	for _, d := range m.drafts {
		if d.CompanyID == companyID && !d.Day.Before(from) && !d.Day.After(to) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockShiftRepo) ReplaceDraftWindow(_ context.Context, companyID int, from, to time.Time, rows []model.EditShift) error {
	if from.After(to) {
		return pkgerrors.ErrInvalidWindow
	}
	kept := m.drafts[:0]
	for _, d := range m.drafts {
		if d.CompanyID != companyID || d.Day.Before(from) || d.Day.After(to) {
			kept = append(kept, d)
		}
	}
	m.drafts = kept
	for _, r := range rows {
		m.nextID++
		r.EditShiftID = m.nextID
		m.drafts = append(m.drafts, r)
	}
	return nil
}

func (m *mockShiftRepo) InsertDrafts(_ context.Context, rows []model.EditShift) error {
	for _, r := range rows {
		m.nextID++
		r.EditShiftID = m.nextID
		m.drafts = append(m.drafts, r)
	}
	return nil
}

func (m *mockShiftRepo) UpdateDraftTimes(_ context.Context, editShiftID int, startTime, finishTime string) error {
	for i := range m.drafts {
		if m.drafts[i].EditShiftID == editShiftID {
			m.drafts[i].StartTime = startTime
			m.drafts[i].FinishTime = finishTime
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) DeleteDrafts(_ context.Context, editShiftIDs []int) error {
	drop := make(map[int]struct{}, len(editShiftIDs))
	for _, id := range editShiftIDs {
		drop[id] = struct{}{}
	}
	kept := m.drafts[:0]
	for _, d := range m.drafts {
		if _, ok := drop[d.EditShiftID]; !ok {
			kept = append(kept, d)
		}
	}
	m.drafts = kept
	return nil
}

func (m *mockShiftRepo) PromoteFutureDrafts(_ context.Context, companyID int, today time.Time) (int, error) {
	type tuple struct {
		userID     int
		day        string
		start, end string
	}
	existing := make(map[tuple]struct{})
	for _, d := range m.decisions {
		if d.CompanyID == companyID {
			existing[tuple{d.UserID, d.Day.Format("2006-01-02"), d.StartTime, d.FinishTime}] = struct{}{}
		}
	}

	inserted := 0
	for _, d := range m.drafts {
		if d.CompanyID != companyID || !d.Day.After(today) {
			continue
		}
		key := tuple{d.UserID, d.Day.Format("2006-01-02"), d.StartTime, d.FinishTime}
		if _, dup := existing[key]; dup {
			continue
		}
		existing[key] = struct{}{}
		m.nextID++
		m.decisions = append(m.decisions, model.DecisionShift{
			DecisionShiftID: m.nextID,
			UserID:          d.UserID,
			CompanyID:       d.CompanyID,
			Day:             d.Day,
			StartTime:       d.StartTime,
			FinishTime:      d.FinishTime,
		})
		inserted++
	}
	return inserted, nil
}

func (m *mockShiftRepo) ListDecisionsByCompany(_ context.Context, companyID int) ([]model.DecisionShift, error) {
	var out []model.DecisionShift
	for _, d := range m.decisions {
		if d.CompanyID == companyID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockShiftRepo) ListDecisionsInWindow(_ context.Context, companyID int, from, to time.Time) ([]model.DecisionShift, error) {
	var out []model.DecisionShift
	for _, d := range m.decisions {
		if d.CompanyID == companyID && !d.Day.Before(from) && !d.Day.After(to) {
			out = append(out, d)
		}
	}
	return out, nil
}

// ── Mock EvaluationRepository ──

type mockEvaluationRepo struct {
	records []model.EvaluateDecisionShift
	nextID  int
}

func newMockEvaluationRepo() *mockEvaluationRepo {
	return &mockEvaluationRepo{}
}

func (m *mockEvaluationRepo) Record(_ context.Context, eval *model.EvaluateDecisionShift) error {
	m.nextID++
	eval.EvaluateDecisionShiftID = m.nextID
	if eval.CreatedAt.IsZero() {
		eval.CreatedAt = time.Now()
	}
	m.records = append(m.records, *eval)
	return nil
}

func (m *mockEvaluationRepo) ListByCompany(_ context.Context, companyID int) ([]model.EvaluateDecisionShift, error) {
	var out []model.EvaluateDecisionShift
	for _, r := range m.records {
		if r.CompanyID == companyID {
			out = append(out, r)
		}
	}
	return out, nil
}

// ── 测试用聚合 ──

func newTestRepository() (*repository.Repository, *mockCompanyRepo, *mockWorkerRepo, *mockShiftRepo, *mockEvaluationRepo) {
	company := newMockCompanyRepo()
	worker := newMockWorkerRepo()
	shift := newMockShiftRepo()
	evaluation := newMockEvaluationRepo()
	repo := &repository.Repository{
		Company:    company,
		Worker:     worker,
		Shift:      shift,
		Evaluation: evaluation,
	}
	return repo, company, worker, shift, evaluation
}

// ── Mock WindowLease ──

type mockLease struct {
	held     bool
	acquired int
	released int
}

func (m *mockLease) AcquireWindowLease(_ context.Context, _ int, _ time.Duration) (string, bool, error) {
	if m.held {
		return "", false, nil
	}
	m.held = true
	m.acquired++
	return "test-token", true, nil
}

func (m *mockLease) ReleaseWindowLease(_ context.Context, _ int, _ string) error {
	m.held = false
	m.released++
	return nil
}
