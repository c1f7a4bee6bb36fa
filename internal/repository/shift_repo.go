package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jacksen-ng/shift-agent/internal/model"
	pkgerrors "github.com/jacksen-ng/shift-agent/pkg/errors"
)

// ShiftRepository 班次生命周期数据访问接口
// submitted（员工希望）→ edit（工作草稿）→ decision（确定班次）
type ShiftRepository interface {
	// SubmitShifts 批量写入希望班次，并一比一播种草稿行（同一事务）
	SubmitShifts(ctx context.Context, shifts []model.SubmittedShift) error
	ListSubmittedInWindow(ctx context.Context, companyID int, from, to time.Time) ([]model.SubmittedShift, error)

	ListDraftsByCompany(ctx context.Context, companyID int) ([]model.EditShift, error)
	ListDraftsInWindow(ctx context.Context, companyID int, from, to time.Time) ([]model.EditShift, error)
	// ReplaceDraftWindow 删除窗口内全部草稿后插入新行；全部成功或全部回滚
	ReplaceDraftWindow(ctx context.Context, companyID int, from, to time.Time, rows []model.EditShift) error
	InsertDrafts(ctx context.Context, rows []model.EditShift) error
	UpdateDraftTimes(ctx context.Context, editShiftID int, startTime, finishTime string) error
	DeleteDrafts(ctx context.Context, editShiftIDs []int) error

	// PromoteFutureDrafts 把 day > today 的草稿复制进确定表，
	// 五元组完全相同的行跳过；返回本次插入数。重复执行不产生新行
	PromoteFutureDrafts(ctx context.Context, companyID int, today time.Time) (int, error)
	ListDecisionsByCompany(ctx context.Context, companyID int) ([]model.DecisionShift, error)
	ListDecisionsInWindow(ctx context.Context, companyID int, from, to time.Time) ([]model.DecisionShift, error)
}

type shiftRepo struct {
	db *gorm.DB
}

func NewShiftRepo(db *gorm.DB) ShiftRepository {
	return &shiftRepo{db: db}
}

func (r *shiftRepo) SubmitShifts(ctx context.Context, shifts []model.SubmittedShift) error {
	if len(shifts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range shifts {
			if err := tx.Create(&shifts[i]).Error; err != nil {
				return err
			}
			draft := model.EditShift{
				UserID:     shifts[i].UserID,
				CompanyID:  shifts[i].CompanyID,
				Day:        shifts[i].Day,
				StartTime:  shifts[i].StartTime,
				FinishTime: shifts[i].FinishTime,
			}
			if err := tx.Create(&draft).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *shiftRepo) ListSubmittedInWindow(ctx context.Context, companyID int, from, to time.Time) ([]model.SubmittedShift, error) {
	var rows []model.SubmittedShift
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND day >= ? AND day <= ?", companyID, from, to).
		Order("day, start_time").
		Find(&rows).Error
	return rows, err
}

func (r *shiftRepo) ListDraftsByCompany(ctx context.Context, companyID int) ([]model.EditShift, error) {
	var rows []model.EditShift
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("day, start_time").
		Find(&rows).Error
	return rows, err
}

func (r *shiftRepo) ListDraftsInWindow(ctx context.Context, companyID int, from, to time.Time) ([]model.EditShift, error) {
	var rows []model.EditShift
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND day >= ? AND day <= ?", companyID, from, to).
		Order("day, start_time").
		Find(&rows).Error
	return rows, err
}

func (r *shiftRepo) ReplaceDraftWindow(ctx context.Context, companyID int, from, to time.Time, rows []model.EditShift) error {
	if from.After(to) {
		return pkgerrors.ErrInvalidWindow
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("company_id = ? AND day >= ? AND day <= ?", companyID, from, to).
			Delete(&model.EditShift{}).Error; err != nil {
			return err
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *shiftRepo) InsertDrafts(ctx context.Context, rows []model.EditShift) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *shiftRepo) UpdateDraftTimes(ctx context.Context, editShiftID int, startTime, finishTime string) error {
	result := r.db.WithContext(ctx).
		Model(&model.EditShift{}).
		Where("edit_shift_id = ?", editShiftID).
		Updates(map[string]interface{}{
			"start_time":  startTime,
			"finish_time": finishTime,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *shiftRepo) DeleteDrafts(ctx context.Context, editShiftIDs []int) error {
	if len(editShiftIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("edit_shift_id IN ?", editShiftIDs).
		Delete(&model.EditShift{}).Error
}

func (r *shiftRepo) PromoteFutureDrafts(ctx context.Context, companyID int, today time.Time) (int, error) {
	inserted := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var drafts []model.EditShift
		if err := tx.Where("company_id = ? AND day > ?", companyID, today).
			Find(&drafts).Error; err != nil {
			return err
		}

		for _, d := range drafts {
			var count int64
			if err := tx.Model(&model.DecisionShift{}).
				Where("user_id = ? AND company_id = ? AND day = ? AND start_time = ? AND finish_time = ?",
					d.UserID, d.CompanyID, d.Day, d.StartTime, d.FinishTime).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			decision := model.DecisionShift{
				UserID:     d.UserID,
				CompanyID:  d.CompanyID,
				Day:        d.Day,
				StartTime:  d.StartTime,
				FinishTime: d.FinishTime,
			}
			if err := tx.Create(&decision).Error; err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *shiftRepo) ListDecisionsByCompany(ctx context.Context, companyID int) ([]model.DecisionShift, error) {
	var rows []model.DecisionShift
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("day, start_time").
		Find(&rows).Error
	return rows, err
}

func (r *shiftRepo) ListDecisionsInWindow(ctx context.Context, companyID int, from, to time.Time) ([]model.DecisionShift, error) {
	var rows []model.DecisionShift
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND day >= ? AND day <= ?", companyID, from, to).
		Order("day, start_time").
		Find(&rows).Error
	return rows, err
}
