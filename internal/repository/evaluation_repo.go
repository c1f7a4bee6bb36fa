package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jacksen-ng/shift-agent/internal/model"
)

// EvaluationRepository 最终评价历史，只追加不修改
type EvaluationRepository interface {
	Record(ctx context.Context, eval *model.EvaluateDecisionShift) error
	ListByCompany(ctx context.Context, companyID int) ([]model.EvaluateDecisionShift, error)
}

type evaluationRepo struct {
	db *gorm.DB
}

func NewEvaluationRepo(db *gorm.DB) EvaluationRepository {
	return &evaluationRepo{db: db}
}

func (r *evaluationRepo) Record(ctx context.Context, eval *model.EvaluateDecisionShift) error {
	return r.db.WithContext(ctx).Create(eval).Error
}

func (r *evaluationRepo) ListByCompany(ctx context.Context, companyID int) ([]model.EvaluateDecisionShift, error) {
	var rows []model.EvaluateDecisionShift
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}
