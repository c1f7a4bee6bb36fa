package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jacksen-ng/shift-agent/internal/model"
)

// WorkerRepository 员工账号与档案数据访问接口
type WorkerRepository interface {
	GetUserByID(ctx context.Context, userID int) (*model.User, error)
	GetProfileByUserID(ctx context.Context, userID int) (*model.UserProfile, error)
	ListProfilesByCompany(ctx context.Context, companyID int) ([]model.UserProfile, error)
	UpdateProfile(ctx context.Context, profile *model.UserProfile) error
}

type workerRepo struct {
	db *gorm.DB
}

func NewWorkerRepo(db *gorm.DB) WorkerRepository {
	return &workerRepo{db: db}
}

func (r *workerRepo) GetUserByID(ctx context.Context, userID int) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("user_id = ?", userID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *workerRepo) GetProfileByUserID(ctx context.Context, userID int) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *workerRepo) ListProfilesByCompany(ctx context.Context, companyID int) ([]model.UserProfile, error) {
	var profiles []model.UserProfile
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("user_id").
		Find(&profiles).Error
	return profiles, err
}

func (r *workerRepo) UpdateProfile(ctx context.Context, profile *model.UserProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
