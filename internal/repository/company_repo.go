package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jacksen-ng/shift-agent/internal/model"
)

// CompanyRepository 店铺数据访问接口
type CompanyRepository interface {
	GetByID(ctx context.Context, companyID int) (*model.Company, error)
	// UpdateInfo 更新店铺基本信息并替换定休日/岗位：
	// 定休日只替换 today 及以后的行（过去是不可变历史），岗位整表替换；
	// 三个写操作在同一事务内完成
	UpdateInfo(ctx context.Context, company *model.Company, today time.Time, restDays []time.Time, positions []string) error
	ListRestDays(ctx context.Context, companyID int) ([]model.CompanyRestDay, error)
	ListRestDaysInWindow(ctx context.Context, companyID int, from, to time.Time) ([]model.CompanyRestDay, error)
	ListPositions(ctx context.Context, companyID int) ([]model.CompanyPosition, error)
}

type companyRepo struct {
	db *gorm.DB
}

func NewCompanyRepo(db *gorm.DB) CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) GetByID(ctx context.Context, companyID int) (*model.Company, error) {
	var company model.Company
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepo) UpdateInfo(ctx context.Context, company *model.Company, today time.Time, restDays []time.Time, positions []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(company).Error; err != nil {
			return err
		}

		// 定休日：仅替换未来行
		if err := tx.Where("company_id = ? AND rest_day >= ?", company.CompanyID, today).
			Delete(&model.CompanyRestDay{}).Error; err != nil {
			return err
		}
		for _, day := range restDays {
			row := model.CompanyRestDay{CompanyID: company.CompanyID, RestDay: day}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		// 岗位：整表替换
		if err := tx.Where("company_id = ?", company.CompanyID).
			Delete(&model.CompanyPosition{}).Error; err != nil {
			return err
		}
		for _, name := range positions {
			row := model.CompanyPosition{CompanyID: company.CompanyID, PositionName: name}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *companyRepo) ListRestDays(ctx context.Context, companyID int) ([]model.CompanyRestDay, error) {
	var rows []model.CompanyRestDay
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("rest_day").
		Find(&rows).Error
	return rows, err
}

func (r *companyRepo) ListRestDaysInWindow(ctx context.Context, companyID int, from, to time.Time) ([]model.CompanyRestDay, error) {
	var rows []model.CompanyRestDay
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND rest_day >= ? AND rest_day <= ?", companyID, from, to).
		Order("rest_day").
		Find(&rows).Error
	return rows, err
}

func (r *companyRepo) ListPositions(ctx context.Context, companyID int) ([]model.CompanyPosition, error) {
	var rows []model.CompanyPosition
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Find(&rows).Error
	return rows, err
}
