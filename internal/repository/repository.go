package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Company    CompanyRepository
	Worker     WorkerRepository
	Shift      ShiftRepository
	Evaluation EvaluationRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Company:    NewCompanyRepo(db),
		Worker:     NewWorkerRepo(db),
		Shift:      NewShiftRepo(db),
		Evaluation: NewEvaluationRepo(db),
	}
}
