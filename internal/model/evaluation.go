package model

import "time"

// EvaluateDecisionShift 已发布排班周期的评价记录 — 对应 evaluate_decision_shift
// 追加式审计表，永不更新或删除；作为 Oracle 评估新周期时的历史信号
type EvaluateDecisionShift struct {
	EvaluateDecisionShiftID int       `gorm:"primaryKey;autoIncrement"           json:"evaluate_decision_shift_id"`
	CompanyID               int       `gorm:"not null;index"                     json:"company_id"`
	StartDay                time.Time `gorm:"type:date;not null"                 json:"start_day"`
	FinishDay               time.Time `gorm:"type:date;not null"                 json:"finish_day"`
	Evaluate                string    `gorm:"type:text;not null"                 json:"evaluate"` // 定量分数+自由文本的评价
	CreatedAt               time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (EvaluateDecisionShift) TableName() string { return "evaluate_decision_shift" }
