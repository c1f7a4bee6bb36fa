package model

import "time"

// SubmittedShift 员工提交的希望班次表 — 对应 submitted_shift
// 只增不改，是"员工想上什么班"的事实来源
type SubmittedShift struct {
	SubmittedShiftID int       `gorm:"primaryKey;autoIncrement" json:"submitted_shift_id"`
	UserID           int       `gorm:"not null;index"           json:"user_id"`
	CompanyID        int       `gorm:"not null;index"           json:"company_id"`
	Day              time.Time `gorm:"type:date;not null"       json:"day"`
	StartTime        string    `gorm:"type:time;not null"       json:"start_time"`  // HH:MM:SS
	FinishTime       string    `gorm:"type:time;not null"       json:"finish_time"` // HH:MM:SS
}

func (SubmittedShift) TableName() string { return "submitted_shift" }

// EditShift 工作草稿班次表 — 对应 edit_shift
// 提交时与 SubmittedShift 一比一播种；之后由生成/修正循环按日期窗口整体替换，
// 或由店主逐条增删改
type EditShift struct {
	EditShiftID int       `gorm:"primaryKey;autoIncrement" json:"edit_shift_id"`
	UserID      int       `gorm:"not null;index"           json:"user_id"`
	CompanyID   int       `gorm:"not null;index"           json:"company_id"`
	Day         time.Time `gorm:"type:date;not null;index" json:"day"`
	StartTime   string    `gorm:"type:time;not null"       json:"start_time"`
	FinishTime  string    `gorm:"type:time;not null"       json:"finish_time"`
}

func (EditShift) TableName() string { return "edit_shift" }

// DecisionShift 确定班次表 — 对应 decision_shift
// 只由"晋升"产生：把未来日期的草稿按五元组去重复制进来
type DecisionShift struct {
	DecisionShiftID int       `gorm:"primaryKey;autoIncrement" json:"decision_shift_id"`
	UserID          int       `gorm:"not null;index"           json:"user_id"`
	CompanyID       int       `gorm:"not null;index"           json:"company_id"`
	Day             time.Time `gorm:"type:date;not null;index" json:"day"`
	StartTime       string    `gorm:"type:time;not null"       json:"start_time"`
	FinishTime      string    `gorm:"type:time;not null"       json:"finish_time"`
}

func (DecisionShift) TableName() string { return "decision_shift" }
