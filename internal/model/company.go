package model

import "time"

// Company 店铺表 — 对应 company
type Company struct {
	CompanyID   int    `gorm:"primaryKey;autoIncrement"       json:"company_id"`
	CompanyName string `gorm:"type:text;not null"             json:"company_name"`
	StoreLocate string `gorm:"type:text"                      json:"store_locate"`
	OpenTime    string `gorm:"type:time;not null"             json:"open_time"`  // HH:MM:SS
	CloseTime   string `gorm:"type:time;not null"             json:"close_time"` // HH:MM:SS
	TargetSales int    `gorm:"not null;default:0"             json:"target_sales"`
	LaborCost   int    `gorm:"not null;default:0"             json:"labor_cost"` // 排班周期人件费预算
	Comment     string `gorm:"type:text"                      json:"comment"`    // 店主的运营备注，随排班请求一并交给 Oracle
}

func (Company) TableName() string { return "company" }

// CompanyRestDay 店铺定休日表 — 对应 company_rest_day
// 编辑时只替换今天及以后的行，过去的定休日是不可变历史
type CompanyRestDay struct {
	CompanyRestDayID int       `gorm:"primaryKey;autoIncrement" json:"company_rest_day_id"`
	CompanyID        int       `gorm:"not null;index"           json:"company_id"`
	RestDay          time.Time `gorm:"type:date;not null"       json:"rest_day"`

	// 关联
	Company *Company `gorm:"foreignKey:CompanyID;references:CompanyID" json:"company,omitempty"`
}

func (CompanyRestDay) TableName() string { return "company_rest_day" }

// CompanyPosition 店铺岗位表 — 对应 company_position
// 编辑时整表替换（与定休日的未来行替换语义不同，保持各自原样）
type CompanyPosition struct {
	CompanyPositionID int    `gorm:"primaryKey;autoIncrement" json:"company_position_id"`
	CompanyID         int    `gorm:"not null;index"           json:"company_id"`
	PositionName      string `gorm:"type:text;not null"       json:"position_name"`

	// 关联
	Company *Company `gorm:"foreignKey:CompanyID;references:CompanyID" json:"company,omitempty"`
}

func (CompanyPosition) TableName() string { return "company_position" }
