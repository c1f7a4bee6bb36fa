package model

// User 账号表 — 对应 user
// 凭证与 Token 由外部认证服务管理，这里只保存身份与角色
type User struct {
	UserID      int    `gorm:"primaryKey;autoIncrement"   json:"user_id"`
	CompanyID   int    `gorm:"not null;index"             json:"company_id"`
	Email       string `gorm:"type:text;uniqueIndex"      json:"email"`
	FirebaseUID string `gorm:"type:text;uniqueIndex"      json:"firebase_uid"`
	Role        string `gorm:"type:varchar(20);not null"  json:"role"` // owner | crew

	// 关联
	Company *Company     `gorm:"foreignKey:CompanyID;references:CompanyID" json:"company,omitempty"`
	Profile *UserProfile `gorm:"foreignKey:UserID;references:UserID"       json:"profile,omitempty"`
}

func (User) TableName() string { return "user" }

// UserProfile 员工档案表 — 对应 user_profile
type UserProfile struct {
	UserProfileID int    `gorm:"primaryKey;autoIncrement"  json:"user_profile_id"`
	UserID        int    `gorm:"not null;uniqueIndex"      json:"user_id"`
	CompanyID     int    `gorm:"not null;index"            json:"company_id"`
	Name          string `gorm:"type:text;not null"        json:"name"`
	Age           int    `json:"age"`
	Phone         string `gorm:"type:text"                 json:"phone"`
	Position      string `gorm:"type:text"                 json:"position"`   // 岗位，取值来自 company_position
	Evaluate      string `gorm:"type:varchar(1)"           json:"evaluate"`   // 店主评价 1-5
	Experience    string `gorm:"type:varchar(10)"          json:"experience"` // beginner | veteran
	HourPay       int    `gorm:"not null;default:0"        json:"hour_pay"`
	Post          string `gorm:"type:varchar(12)"          json:"post"` // part_timer | employee
}

func (UserProfile) TableName() string { return "user_profile" }
