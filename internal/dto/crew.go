package dto

// ── 员工信息模块 DTO ──

// EditCrewInfoRequest 编辑员工档案请求
type EditCrewInfoRequest struct {
	UserID     int    `json:"user_id"    binding:"required,min=1"`
	Name       string `json:"name"       binding:"required,min=1,max=50"`
	Age        int    `json:"age"        binding:"min=0,max=120"`
	Phone      string `json:"phone"      binding:"max=20"`
	Position   string `json:"position"   binding:"max=50"`
	Evaluate   string `json:"evaluate"   binding:"omitempty,oneof=1 2 3 4 5"`
	Experience string `json:"experience" binding:"omitempty,oneof=beginner veteran"`
	HourPay    int    `json:"hour_pay"   binding:"min=0"`
	Post       string `json:"post"       binding:"omitempty,oneof=part_timer employee"`
}

// ── 响应 ──

// CrewProfileResponse 单个员工档案
type CrewProfileResponse struct {
	UserID     int    `json:"user_id"`
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Phone      string `json:"phone"`
	Position   string `json:"position"`
	Evaluate   string `json:"evaluate"`
	Experience string `json:"experience"`
	HourPay    int    `json:"hour_pay"`
	Post       string `json:"post"`
}

// CrewInfoResponse 店铺员工列表响应
type CrewInfoResponse struct {
	CrewInfo []CrewProfileResponse `json:"crew_info"`
}
