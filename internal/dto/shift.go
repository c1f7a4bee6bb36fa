package dto

// ── 班次模块 DTO ──

// ShiftSlot 一条班次的日期与时段
type ShiftSlot struct {
	Day        string `json:"day"         binding:"required,datetime=2006-01-02"`
	StartTime  string `json:"start_time"  binding:"required"`
	FinishTime string `json:"finish_time" binding:"required"`
}

// CompanyMemberInfo 提交者身份
type CompanyMemberInfo struct {
	UserID    int `json:"user_id"    binding:"required,min=1"`
	CompanyID int `json:"company_id" binding:"required,min=1"`
}

// SubmitShiftRequest 员工提交希望班次请求
// 写入 submitted_shift 的同时一比一播种 edit_shift 草稿
type SubmitShiftRequest struct {
	CompanyMemberInfo CompanyMemberInfo `json:"company_member_info" binding:"required"`
	SubmitShift       []ShiftSlot       `json:"submit_shift"        binding:"required,min=1,dive"`
}

// AddEditShift 店主手动新增草稿
type AddEditShift struct {
	UserID     int    `json:"user_id"     binding:"required,min=1"`
	Day        string `json:"day"         binding:"required,datetime=2006-01-02"`
	StartTime  string `json:"start_time"  binding:"required"`
	FinishTime string `json:"finish_time" binding:"required"`
}

// UpdateEditShift 店主手动修改草稿时段
type UpdateEditShift struct {
	EditShiftID int    `json:"edit_shift_id" binding:"required,min=1"`
	StartTime   string `json:"start_time"    binding:"required"`
	FinishTime  string `json:"finish_time"   binding:"required"`
}

// EditShiftRequest 店主批量增删改草稿请求
type EditShiftRequest struct {
	CompanyID       int               `json:"company_id"        binding:"required,min=1"`
	AddEditShift    []AddEditShift    `json:"add_edit_shift"    binding:"dive"`
	UpdateEditShift []UpdateEditShift `json:"update_edit_shift" binding:"dive"`
	DeleteEditShift []int             `json:"delete_edit_shift" binding:"dive,min=1"`
}

// CompleteShiftRequest 发布排班请求，把未来草稿晋升为确定班次
type CompleteShiftRequest struct {
	CompanyID int `json:"company_id" binding:"required,min=1"`
}

// ── 响应 ──

// ShiftEntryResponse 含主键的班次行
type ShiftEntryResponse struct {
	ShiftID    int    `json:"shift_id"`
	UserID     int    `json:"user_id"`
	Name       string `json:"name,omitempty"`
	Day        string `json:"day"`
	StartTime  string `json:"start_time"`
	FinishTime string `json:"finish_time"`
}

// EditShiftListResponse 店铺草稿一览
type EditShiftListResponse struct {
	EditShift []ShiftEntryResponse `json:"edit_shift"`
}

// CompleteShiftResponse 发布结果，promoted 为本次新晋升的行数
// 重复发布不会重复计入已有的行
type CompleteShiftResponse struct {
	Promoted int `json:"promoted"`
}

// DecisionShiftResponse 确定班次一览（首页）
type DecisionShiftResponse struct {
	DecisionShift []ShiftEntryResponse `json:"decision_shift"`
	RestDay       []string             `json:"rest_day"`
}
