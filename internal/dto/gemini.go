package dto

// ── 排班生成模块 DTO ──

// GeminiCreateShiftRequest 生成排班请求
// first_day/last_day 为闭区间窗口，格式 YYYY-MM-DD
type GeminiCreateShiftRequest struct {
	CompanyID int    `json:"company_id" binding:"required,min=1"`
	FirstDay  string `json:"first_day"  binding:"required,datetime=2006-01-02"`
	LastDay   string `json:"last_day"   binding:"required,datetime=2006-01-02"`
	Comment   string `json:"comment"    binding:"max=1000"`
}

// GeminiEvaluateShiftRequest 评估已发布排班请求
type GeminiEvaluateShiftRequest struct {
	CompanyID int    `json:"company_id" binding:"required,min=1"`
	FirstDay  string `json:"first_day"  binding:"required,datetime=2006-01-02"`
	LastDay   string `json:"last_day"   binding:"required,datetime=2006-01-02"`
}

// ── 响应 ──

// OpenSlotResponse 模型无人可排的缺口时段，需店主人工处理
type OpenSlotResponse struct {
	Day        string `json:"day"`
	StartTime  string `json:"start_time"`
	FinishTime string `json:"finish_time"`
}

// GeminiCreateShiftResponse 生成结果
// edit_shift 为已写入草稿表的最终候选，open_slots 为未解决的缺口
type GeminiCreateShiftResponse struct {
	EditShift []ShiftEntryResponse `json:"edit_shift"`
	OpenSlots []OpenSlotResponse   `json:"open_slots,omitempty"`
	Score     int                  `json:"score"`
	Feedback  string               `json:"feedback"`
	Rounds    int                  `json:"rounds"`
}

// GeminiEvaluateShiftResponse 最终评估结果，同时追加进评价历史
type GeminiEvaluateShiftResponse struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}
