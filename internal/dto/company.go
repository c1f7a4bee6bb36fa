package dto

// ── 店铺信息模块 DTO ──

// CompanyInfoPayload 店铺基础信息
type CompanyInfoPayload struct {
	CompanyID   int    `json:"company_id"   binding:"required,min=1"`
	CompanyName string `json:"company_name" binding:"required,min=1,max=100"`
	StoreLocate string `json:"store_locate" binding:"max=200"`
	OpenTime    string `json:"open_time"    binding:"required"`
	CloseTime   string `json:"close_time"   binding:"required"`
	TargetSales int    `json:"target_sales" binding:"min=0"`
	LaborCost   int    `json:"labor_cost"   binding:"min=0"`
	Comment     string `json:"comment"      binding:"max=1000"`
}

// EditCompanyInfoRequest 编辑店铺信息请求
// rest_day 只替换今天及以后的行，position 整表替换
type EditCompanyInfoRequest struct {
	CompanyInfo CompanyInfoPayload `json:"company_info" binding:"required"`
	RestDay     []string           `json:"rest_day"     binding:"dive,datetime=2006-01-02"`
	Position    []string           `json:"position"     binding:"dive,min=1,max=50"`
}

// ── 响应 ──

// CompanyInfoResponse 店铺信息响应
type CompanyInfoResponse struct {
	CompanyInfo CompanyInfoPayload `json:"company_info"`
	RestDay     []string           `json:"rest_day"`
	Position    []string           `json:"position"`
}
