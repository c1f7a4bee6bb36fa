package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jacksen-ng/shift-agent/internal/dto"
	"github.com/jacksen-ng/shift-agent/internal/service"
	"github.com/jacksen-ng/shift-agent/pkg/response"
)

// CompanyHandler 店铺信息模块 HTTP 处理器
type CompanyHandler struct {
	companySvc service.CompanyService
}

// NewCompanyHandler 创建 CompanyHandler
func NewCompanyHandler(companySvc service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companySvc: companySvc}
}

// GetCompanyInfo 获取店铺信息
// GET /api/v1/company-info?company_id=1
func (h *CompanyHandler) GetCompanyInfo(c *gin.Context) {
	companyID, ok := queryCompanyID(c, 11001)
	if !ok {
		return
	}

	info, err := h.companySvc.GetInfo(c.Request.Context(), companyID)
	if err != nil {
		h.handleCompanyError(c, err)
		return
	}

	response.OK(c, info)
}

// EditCompanyInfo 编辑店铺信息
// PUT /api/v1/company-info
func (h *CompanyHandler) EditCompanyInfo(c *gin.Context) {
	var req dto.EditCompanyInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 11001, "参数校验失败")
		return
	}

	if err := h.companySvc.EditInfo(c.Request.Context(), &req); err != nil {
		h.handleCompanyError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleCompanyError 统一处理店铺模块业务错误
func (h *CompanyHandler) handleCompanyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCompanyNotFound):
		response.NotFound(c, 11101, "店铺不存在")
	case errors.Is(err, service.ErrBadClock):
		response.BadRequest(c, 11102, "时刻格式必须为 HH:MM 或 HH:MM:SS")
	default:
		response.InternalError(c)
	}
}
