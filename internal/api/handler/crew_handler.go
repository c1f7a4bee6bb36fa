package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jacksen-ng/shift-agent/internal/dto"
	"github.com/jacksen-ng/shift-agent/internal/service"
	"github.com/jacksen-ng/shift-agent/pkg/response"
)

// CrewHandler 员工档案模块 HTTP 处理器
type CrewHandler struct {
	crewSvc service.CrewService
}

// NewCrewHandler 创建 CrewHandler
func NewCrewHandler(crewSvc service.CrewService) *CrewHandler {
	return &CrewHandler{crewSvc: crewSvc}
}

// GetCrewInfo 获取店铺员工列表
// GET /api/v1/crew-info?company_id=1
func (h *CrewHandler) GetCrewInfo(c *gin.Context) {
	companyID, ok := queryCompanyID(c, 12001)
	if !ok {
		return
	}

	info, err := h.crewSvc.GetCrewInfo(c.Request.Context(), companyID)
	if err != nil {
		h.handleCrewError(c, err)
		return
	}

	response.OK(c, info)
}

// EditCrewInfo 编辑员工档案
// PUT /api/v1/crew-info
func (h *CrewHandler) EditCrewInfo(c *gin.Context) {
	var req dto.EditCrewInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "参数校验失败")
		return
	}

	if err := h.crewSvc.EditCrewInfo(c.Request.Context(), &req); err != nil {
		h.handleCrewError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleCrewError 统一处理员工模块业务错误
func (h *CrewHandler) handleCrewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCrewNotFound):
		response.NotFound(c, 12101, "员工档案不存在")
	default:
		response.InternalError(c)
	}
}
