package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jacksen-ng/shift-agent/internal/dto"
	"github.com/jacksen-ng/shift-agent/internal/service"
	"github.com/jacksen-ng/shift-agent/pkg/response"
)

// ShiftHandler 班次生命周期模块 HTTP 处理器
type ShiftHandler struct {
	shiftSvc service.ShiftService
}

// NewShiftHandler 创建 ShiftHandler
func NewShiftHandler(shiftSvc service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftSvc: shiftSvc}
}

// SubmitShift 员工提交希望班次
// POST /api/v1/submitted-shift
func (h *ShiftHandler) SubmitShift(c *gin.Context) {
	var req dto.SubmitShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	// 只能以本人身份向所属店铺提交
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	companyID, ok := MustGetCompanyID(c)
	if !ok {
		return
	}
	if req.CompanyMemberInfo.UserID != userID {
		response.Forbidden(c, 10003, "只能提交本人的希望班次")
		return
	}
	if req.CompanyMemberInfo.CompanyID != companyID {
		response.Forbidden(c, 10003, "只能向所属店铺提交希望班次")
		return
	}

	if err := h.shiftSvc.SubmitShifts(c.Request.Context(), &req); err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.Created(c, nil)
}

// GetEditShifts 店铺草稿一览
// GET /api/v1/edit-shift?company_id=1
func (h *ShiftHandler) GetEditShifts(c *gin.Context) {
	companyID, ok := queryCompanyID(c, 13001)
	if !ok {
		return
	}

	list, err := h.shiftSvc.GetEditShifts(c.Request.Context(), companyID)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, list)
}

// EditShifts 店主批量增删改草稿
// POST /api/v1/edit-shift
func (h *ShiftHandler) EditShifts(c *gin.Context) {
	var req dto.EditShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	list, err := h.shiftSvc.EditShifts(c.Request.Context(), &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, list)
}

// CompleteShift 发布排班
// POST /api/v1/complete-shift
func (h *ShiftHandler) CompleteShift(c *gin.Context) {
	var req dto.CompleteShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	result, err := h.shiftSvc.CompleteShift(c.Request.Context(), req.CompanyID)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, result)
}

// GetDecisionShifts 确定班次一览（首页）
// GET /api/v1/home?company_id=1
func (h *ShiftHandler) GetDecisionShifts(c *gin.Context) {
	companyID, ok := queryCompanyID(c, 13001)
	if !ok {
		return
	}

	list, err := h.shiftSvc.GetDecisionShifts(c.Request.Context(), companyID)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, list)
}

// handleShiftError 统一处理班次模块业务错误
func (h *ShiftHandler) handleShiftError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWorkerNotFound):
		response.NotFound(c, 13101, "员工不存在")
	case errors.Is(err, service.ErrEditShiftNotFound):
		response.NotFound(c, 13102, "草稿班次不存在")
	case errors.Is(err, service.ErrShiftDayInPast):
		response.BadRequest(c, 13103, "不能为过去的日期新增班次")
	case errors.Is(err, service.ErrBadClock):
		response.BadRequest(c, 13104, "时刻格式必须为 HH:MM 或 HH:MM:SS")
	default:
		response.InternalError(c)
	}
}
