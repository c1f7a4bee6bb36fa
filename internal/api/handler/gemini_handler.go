package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jacksen-ng/shift-agent/internal/dto"
	"github.com/jacksen-ng/shift-agent/internal/oracle"
	"github.com/jacksen-ng/shift-agent/internal/service"
	pkgerrors "github.com/jacksen-ng/shift-agent/pkg/errors"
	"github.com/jacksen-ng/shift-agent/pkg/response"
)

// GeminiHandler 排班生成模块 HTTP 处理器
type GeminiHandler struct {
	refineSvc service.RefineService
}

// NewGeminiHandler 创建 GeminiHandler
func NewGeminiHandler(refineSvc service.RefineService) *GeminiHandler {
	return &GeminiHandler{refineSvc: refineSvc}
}

// CreateShift 对日期窗口执行生成→评估→修正循环
// POST /api/v1/gemini-create-shift
func (h *GeminiHandler) CreateShift(c *gin.Context) {
	var req dto.GeminiCreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	result, err := h.refineSvc.CreateShift(c.Request.Context(), &req)
	if err != nil {
		h.handleGeminiError(c, err)
		return
	}

	response.OK(c, result)
}

// EvaluateShift 对已发布的确定班次做最终评估
// POST /api/v1/gemini-evaluate-shift
func (h *GeminiHandler) EvaluateShift(c *gin.Context) {
	var req dto.GeminiEvaluateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	result, err := h.refineSvc.EvaluateShift(c.Request.Context(), &req)
	if err != nil {
		h.handleGeminiError(c, err)
		return
	}

	response.OK(c, result)
}

// handleGeminiError 统一处理排班生成模块业务错误
func (h *GeminiHandler) handleGeminiError(c *gin.Context, err error) {
	var contractErr *oracle.ContractError

	switch {
	case errors.Is(err, pkgerrors.ErrInvalidWindow):
		response.BadRequest(c, 14101, "日期窗口非法：开始日不能晚于结束日")
	case errors.Is(err, pkgerrors.ErrWindowLeaseHeld):
		response.Conflict(c, 14102, "该店铺的排班生成正在进行中，请稍后重试")
	case errors.Is(err, service.ErrCompanyNotFound):
		response.NotFound(c, 14103, "店铺不存在")
	case errors.Is(err, service.ErrNoSubmittedShifts):
		response.BadRequest(c, 14104, "窗口内没有员工提交的希望班次")
	case errors.Is(err, service.ErrNoDecisionShifts):
		response.BadRequest(c, 14105, "窗口内没有已发布的确定班次")
	case errors.As(err, &contractErr):
		// 模型输出违反契约，对调用方而言属于上游故障
		response.Error(c, 502, 14106, "排班模型输出异常，请重试")
	case errors.Is(err, oracle.ErrOracleUnavailable):
		response.Error(c, 502, 14107, "排班模型暂时不可用")
	default:
		response.InternalError(c)
	}
}
