package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/jacksen-ng/shift-agent/internal/service"
	"github.com/jacksen-ng/shift-agent/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportDecisionShifts 导出确定班次
// GET /api/v1/export/decision-shift?company_id=1
func (h *ExportHandler) ExportDecisionShifts(c *gin.Context) {
	companyID, ok := queryCompanyID(c, 15001)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportDecisionShifts(c.Request.Context(), companyID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoDecisions):
		response.NotFound(c, 15101, "该店铺暂无确定班次")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
