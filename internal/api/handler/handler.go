package handler

import "github.com/jacksen-ng/shift-agent/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Company *CompanyHandler
	Crew    *CrewHandler
	Shift   *ShiftHandler
	Gemini  *GeminiHandler
	Export  *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Company: NewCompanyHandler(svc.Company),
		Crew:    NewCrewHandler(svc.Crew),
		Shift:   NewShiftHandler(svc.Shift),
		Gemini:  NewGeminiHandler(svc.Refine),
		Export:  NewExportHandler(svc.Export),
	}
}
