package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jacksen-ng/shift-agent/config"
	"github.com/jacksen-ng/shift-agent/internal/api/handler"
	"github.com/jacksen-ng/shift-agent/internal/api/middleware"
	"github.com/jacksen-ng/shift-agent/pkg/jwt"
	"github.com/jacksen-ng/shift-agent/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, verifier *jwt.Verifier, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1（全部需要认证）──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(verifier))
	{
		// 店铺信息模块（店主）
		v1.GET("/company-info", middleware.RoleAuth("owner"), h.Company.GetCompanyInfo)
		v1.PUT("/company-info", middleware.RoleAuth("owner"), h.Company.EditCompanyInfo)

		// 员工档案模块
		v1.GET("/crew-info", h.Crew.GetCrewInfo)
		v1.PUT("/crew-info", middleware.RoleAuth("owner"), h.Crew.EditCrewInfo)

		// 员工提交希望班次
		v1.POST("/submitted-shift", middleware.RoleAuth("crew"), h.Shift.SubmitShift)

		// 草稿编辑与发布（店主）
		v1.GET("/edit-shift", middleware.RoleAuth("owner"), h.Shift.GetEditShifts)
		v1.POST("/edit-shift", middleware.RoleAuth("owner"), h.Shift.EditShifts)
		v1.POST("/complete-shift", middleware.RoleAuth("owner"), h.Shift.CompleteShift)

		// 首页：确定班次一览
		v1.GET("/home", h.Shift.GetDecisionShifts)

		// 排班生成（店主）：模型调用开销大，单独限流
		gemini := v1.Group("")
		gemini.Use(middleware.RoleAuth("owner"))
		gemini.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			gemini.POST("/gemini-create-shift", h.Gemini.CreateShift)
			gemini.POST("/gemini-evaluate-shift", h.Gemini.EvaluateShift)
		}

		// 导出（店主）
		v1.GET("/export/decision-shift", middleware.RoleAuth("owner"), h.Export.ExportDecisionShifts)
	}

	return r
}
