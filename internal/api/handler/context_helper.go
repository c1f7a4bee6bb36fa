package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jacksen-ng/shift-agent/pkg/response"
)

// MustGetCompanyID 从 Gin 上下文中安全提取 company_id。
// 如果 JWT 中间件未正确注入 company_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetCompanyID(c *gin.Context) (int, bool) {
	v, exists := c.Get("company_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return 0, false
	}
	id, ok := v.(int)
	if !ok || id <= 0 {
		response.Unauthorized(c, 10002, "未认证")
		return 0, false
	}
	return id, true
}

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
func MustGetUserID(c *gin.Context) (int, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return 0, false
	}
	id, ok := v.(int)
	if !ok || id <= 0 {
		response.Unauthorized(c, 10002, "未认证")
		return 0, false
	}
	return id, true
}

// queryCompanyID 解析查询参数 company_id，非法时写入 400 响应。
func queryCompanyID(c *gin.Context, code int) (int, bool) {
	raw := c.Query("company_id")
	if raw == "" {
		response.BadRequest(c, code, "company_id不能为空")
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		response.BadRequest(c, code, "company_id格式非法")
		return 0, false
	}
	return id, true
}
