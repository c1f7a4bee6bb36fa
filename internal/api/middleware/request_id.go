package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDKey = "request_id"
	// 外部传入的 Request-ID 超长时丢弃改用自生成值，防止日志注入
	requestIDMaxLen = 64
)

// RequestID 请求追踪 ID 中间件
// 网关传来的 X-Request-ID 原样透传，没有则生成 UUID，
// 注入 gin.Context 并写回响应头，供日志中间件串联单次请求
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.New().String()
		}

		c.Set(requestIDKey, rid)
		c.Header("X-Request-ID", rid)

		c.Next()
	}
}
