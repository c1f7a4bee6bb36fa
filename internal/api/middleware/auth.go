package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jacksen-ng/shift-agent/pkg/jwt"
	"github.com/jacksen-ng/shift-agent/pkg/response"
)

// JWTAuth JWT 认证中间件
// 从 Authorization: Bearer <token> 中提取并校验 Access Token，
// Token 由外部认证服务签发，本服务只做验证
func JWTAuth(verifier *jwt.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "缺少认证头")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "认证头格式无效")
			c.Abort()
			return
		}

		claims, err := verifier.VerifyAccessToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.Unauthorized(c, 10002, "Token 已过期")
			} else {
				response.Unauthorized(c, 10002, "Token 无效")
			}
			c.Abort()
			return
		}

		// 将用户信息注入上下文
		c.Set("user_id", claims.UserID)
		c.Set("company_id", claims.CompanyID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// RoleAuth 角色权限中间件
// 检查当前用户是否具有指定角色之一
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, 10002, "未认证")
			c.Abort()
			return
		}

		userRole := role.(string)
		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "无权限访问")
		c.Abort()
	}
}
