package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/jacksen-ng/shift-agent/config"
)

var (
	ErrTokenExpired = errors.New("token 已过期")
	ErrTokenInvalid = errors.New("token 无效")
)

// Claims 访问 Token 的声明
// Token 由外部认证服务签发（签发与刷新不在本服务职责内），
// 这里只定义双方约定的声明结构并做校验
type Claims struct {
	UserID    int    `json:"user_id"`
	CompanyID int    `json:"company_id"`
	Role      string `json:"role"` // owner | crew
	jwtv5.RegisteredClaims
}

// Verifier 访问 Token 校验器
type Verifier struct {
	secret []byte
}

// NewVerifier 创建 Token 校验器
func NewVerifier(cfg *config.AuthConfig) *Verifier {
	return &Verifier{secret: []byte(cfg.JWTSecret)}
}

// VerifyAccessToken 校验签名与过期时间，返回声明
func (v *Verifier) VerifyAccessToken(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, ErrTokenExpired
	}
	return claims, nil
}
