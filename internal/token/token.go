// Package token 负责会话令牌的签发和校验：短期的access token携带脱敏后的用户信息，
// 长期的refresh token只携带user_id。两者都是HS256对称签名的JWT
package token

import (
	"Vega_Tube/internal/errs"
	"Vega_Tube/internal/model"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// NewIssuerFromEnv 从环境变量装配签发器，TTL解析失败就用默认值（access一小时，refresh十天）
func NewIssuerFromEnv() *Issuer {
	return NewIssuer(
		os.Getenv("ACCESS_TOKEN_SECRET"),
		os.Getenv("REFRESH_TOKEN_SECRET"),
		envDuration("ACCESS_TOKEN_EXPIRY", time.Hour),
		envDuration("REFRESH_TOKEN_EXPIRY", 10*24*time.Hour),
	)
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// SignAccessToken 签发access token。Payload是不加密只签名的，所以只放脱敏的用户资料，
// 绝对不能放密码哈希和refresh token
func (i *Issuer) SignAccessToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"email":    user.Email,
		"fullname": user.FullName,
		"exp":      now.Add(i.accessTTL).Unix(),
		"iat":      now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.accessSecret)
}

// SignRefreshToken 签发refresh token，只携带user_id，活得久所以信息越少越好
func (i *Issuer) SignRefreshToken(userID uint64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(i.refreshTTL).Unix(),
		"iat":     now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.refreshSecret)
}

// ParseAccessToken 验证access token的签名和有效期，成功则返回Payload
func (i *Issuer) ParseAccessToken(tokenString string) (jwt.MapClaims, error) {
	return i.parse(tokenString, i.accessSecret)
}

// ParseRefreshToken 验证refresh token，成功则返回其中携带的user_id
func (i *Issuer) ParseRefreshToken(tokenString string) (uint64, error) {
	claims, err := i.parse(tokenString, i.refreshSecret)
	if err != nil {
		return 0, err
	}
	// jwt.MapClaims里的数字一律会被解析成float64，需要断言后转回uint64
	idFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errs.ErrInvalidToken
	}
	return uint64(idFloat), nil
}

func (i *Issuer) parse(tokenString string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// 确保签名方法是对称加密族，防止alg=none这类降级攻击
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("非预期的签名方法")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		// 签名被篡改和令牌过期对调用方是同一类错误：重新登录
		return nil, errs.ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errs.ErrInvalidToken
	}
	return claims, nil
}
