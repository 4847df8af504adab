package middleware

import (
	"Vega_Tube/internal/token"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// apiError 和handler包的错误信封同构，认证失败也走统一的错误格式
type apiError struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{
		StatusCode: http.StatusUnauthorized,
		Message:    message,
		Success:    false,
		Errors:     []string{},
	})
}

// 中间件工厂，持有签发器以便和签发时用同一套密钥验签
// 流程：1、从"Authorization"头或accessToken Cookie取令牌 2、验证"Bearer [token]"格式 3、验签+检查过期 4、若成功，把claims里的用户信息放入context
func AuthMiddleware(issuer *token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			// 通常Token的格式是 "Bearer [token]"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				abortUnauthorized(c, "授权令牌格式不正确")
				return
			}
			tokenString = parts[1]
		} else {
			// 浏览器场景下令牌在HttpOnly Cookie里
			tokenString, _ = c.Cookie("accessToken")
		}

		if tokenString == "" {
			// 立刻调用c.Abort()，阻止后续的任何处理器（包括其他中间件和最终的handler）被执行
			abortUnauthorized(c, "请求未包含授权令牌")
			return
		}

		claims, err := issuer.ParseAccessToken(tokenString)
		if err != nil {
			abortUnauthorized(c, "无效的授权令牌")
			return
		}

		// Token验证成功！将用户信息存入Context，以便后续使用
		c.Set("userID", claims["user_id"])
		c.Set("username", claims["username"])

		// 放行，继续处理请求
		c.Next()
	}
}
