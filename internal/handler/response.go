package handler

import (
	"Vega_Tube/internal/errs"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ApiResponse 定义了标准的API成功响应结构，所有接口统一走这个信封
type ApiResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// ApiError 定义了标准的API错误响应结构
type ApiError struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

// sendSuccess 是一个辅助函数，用于发送标准格式的成功响应
func sendSuccess(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, ApiResponse{
		StatusCode: code,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// sendErrorResponse 是一个辅助函数，用于发送标准格式的错误响应
func sendErrorResponse(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ApiError{
		StatusCode: code,
		Message:    message,
		Success:    false,
		Errors:     []string{},
	})
}

// sendError 把业务层的哨兵错误翻译成HTTP状态码和对外文案。
// handler不关心错误怎么产生的，只负责翻译，翻译表集中在这一处
func sendError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
	case errors.Is(err, errs.ErrAlreadyExists):
		sendErrorResponse(c, http.StatusConflict, "资源已存在")
	case errors.Is(err, errs.ErrNotFound):
		sendErrorResponse(c, http.StatusNotFound, "资源不存在")
	case errors.Is(err, errs.ErrInvalidCredentials):
		// 模糊的错误提示，更安全
		sendErrorResponse(c, http.StatusUnauthorized, "用户名或密码错误")
	case errors.Is(err, errs.ErrTokenReused):
		sendErrorResponse(c, http.StatusUnauthorized, "刷新令牌已失效，请重新登录")
	case errors.Is(err, errs.ErrInvalidToken), errors.Is(err, errs.ErrUnauthorized):
		sendErrorResponse(c, http.StatusUnauthorized, "无效的授权令牌")
	case errors.Is(err, errs.ErrUpstream):
		sendErrorResponse(c, http.StatusBadGateway, "上游服务暂时不可用")
	default:
		sendErrorResponse(c, http.StatusInternalServerError, fallback)
	}
}

// currentUserID 从认证中间件写入的context里取当前用户ID。
// jwt.MapClaims中的数字会被解析为float64，context又把它装进interface{}，这里统一还原成uint64
func currentUserID(c *gin.Context) (uint64, bool) {
	userIDValue, exists := c.Get("userID")
	// 防御性编程，其实正常肯定是jwt之后再进handler的，但是就怕程序员误用
	if !exists {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return 0, false
	}
	userIDFloat, ok := userIDValue.(float64)
	if !ok {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return 0, false
	}
	return uint64(userIDFloat), true
}
