package handler

import (
	"Vega_Tube/internal/errs"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// 业务错误到HTTP状态码的翻译表
func TestSendErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{errs.ErrValidation, http.StatusBadRequest},
		{errs.ErrAlreadyExists, http.StatusConflict},
		{errs.ErrNotFound, http.StatusNotFound},
		{errs.ErrInvalidCredentials, http.StatusUnauthorized},
		{errs.ErrTokenReused, http.StatusUnauthorized},
		{errs.ErrInvalidToken, http.StatusUnauthorized},
		{errs.ErrUnauthorized, http.StatusUnauthorized},
		{errs.ErrUpstream, http.StatusBadGateway},
		{fmt.Errorf("数据库连不上"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		sendError(c, tc.err, "fallback")
		assert.Equal(t, tc.want, w.Code, "err=%v", tc.err)

		var body ApiError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, tc.want, body.StatusCode)
		assert.False(t, body.Success)
		assert.NotEmpty(t, body.Message)
	}
}

// 包装过的错误也要能命中翻译表
func TestSendErrorUnwraps(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	sendError(c, fmt.Errorf("删除视频: %w", errs.ErrNotFound), "fallback")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// context里的userID缺失或类型不对都按401处理，不panic
func TestCurrentUserID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	_, ok := currentUserID(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Set("userID", "不是数字")
	_, ok = currentUserID(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Set("userID", float64(42))
	id, ok := currentUserID(c)
	assert.True(t, ok)
	assert.Equal(t, uint64(42), id)
}

func TestSendSuccessEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	sendSuccess(c, http.StatusCreated, gin.H{"id": 1}, "创建成功")
	assert.Equal(t, http.StatusCreated, w.Code)

	var body ApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusCreated, body.StatusCode)
	assert.True(t, body.Success)
	assert.Equal(t, "创建成功", body.Message)
	assert.NotNil(t, body.Data)
}
