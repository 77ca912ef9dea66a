package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"vtufest/backend/internal/api/middleware"
	"vtufest/backend/internal/dto"
	"vtufest/backend/pkg/response"
)

// MustGetAuth 从 Gin 上下文中安全提取调用方身份。
// JWT 中间件未注入时写入 401 响应并返回 false，调用方应直接 return。
func MustGetAuth(c *gin.Context) (*dto.AuthContext, bool) {
	v, exists := c.Get(middleware.AuthContextKey)
	if !exists {
		response.Error(c, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	auth, ok := v.(*dto.AuthContext)
	if !ok || auth == nil {
		response.Error(c, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	return auth, true
}

// bindJSON 解析请求体；空请求体视为 {}
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "Invalid JSON body")
		return false
	}
	return true
}
