package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "vtufest/backend/pkg/errors"
)

// AuthExpiredMessage 认证失败时固定返回的提示，前端据此跳转登录页
const AuthExpiredMessage = "Token expired. Redirecting to login..."

// Response 统一响应结构
// 成功：success=true，可带 message 与 data；失败：success=false + error（+ details）
type Response struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message,omitempty"`
	Data     interface{} `json:"data,omitempty"`
	Error    string      `json:"error,omitempty"`
	Details  string      `json:"details,omitempty"`
	Redirect string      `json:"redirect,omitempty"`
}

// ── 成功响应 ──

// OK 200 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// OKMessage 200 成功响应（带提示语）
func OKMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, Response{
		Success: false,
		Error:   message,
	})
}

// ErrorWithDetails 带详情的错误响应
func ErrorWithDetails(c *gin.Context, httpStatus int, message, details string) {
	c.JSON(httpStatus, Response{
		Success: false,
		Error:   message,
		Details: details,
	})
}

// AuthRequired 401，固定提示 + 登录跳转地址
func AuthRequired(c *gin.Context, redirect string) {
	c.JSON(http.StatusUnauthorized, Response{
		Success:  false,
		Message:  AuthExpiredMessage,
		Redirect: redirect,
	})
}

// ── 常见快捷方式 ──

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// MethodNotAllowed 405
func MethodNotAllowed(c *gin.Context) {
	Error(c, http.StatusMethodNotAllowed, "Method not allowed")
}

// InternalError 500，details 用于排查
func InternalError(c *gin.Context, details string) {
	ErrorWithDetails(c, http.StatusInternalServerError, "Internal server error", details)
}

// ── 业务错误映射 ──

// StatusFor 业务错误类别 → HTTP 状态码
func StatusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindAuthentication:
		return http.StatusUnauthorized
	case apperrors.KindAuthorization, apperrors.KindLocked:
		return http.StatusForbidden
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Fail 按错误类别写出响应；未分类的错误按 500 处理并附带 details
func Fail(c *gin.Context, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		appErr = apperrors.Internal(err)
	}
	if appErr.Kind == apperrors.KindInternal {
		_ = c.Error(err)
		InternalError(c, appErr.Detail)
		return
	}
	Error(c, StatusFor(appErr.Kind), appErr.Message)
}
