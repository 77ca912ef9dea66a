// Package errors 定义带分类的业务失败类型。
// 每个校验步骤返回 *Error，由 HTTP 层按 Kind 映射状态码。
package errors

import (
	"errors"
	"fmt"
)

// Kind 失败类别
type Kind string

const (
	KindAuthentication Kind = "authentication"
	KindAuthorization  Kind = "authorization"
	KindValidation     Kind = "validation"
	KindLocked         Kind = "locked"
	KindNotFound       Kind = "not_found"
	KindConflict       Kind = "conflict"
	KindInternal       Kind = "internal"
)

// Error 带类别的业务错误
type Error struct {
	Kind    Kind
	Message string
	// Detail 仅用于 Internal，写入响应 details 字段，不得包含敏感信息
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// New 创建业务错误
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Validation 400
func Validation(message string) *Error { return New(KindValidation, message) }

// Authorization 403
func Authorization(message string) *Error { return New(KindAuthorization, message) }

// NotFound 404
func NotFound(message string) *Error { return New(KindNotFound, message) }

// Conflict 409
func Conflict(message string) *Error { return New(KindConflict, message) }

// Locked 403（与 Authorization 区分，前端展示不同提示）
func Locked(message string) *Error { return New(KindLocked, message) }

// Internal 包装未预期的存储/运行时错误
func Internal(err error) *Error {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return &Error{Kind: KindInternal, Message: "Internal server error", Detail: detail}
}

// As 从错误链中提取 *Error
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf 返回错误类别；非业务错误一律视为 Internal
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}
