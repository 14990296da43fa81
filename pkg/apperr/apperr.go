package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind 错误类别，决定 HTTP 状态码
type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindInternal     Kind = "internal"
)

// 对外暴露的错误码
const (
	CodeMissingFields   = "MISSING_FIELDS"
	CodeMissingQuery    = "MISSING_QUERY"
	CodeValidation      = "VALIDATION_ERROR"
	CodeInvalidID       = "INVALID_ID"
	CodeUnsupportedType = "UNSUPPORTED_TYPE"
	CodeTaxonomyCycle   = "TAXONOMY_CYCLE"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeHasChildren     = "HAS_CHILDREN"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeInternal        = "INTERNAL_SERVER_ERROR"
)

// Error 领域错误
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus 错误类别 -> HTTP 状态码
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// WithCause 附加底层错误
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// ==================== 构造函数 ====================

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Validation 参数校验失败
func Validation(code, format string, args ...interface{}) *Error {
	return New(KindValidation, code, fmt.Sprintf(format, args...))
}

// MissingFields 必填字段缺失
func MissingFields(format string, args ...interface{}) *Error {
	return Validation(CodeMissingFields, format, args...)
}

// UnsupportedType 批量导入类型不支持
func UnsupportedType(typ string) *Error {
	return New(KindValidation, CodeUnsupportedType, fmt.Sprintf("unsupported type %q", typ))
}

// NotFound 资源不存在
func NotFound(entity string, id interface{}) *Error {
	return New(KindNotFound, CodeNotFound, fmt.Sprintf("%s %v not found", entity, id))
}

// Conflict 唯一约束冲突
func Conflict(format string, args ...interface{}) *Error {
	return New(KindConflict, CodeConflict, fmt.Sprintf(format, args...))
}

// Internal 未归类的内部错误
func Internal(cause error) *Error {
	return New(KindInternal, CodeInternal, "internal server error").WithCause(cause)
}

// ==================== 辅助函数 ====================

// As 从错误链提取 *Error
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Wrap 非领域错误统一包装为 Internal
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := As(err); ok {
		return e
	}
	return Internal(err)
}

func IsKind(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}

func IsNotFound(err error) bool   { return IsKind(err, KindNotFound) }
func IsConflict(err error) bool   { return IsKind(err, KindConflict) }
func IsValidation(err error) bool { return IsKind(err, KindValidation) }

// HasCode 检查错误码
func HasCode(err error, code string) bool {
	e, ok := As(err)
	return ok && e.Code == code
}
