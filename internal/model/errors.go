/**
 * 模型:错误定义
 * @author: sun977
 * @date: 2025.09.18
 * @description: 业务错误分类定义，handler 层统一翻译为 {code, message} 响应
 * @func: 哨兵错误与 ValidationError 结构体
 */
package model

import "errors"

// 业务错误分类
// handler 层根据错误类别选择响应 code：
//   ValidationError      -> 400 (HTTP 200，错误仅以 code 区分)
//   ErrNotFound          -> 404
//   ErrConflict          -> 409 (唯一约束冲突)
//   ErrForbiddenReference -> 500 (存在引用，拒绝删除)
//   其余(含 ErrInternalStore) -> 500，事务回滚后响应
var (
	ErrNotFound           = errors.New("资源不存在")
	ErrConflict           = errors.New("唯一约束冲突")
	ErrForbiddenReference = errors.New("存在关联引用，不允许操作")
	ErrInternalStore      = errors.New("存储层内部错误")

	// ErrCyclicHierarchy 树构建时检测到父子环路
	ErrCyclicHierarchy = errors.New("层级关系存在环路")

	// 认证相关错误
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUserDisabled       = errors.New("用户已被禁用")
	ErrTokenInvalid       = errors.New("令牌无效")
	ErrTokenExpired       = errors.New("令牌已过期")
	ErrPermissionDenied   = errors.New("权限不足")
)

// ValidationError 字段级验证错误
// 多个字段同时未通过校验时，边界只回显最先发现的一条(first-found wins)
type ValidationError struct {
	Field   string `json:"field"`   // 字段名
	Message string `json:"message"` // 错误消息
}

// NewValidationError 创建验证错误
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Error 实现error接口
func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError 检查是否为验证错误
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
