package errors

import (
	"errors"
	"fmt"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型（不要直接暴露HTTP状态码）
// 2. Message是用户友好的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 错误码相同即视为同一类错误
// 例如 errors.Is(NotFound(ErrCodeBookNotFound, "图书", 3), ErrBookNotFound) 为true
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf 格式化创建AppError
func Newf(code int, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// NotFound 按实体类型和ID生成"不存在"错误
// kind为实体名称（如"图书"、"作者"），code决定具体的错误类别
func NotFound(code int, kind string, id interface{}) *AppError {
	return Newf(code, "%s不存在: %v", kind, id)
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、业务规则校验失败）
// - 5xxxx: 服务端错误（数据库异常、外部服务调用失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误

	// 认证授权错误（40100-40199）
	ErrCodeUnauthorized    = 40100 // 未登录
	ErrCodeInvalidToken    = 40101 // Token无效
	ErrCodeTokenExpired    = 40102 // Token过期
	ErrCodeInvalidPassword = 40103 // 密码错误
	ErrCodeForbidden       = 40104 // 无权限

	// 资源错误（40400-40499）
	ErrCodeNotFound         = 40400 // 资源不存在(通用)
	ErrCodeUserNotFound     = 40401 // 用户不存在
	ErrCodeBookNotFound     = 40402 // 图书不存在
	ErrCodeAuthorNotFound   = 40403 // 作者不存在
	ErrCodeWishlistNotFound = 40404 // 心愿单不存在
	ErrCodeRatingNotFound   = 40405 // 评分不存在
	ErrCodeCartNotFound     = 40406 // 购物车不存在

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError     = 40000 // 业务错误(通用)
	ErrCodeISBNDuplicate     = 40004 // ISBN已存在
	ErrCodeWeakPassword      = 40005 // 密码强度不足
	ErrCodeNoMatchingRecords = 40006 // 没有匹配的记录
	ErrCodeAlreadyMember     = 40007 // 已在集合中
	ErrCodeNotMember         = 40008 // 不在集合中
	ErrCodeDuplicateEntry    = 40009 // 重复记录(通用)
	ErrCodeUsernameTaken     = 40010 // 用户名已被占用
	ErrCodeWishlistNameTaken = 40011 // 心愿单名称重复
	ErrCodeCartEmpty         = 40012 // 购物车为空

	// 参数错误（40900-40999）
	ErrCodeInvalidParams    = 40900 // 参数错误
	ErrCodeBindError        = 40901 // 参数绑定失败
	ErrCodeInvalidLength    = 40902 // ISBN长度错误
	ErrCodeInvalidCharacter = 40903 // ISBN包含非法字符
	ErrCodeInvalidChecksum  = 40904 // ISBN校验位错误
	ErrCodeInvalidDiscount  = 40905 // 折扣比例非法
	ErrCodeInvalidScore     = 40906 // 评分超出范围
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "系统内部错误")
	ErrDatabaseError = New(ErrCodeDatabaseError, "数据库错误")
	ErrRedisError    = New(ErrCodeRedisError, "缓存服务错误")

	// 认证授权
	ErrUnauthorized    = New(ErrCodeUnauthorized, "请先登录")
	ErrInvalidToken    = New(ErrCodeInvalidToken, "无效的Token")
	ErrTokenExpired    = New(ErrCodeTokenExpired, "Token已过期")
	ErrInvalidPassword = New(ErrCodeInvalidPassword, "用户名或密码错误")
	ErrForbidden       = New(ErrCodeForbidden, "无权限访问")

	// 资源不存在
	ErrNotFound         = New(ErrCodeNotFound, "资源不存在")
	ErrUserNotFound     = New(ErrCodeUserNotFound, "用户不存在")
	ErrBookNotFound     = New(ErrCodeBookNotFound, "图书不存在")
	ErrAuthorNotFound   = New(ErrCodeAuthorNotFound, "作者不存在")
	ErrWishlistNotFound = New(ErrCodeWishlistNotFound, "心愿单不存在")
	ErrRatingNotFound   = New(ErrCodeRatingNotFound, "评分不存在")
	ErrCartNotFound     = New(ErrCodeCartNotFound, "购物车不存在")

	// 业务规则
	ErrISBNDuplicate     = New(ErrCodeISBNDuplicate, "ISBN号已存在")
	ErrWeakPassword      = New(ErrCodeWeakPassword, "密码强度不足（需8-20位，包含字母和数字）")
	ErrNoMatchingRecords = New(ErrCodeNoMatchingRecords, "没有匹配的记录")
	ErrAlreadyMember     = New(ErrCodeAlreadyMember, "图书已在列表中")
	ErrNotMember         = New(ErrCodeNotMember, "图书不在列表中")
	ErrUsernameTaken     = New(ErrCodeUsernameTaken, "用户名已被占用")
	ErrCartEmpty         = New(ErrCodeCartEmpty, "购物车为空")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError     = New(ErrCodeBindError, "参数格式错误")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

// IsClientError 4xxxx错误码由调用方引起
func IsClientError(err error) bool {
	code := GetAppError(err).Code
	return code >= 40000 && code < 50000
}

// Invalid 将校验失败（如ozzo-validation的字段错误）转换为参数错误
// err为nil时返回nil
func Invalid(err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    ErrCodeInvalidParams,
		Message: "参数错误: " + err.Error(),
	}
}
