package user

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 用户领域错误定义
var (
	// ErrUserNotFound 用户不存在(用于errors.Is判断)
	ErrUserNotFound = apperrors.ErrUserNotFound

	// ErrUsernameTaken 用户名已被占用
	ErrUsernameTaken = apperrors.ErrUsernameTaken
)

// NotFound 指定ID的用户不存在
func NotFound(id uint) error {
	return apperrors.NotFound(apperrors.ErrCodeUserNotFound, "用户", id)
}

// NotFoundByUsername 指定用户名的用户不存在
func NotFoundByUsername(username string) error {
	return apperrors.NotFound(apperrors.ErrCodeUserNotFound, "用户", username)
}
