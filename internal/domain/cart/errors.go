package cart

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 购物车领域错误定义
var (
	ErrCartNotFound = apperrors.ErrCartNotFound
	ErrCartEmpty    = apperrors.ErrCartEmpty
	ErrNotMember    = apperrors.ErrNotMember

	// ErrCartExists 每个用户只有一个购物车
	ErrCartExists = apperrors.New(apperrors.ErrCodeDuplicateEntry, "购物车已存在")
)

// NotFoundForUser 用户还没有购物车
func NotFoundForUser(userID uint) error {
	return apperrors.Newf(apperrors.ErrCodeCartNotFound, "用户%d的购物车不存在", userID)
}
