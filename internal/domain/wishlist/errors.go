package wishlist

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 心愿单领域错误定义
var (
	ErrWishlistNotFound = apperrors.ErrWishlistNotFound
	ErrAlreadyMember    = apperrors.ErrAlreadyMember
	ErrNotMember        = apperrors.ErrNotMember

	// ErrNameTaken 同一用户下心愿单名称重复
	ErrNameTaken = apperrors.New(apperrors.ErrCodeWishlistNameTaken, "心愿单名称已存在")
)

// NotFound 指定ID的心愿单不存在
func NotFound(id uint) error {
	return apperrors.NotFound(apperrors.ErrCodeWishlistNotFound, "心愿单", id)
}

// NotFoundByName 该用户没有指定名称的心愿单
func NotFoundByName(name string) error {
	return apperrors.NotFound(apperrors.ErrCodeWishlistNotFound, "心愿单", name)
}
