package author

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// ErrAuthorNotFound 作者不存在(用于errors.Is判断)
var ErrAuthorNotFound = apperrors.ErrAuthorNotFound

// NotFound 指定ID的作者不存在
func NotFound(id uint) error {
	return apperrors.NotFound(apperrors.ErrCodeAuthorNotFound, "作者", id)
}
