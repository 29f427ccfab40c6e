package book

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在(用于errors.Is判断)
	ErrBookNotFound = apperrors.ErrBookNotFound

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.ErrISBNDuplicate

	// ErrNoMatchingRecords 查询条件没有命中任何图书
	ErrNoMatchingRecords = apperrors.ErrNoMatchingRecords

	// ErrInvalidDiscount 折扣比例必须在[0,100]之间
	ErrInvalidDiscount = apperrors.New(apperrors.ErrCodeInvalidDiscount, "折扣比例必须在0-100之间")

	// ErrInvalidRating 平均分必须在[0,5]之间
	ErrInvalidRating = apperrors.New(apperrors.ErrCodeInvalidScore, "平均分必须在0-5之间")
)

// NotFound 指定ID的图书不存在
func NotFound(id uint) error {
	return apperrors.NotFound(apperrors.ErrCodeBookNotFound, "图书", id)
}

// NotFoundByISBN 指定ISBN的图书不存在
func NotFoundByISBN(isbn string) error {
	return apperrors.NotFound(apperrors.ErrCodeBookNotFound, "图书", isbn)
}
