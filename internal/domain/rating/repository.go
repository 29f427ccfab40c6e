package rating

import (
	"context"
)

// Repository 评分仓储接口
type Repository interface {
	// Create 保存一条评分
	Create(ctx context.Context, rating *Rating) error

	// FindByBookID 某本书的全部评分(按主键升序)
	FindByBookID(ctx context.Context, bookID uint) ([]*Rating, error)
}
