package comment

import (
	"context"
)

// Repository 评论仓储接口
type Repository interface {
	Create(ctx context.Context, comment *Comment) error

	// FindByBookID 按发表时间先后返回
	FindByBookID(ctx context.Context, bookID uint) ([]*Comment, error)
}
