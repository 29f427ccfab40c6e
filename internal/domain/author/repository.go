package author

import (
	"context"
)

// Repository 作者仓储接口
type Repository interface {
	// Create 创建作者
	Create(ctx context.Context, author *Author) error

	// FindByID 不存在时返回NotFound(id)
	FindByID(ctx context.Context, id uint) (*Author, error)

	// FindAll 按主键升序返回全部作者
	FindAll(ctx context.Context) ([]*Author, error)

	// Exists 判断作者是否存在
	Exists(ctx context.Context, id uint) (bool, error)

	// Delete 删除作者，该作者名下的图书一并删除
	Delete(ctx context.Context, id uint) error
}
