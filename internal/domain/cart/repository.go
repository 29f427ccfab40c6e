package cart

import (
	"context"
)

// Repository 购物车仓储接口
type Repository interface {
	// FindByUserID 用户没有购物车时返回NotFoundForUser
	FindByUserID(ctx context.Context, userID uint) (*ShoppingCart, error)

	// Create 创建购物车,用户已有购物车时返回ErrCartExists
	Create(ctx context.Context, cart *ShoppingCart) error

	// AddMember 加入一本图书,返回是否新加入(已存在时不报错)
	AddMember(ctx context.Context, cartID, bookID uint) (bool, error)

	// RemoveMember 移除一本图书,不在购物车中时返回ErrNotMember
	RemoveMember(ctx context.Context, cartID, bookID uint) error
}
