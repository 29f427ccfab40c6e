package wishlist

import (
	"context"
)

// Repository 心愿单仓储接口
// 读出的Wishlist包含完整的BookIDs
type Repository interface {
	// Create 创建心愿单(名称重复时返回ErrNameTaken)
	Create(ctx context.Context, wishlist *Wishlist) error

	// FindByID 不存在时返回NotFound(id)
	FindByID(ctx context.Context, id uint) (*Wishlist, error)

	// FindByNameAndUserID 按用户和名称查找
	FindByNameAndUserID(ctx context.Context, name string, userID uint) (*Wishlist, error)

	// FindByUserID 用户的全部心愿单
	FindByUserID(ctx context.Context, userID uint) ([]*Wishlist, error)

	// AddMember 加入一本图书,已在心愿单中时返回ErrAlreadyMember
	// 只插入一行关联,不改动其余成员
	AddMember(ctx context.Context, wishlistID, bookID uint) error

	// RemoveMember 移除一本图书,不在心愿单中时返回ErrNotMember
	// 并发移除同一本书时只有一方成功
	RemoveMember(ctx context.Context, wishlistID, bookID uint) error
}
