package user

import (
	"context"
)

// Repository 用户仓储接口
// DDD设计说明：
// 1. 接口定义在domain层（依赖倒置原则）
// 2. 具体实现在infrastructure/persistence/mysql层
// 3. 便于单元测试（用内存实现替换）
type Repository interface {
	// Create 创建用户
	// 用户名已存在时返回ErrUsernameTaken
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找用户
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByUsername 根据用户名查找用户
	FindByUsername(ctx context.Context, username string) (*User, error)

	// Exists 判断用户是否存在
	Exists(ctx context.Context, id uint) (bool, error)

	// Update 更新用户信息
	Update(ctx context.Context, user *User) error

	// Delete 删除用户，同时删除其购物车和信用卡
	Delete(ctx context.Context, id uint) error

	// AddCreditCard 绑定信用卡
	AddCreditCard(ctx context.Context, card *CreditCard) error

	// FindCreditCards 用户的全部信用卡
	FindCreditCards(ctx context.Context, userID uint) ([]*CreditCard, error)
}
