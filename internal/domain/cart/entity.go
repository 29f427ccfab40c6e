package cart

import (
	"slices"
	"time"
)

// ShoppingCart 购物车,每个用户最多一个,首次加入图书时创建
type ShoppingCart struct {
	ID        uint
	UserID    uint
	BookIDs   []uint
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewShoppingCart 创建空购物车
func NewShoppingCart(userID uint) *ShoppingCart {
	now := time.Now()
	return &ShoppingCart{
		UserID:    userID,
		BookIDs:   []uint{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Contains 图书是否在购物车中
func (c *ShoppingCart) Contains(bookID uint) bool {
	return slices.Contains(c.BookIDs, bookID)
}

// AddBook 已在购物车中时不做改变,返回是否新加入
func (c *ShoppingCart) AddBook(bookID uint) bool {
	if c.Contains(bookID) {
		return false
	}
	c.BookIDs = append(c.BookIDs, bookID)
	c.UpdatedAt = time.Now()
	return true
}

// RemoveBook 不存在时返回ErrNotMember
func (c *ShoppingCart) RemoveBook(bookID uint) error {
	i := slices.Index(c.BookIDs, bookID)
	if i < 0 {
		return ErrNotMember
	}
	c.BookIDs = slices.Delete(c.BookIDs, i, i+1)
	c.UpdatedAt = time.Now()
	return nil
}

// IsEmpty 购物车中没有图书
func (c *ShoppingCart) IsEmpty() bool {
	return len(c.BookIDs) == 0
}
