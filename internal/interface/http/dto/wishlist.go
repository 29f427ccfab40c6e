package dto

import (
	"github.com/xiebiao/bookcatalog/internal/domain/cart"
	"github.com/xiebiao/bookcatalog/internal/domain/wishlist"
)

// CreateWishlistRequest 创建心愿单
type CreateWishlistRequest struct {
	Name string `json:"name" binding:"required,max=100" example:"暑假书单"`
}

// BookRefRequest 引用一本图书
type BookRefRequest struct {
	BookID uint `json:"book_id" binding:"required" example:"1"`
}

// WishlistResponse 心愿单响应
type WishlistResponse struct {
	ID      uint   `json:"id"`
	UserID  uint   `json:"user_id"`
	Name    string `json:"name"`
	BookIDs []uint `json:"book_ids"`
}

// ToWishlistResponse 领域实体 → HTTP响应
func ToWishlistResponse(w *wishlist.Wishlist) WishlistResponse {
	ids := w.BookIDs
	if ids == nil {
		ids = []uint{}
	}
	return WishlistResponse{ID: w.ID, UserID: w.UserID, Name: w.Name, BookIDs: ids}
}

// CartResponse 购物车响应
type CartResponse struct {
	ID      uint   `json:"id"`
	UserID  uint   `json:"user_id"`
	BookIDs []uint `json:"book_ids"`
}

// ToCartResponse 领域实体 → HTTP响应
func ToCartResponse(c *cart.ShoppingCart) CartResponse {
	ids := c.BookIDs
	if ids == nil {
		ids = []uint{}
	}
	return CartResponse{ID: c.ID, UserID: c.UserID, BookIDs: ids}
}

// SubtotalResponse 购物车合计
type SubtotalResponse struct {
	Subtotal     int64  `json:"subtotal" example:"11800"`
	SubtotalYuan string `json:"subtotal_yuan" example:"118.00"`
}
