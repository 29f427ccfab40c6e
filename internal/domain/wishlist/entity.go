package wishlist

import (
	"slices"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// Wishlist 用户命名的心愿单
// 同一用户下名称唯一,BookIDs为集合语义(不重复,保持加入顺序)
type Wishlist struct {
	ID        uint
	UserID    uint
	Name      string
	BookIDs   []uint
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewWishlist 创建空心愿单
func NewWishlist(userID uint, name string) (*Wishlist, error) {
	now := time.Now()
	w := &Wishlist{
		UserID:    userID,
		Name:      name,
		BookIDs:   []uint{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := validation.ValidateStruct(w,
		validation.Field(&w.Name, validation.Required, validation.RuneLength(1, 100)),
	)
	if err != nil {
		return nil, apperrors.Invalid(err)
	}
	return w, nil
}

// Contains 图书是否在心愿单中
func (w *Wishlist) Contains(bookID uint) bool {
	return slices.Contains(w.BookIDs, bookID)
}

// AddBook 已存在时返回ErrAlreadyMember
func (w *Wishlist) AddBook(bookID uint) error {
	if w.Contains(bookID) {
		return ErrAlreadyMember
	}
	w.BookIDs = append(w.BookIDs, bookID)
	w.UpdatedAt = time.Now()
	return nil
}

// RemoveBook 不存在时返回ErrNotMember
func (w *Wishlist) RemoveBook(bookID uint) error {
	i := slices.Index(w.BookIDs, bookID)
	if i < 0 {
		return ErrNotMember
	}
	w.BookIDs = slices.Delete(w.BookIDs, i, i+1)
	w.UpdatedAt = time.Now()
	return nil
}

// IsOwnedBy 检查心愿单是否属于指定用户
func (w *Wishlist) IsOwnedBy(userID uint) bool {
	return w.UserID == userID
}
