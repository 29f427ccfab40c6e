package wishlist

import (
	"context"
	"errors"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
)

// Service 心愿单领域服务
// 移入购物车涉及两个聚合,由应用层的MoveToCartUseCase在事务中完成
type Service interface {
	// Create 创建心愿单,用户必须存在且名称未被该用户使用
	Create(ctx context.Context, userID uint, name string) (*Wishlist, error)

	// Get 查询心愿单
	Get(ctx context.Context, id uint) (*Wishlist, error)

	// ListByUser 用户的全部心愿单
	ListByUser(ctx context.Context, userID uint) ([]*Wishlist, error)

	// AddBook 加入图书
	AddBook(ctx context.Context, wishlistID, bookID uint) error

	// RemoveBook 移除图书
	RemoveBook(ctx context.Context, wishlistID, bookID uint) error

	// ListBooks 心愿单中的图书(按加入顺序)
	ListBooks(ctx context.Context, wishlistID uint) ([]*book.Book, error)
}

type service struct {
	repo  Repository
	users user.Repository
	books book.Repository
}

// NewService 创建心愿单服务
func NewService(repo Repository, users user.Repository, books book.Repository) Service {
	return &service{repo: repo, users: users, books: books}
}

func (s *service) Create(ctx context.Context, userID uint, name string) (*Wishlist, error) {
	w, err := NewWishlist(userID, name)
	if err != nil {
		return nil, err
	}

	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, user.NotFound(userID)
	}

	existing, err := s.repo.FindByNameAndUserID(ctx, name, userID)
	if err == nil && existing != nil {
		return nil, ErrNameTaken
	}
	if err != nil && !errors.Is(err, ErrWishlistNotFound) {
		return nil, err
	}

	if err := s.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Wishlist, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListByUser(ctx context.Context, userID uint) ([]*Wishlist, error) {
	return s.repo.FindByUserID(ctx, userID)
}

func (s *service) AddBook(ctx context.Context, wishlistID, bookID uint) error {
	w, err := s.repo.FindByID(ctx, wishlistID)
	if err != nil {
		return err
	}
	if err := s.ensureBook(ctx, bookID); err != nil {
		return err
	}
	// 快照中已存在则直接拒绝,否则以关联表的唯一约束为准
	if err := w.AddBook(bookID); err != nil {
		return err
	}
	return s.repo.AddMember(ctx, wishlistID, bookID)
}

func (s *service) RemoveBook(ctx context.Context, wishlistID, bookID uint) error {
	w, err := s.repo.FindByID(ctx, wishlistID)
	if err != nil {
		return err
	}
	if err := w.RemoveBook(bookID); err != nil {
		return err
	}
	return s.repo.RemoveMember(ctx, wishlistID, bookID)
}

func (s *service) ListBooks(ctx context.Context, wishlistID uint) ([]*book.Book, error) {
	w, err := s.repo.FindByID(ctx, wishlistID)
	if err != nil {
		return nil, err
	}

	books := make([]*book.Book, 0, len(w.BookIDs))
	for _, id := range w.BookIDs {
		b, err := s.books.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, nil
}

func (s *service) ensureBook(ctx context.Context, id uint) error {
	ok, err := s.books.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return book.NotFound(id)
	}
	return nil
}
