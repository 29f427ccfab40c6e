package cart

import (
	"context"
	"errors"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
)

// Service 购物车领域服务
type Service interface {
	// LoadOrCreate 读取用户的购物车,不存在则创建
	LoadOrCreate(ctx context.Context, userID uint) (*ShoppingCart, error)

	// AddBook 加入图书,已在购物车中时不做改变
	AddBook(ctx context.Context, userID, bookID uint) (*ShoppingCart, error)

	// RemoveBook 移除图书
	RemoveBook(ctx context.Context, userID, bookID uint) error

	// ListBooks 购物车中的图书,购物车不存在或为空时返回ErrCartEmpty
	ListBooks(ctx context.Context, userID uint) ([]*book.Book, error)

	// Subtotal 价格合计(分),没有购物车时为0
	Subtotal(ctx context.Context, userID uint) (int64, error)
}

type service struct {
	repo  Repository
	users user.Repository
	books book.Repository
}

// NewService 创建购物车服务
func NewService(repo Repository, users user.Repository, books book.Repository) Service {
	return &service{repo: repo, users: users, books: books}
}

func (s *service) LoadOrCreate(ctx context.Context, userID uint) (*ShoppingCart, error) {
	c, err := s.repo.FindByUserID(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, ErrCartNotFound) {
		return nil, err
	}

	c = NewShoppingCart(userID)
	if err := s.repo.Create(ctx, c); err != nil {
		// 并发请求已先创建,读取对方创建的购物车
		if errors.Is(err, ErrCartExists) {
			return s.repo.FindByUserID(ctx, userID)
		}
		return nil, err
	}
	return c, nil
}

func (s *service) AddBook(ctx context.Context, userID, bookID uint) (*ShoppingCart, error) {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, user.NotFound(userID)
	}
	ok, err = s.books.Exists(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, book.NotFound(bookID)
	}

	c, err := s.LoadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c.AddBook(bookID) {
		if _, err := s.repo.AddMember(ctx, c.ID, bookID); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (s *service) RemoveBook(ctx context.Context, userID, bookID uint) error {
	c, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			return ErrNotMember
		}
		return err
	}
	if err := c.RemoveBook(bookID); err != nil {
		return err
	}
	return s.repo.RemoveMember(ctx, c.ID, bookID)
}

func (s *service) ListBooks(ctx context.Context, userID uint) ([]*book.Book, error) {
	c, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			return nil, ErrCartEmpty
		}
		return nil, err
	}
	if c.IsEmpty() {
		return nil, ErrCartEmpty
	}

	books := make([]*book.Book, 0, len(c.BookIDs))
	for _, id := range c.BookIDs {
		b, err := s.books.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, nil
}

func (s *service) Subtotal(ctx context.Context, userID uint) (int64, error) {
	books, err := s.ListBooks(ctx, userID)
	if errors.Is(err, ErrCartEmpty) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var total int64
	for _, b := range books {
		total += b.Price
	}
	return total, nil
}
