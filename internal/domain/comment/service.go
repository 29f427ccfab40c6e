package comment

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
)

// Service 评论领域服务
type Service interface {
	// Add 发表评论,用户和图书都必须存在
	Add(ctx context.Context, userID, bookID uint, content string) (*Comment, error)

	// ListByBook 某本书的全部评论
	ListByBook(ctx context.Context, bookID uint) ([]*Comment, error)
}

type service struct {
	repo  Repository
	users user.Repository
	books book.Repository
}

// NewService 创建评论服务
func NewService(repo Repository, users user.Repository, books book.Repository) Service {
	return &service{repo: repo, users: users, books: books}
}

func (s *service) Add(ctx context.Context, userID, bookID uint, content string) (*Comment, error) {
	c, err := NewComment(userID, bookID, content)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.ensureBook(ctx, bookID); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) ListByBook(ctx context.Context, bookID uint) ([]*Comment, error) {
	if err := s.ensureBook(ctx, bookID); err != nil {
		return nil, err
	}
	return s.repo.FindByBookID(ctx, bookID)
}

func (s *service) ensureUser(ctx context.Context, id uint) error {
	ok, err := s.users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return user.NotFound(id)
	}
	return nil
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
