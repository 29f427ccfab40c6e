package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/comment"
	"github.com/xiebiao/bookcatalog/internal/domain/rating"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// ratingRepository 评分仓储实现
type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository 创建评分仓储
func NewRatingRepository(db *gorm.DB) rating.Repository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, rt *rating.Rating) error {
	model := &RatingModel{BookID: rt.BookID, UserID: rt.UserID, Score: rt.Score, CreatedAt: rt.CreatedAt}
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "保存评分失败")
	}
	rt.ID = model.ID
	rt.CreatedAt = model.CreatedAt
	return nil
}

func (r *ratingRepository) FindByBookID(ctx context.Context, bookID uint) ([]*rating.Rating, error) {
	var models []RatingModel
	if err := dbFromContext(ctx, r.db).Where("book_id = ?", bookID).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询评分失败")
	}
	ratings := make([]*rating.Rating, len(models))
	for i, m := range models {
		ratings[i] = &rating.Rating{ID: m.ID, BookID: m.BookID, UserID: m.UserID, Score: m.Score, CreatedAt: m.CreatedAt}
	}
	return ratings, nil
}

// commentRepository 评论仓储实现
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 创建评论仓储
func NewCommentRepository(db *gorm.DB) comment.Repository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, c *comment.Comment) error {
	model := &CommentModel{BookID: c.BookID, UserID: c.UserID, Content: c.Content, CreatedAt: c.CreatedAt}
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "保存评论失败")
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	return nil
}

func (r *commentRepository) FindByBookID(ctx context.Context, bookID uint) ([]*comment.Comment, error) {
	var models []CommentModel
	if err := dbFromContext(ctx, r.db).Where("book_id = ?", bookID).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询评论失败")
	}
	comments := make([]*comment.Comment, len(models))
	for i, m := range models {
		comments[i] = &comment.Comment{ID: m.ID, BookID: m.BookID, UserID: m.UserID, Content: m.Content, CreatedAt: m.CreatedAt}
	}
	return comments, nil
}
