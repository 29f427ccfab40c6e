package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/author"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// authorRepository 作者仓储实现
type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository 创建作者仓储
func NewAuthorRepository(db *gorm.DB) author.Repository {
	return &authorRepository{db: db}
}

func (r *authorRepository) Create(ctx context.Context, a *author.Author) error {
	model := &AuthorModel{
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Biography: a.Biography,
		Publisher: a.Publisher,
	}
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建作者失败")
	}
	a.ID = model.ID
	a.CreatedAt = model.CreatedAt
	a.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *authorRepository) FindByID(ctx context.Context, id uint) (*author.Author, error) {
	var model AuthorModel
	if err := r.getDB(ctx).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, author.NotFound(id)
		}
		return nil, apperrors.Wrap(err, "查询作者失败")
	}
	return toAuthorEntity(&model), nil
}

// FindAll 按主键升序,去重结果依赖这个顺序
func (r *authorRepository) FindAll(ctx context.Context) ([]*author.Author, error) {
	var models []AuthorModel
	if err := r.getDB(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询作者列表失败")
	}
	authors := make([]*author.Author, len(models))
	for i := range models {
		authors[i] = toAuthorEntity(&models[i])
	}
	return authors, nil
}

func (r *authorRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.getDB(ctx).Model(&AuthorModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, apperrors.Wrap(err, "查询作者失败")
	}
	return count > 0, nil
}

// Delete 删除作者及其名下图书
func (r *authorRepository) Delete(ctx context.Context, id uint) error {
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		var bookIDs []uint
		if err := tx.Model(&BookModel{}).Where("author_id = ?", id).Pluck("id", &bookIDs).Error; err != nil {
			return apperrors.Wrap(err, "查询作者图书失败")
		}
		if _, err := deleteBooks(tx, bookIDs); err != nil {
			return err
		}

		result := tx.Delete(&AuthorModel{}, id)
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "删除作者失败")
		}
		if result.RowsAffected == 0 {
			return author.NotFound(id)
		}
		return nil
	})
}

func toAuthorEntity(m *AuthorModel) *author.Author {
	return &author.Author{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Biography: m.Biography,
		Publisher: m.Publisher,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *authorRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}
