package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 所有查询都通过getDB(ctx),以便加入应用层开启的事务
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	// 回填自增ID
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	if err := r.getDB(ctx).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, book.NotFound(id)
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// FindByISBN 根据ISBN查找图书(存在重复时返回最早登记的一本)
func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	var model BookModel
	if err := r.getDB(ctx).Where("isbn = ?", isbn).Order("id ASC").First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, book.NotFoundByISBN(isbn)
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

func (r *bookRepository) FindAll(ctx context.Context) ([]*book.Book, error) {
	return r.find(ctx, r.getDB(ctx).Order("id ASC"))
}

func (r *bookRepository) FindByPublisher(ctx context.Context, publisher string) ([]*book.Book, error) {
	return r.find(ctx, r.byPublisher(ctx, publisher))
}

// LockByPublisher 必须在事务中调用
func (r *bookRepository) LockByPublisher(ctx context.Context, publisher string) ([]*book.Book, error) {
	return r.find(ctx, r.byPublisher(ctx, publisher).Clauses(clause.Locking{Strength: "UPDATE"}))
}

func (r *bookRepository) byPublisher(ctx context.Context, publisher string) *gorm.DB {
	db := r.getDB(ctx)
	cond := "publisher = ?"
	if db.Dialector.Name() == "mysql" {
		// 默认排序规则不区分大小写,BINARY保证精确匹配
		cond = "BINARY publisher = ?"
	}
	return db.Where(cond, publisher).Order("id ASC")
}

func (r *bookRepository) FindByGenre(ctx context.Context, genre string) ([]*book.Book, error) {
	return r.find(ctx, r.getDB(ctx).Where("genre = ?", genre).Order("id ASC"))
}

func (r *bookRepository) FindByAuthorID(ctx context.Context, authorID uint) ([]*book.Book, error) {
	return r.find(ctx, r.getDB(ctx).Where("author_id = ?", authorID).Order("id ASC"))
}

func (r *bookRepository) FindByRatingAtLeast(ctx context.Context, min float64) ([]*book.Book, error) {
	return r.find(ctx, r.getDB(ctx).Where("rating >= ?", min).Order("rating DESC, id ASC"))
}

func (r *bookRepository) TopSellers(ctx context.Context, limit int) ([]*book.Book, error) {
	return r.find(ctx, r.getDB(ctx).Order("copies_sold DESC, id ASC").Limit(limit))
}

// List 分页查询图书列表
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	var total int64
	query := r.getDB(ctx).Model(&BookModel{})

	// 关键词搜索(搜索标题、出版社、类型)
	if params.Keyword != "" {
		keyword := "%" + params.Keyword + "%"
		query = query.Where("title LIKE ? OR publisher LIKE ? OR genre LIKE ?", keyword, keyword, keyword)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	switch params.SortBy {
	case "price_asc":
		query = query.Order("price ASC")
	case "price_desc":
		query = query.Order("price DESC")
	case "rating_desc":
		query = query.Order("rating DESC")
	case "created_at_desc":
		query = query.Order("created_at DESC")
	}
	query = query.Order("id ASC")

	offset := (params.Page - 1) * params.PageSize
	books, err := r.find(ctx, query.Limit(params.PageSize).Offset(offset))
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

func (r *bookRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.getDB(ctx).Model(&BookModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, apperrors.Wrap(err, "查询图书失败")
	}
	return count > 0, nil
}

// Update 只更新patch涉及的列
// rating不在可写列中,避免覆盖并发提交的评分重算结果
func (r *bookRepository) Update(ctx context.Context, b *book.Book, patch book.Patch) error {
	b.UpdatedAt = time.Now()
	columns := patchColumns(b, patch)
	columns["updated_at"] = b.UpdatedAt

	err := r.getDB(ctx).Model(&BookModel{}).Where("id = ?", b.ID).Updates(columns).Error
	if err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "更新图书失败")
	}
	return nil
}

// patchColumns patch中非nil的字段 → 列名与新值
func patchColumns(b *book.Book, p book.Patch) map[string]interface{} {
	columns := map[string]interface{}{}
	if p.ISBN != nil {
		columns["isbn"] = b.ISBN
	}
	if p.Title != nil {
		columns["title"] = b.Title
	}
	if p.Description != nil {
		columns["description"] = b.Description
	}
	if p.Price != nil {
		columns["price"] = b.Price
	}
	if p.AuthorID != nil {
		columns["author_id"] = b.AuthorID
	}
	if p.Genre != nil {
		columns["genre"] = b.Genre
	}
	if p.Publisher != nil {
		columns["publisher"] = b.Publisher
	}
	if p.YearPublished != nil {
		columns["year_published"] = b.YearPublished
	}
	if p.CopiesSold != nil {
		columns["copies_sold"] = b.CopiesSold
	}
	return columns
}

// UpdatePrices 批量保存价格,任何一条失败则整体回滚
func (r *bookRepository) UpdatePrices(ctx context.Context, books []*book.Book) error {
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		for _, b := range books {
			if err := tx.Model(&BookModel{}).Where("id = ?", b.ID).Update("price", b.Price).Error; err != nil {
				return apperrors.Wrapf(err, "更新图书%d价格失败", b.ID)
			}
		}
		return nil
	})
}

// UpdateRating 只更新平均分
// MySQL在值未变化时RowsAffected为0,因此不据此判断图书是否存在,调用方需先加载图书
func (r *bookRepository) UpdateRating(ctx context.Context, id uint, rating float64) error {
	if err := r.getDB(ctx).Model(&BookModel{}).Where("id = ?", id).Update("rating", rating).Error; err != nil {
		return apperrors.Wrap(err, "更新平均分失败")
	}
	return nil
}

// LockByID 悲观锁查询图书
// 必须在事务中调用,SELECT ... FOR UPDATE锁定到事务结束
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := r.getDB(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, book.NotFound(id)
		}
		return nil, apperrors.Wrap(err, "锁定图书失败")
	}
	return toBookEntity(&model), nil
}

// Delete 删除图书及其评分、评论和心愿单/购物车引用
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := deleteBooks(tx, []uint{id})
		if err != nil {
			return err
		}
		if n == 0 {
			return book.NotFound(id)
		}
		return nil
	})
}

// deleteBooks 在tx中删除图书及关联数据,返回删除的图书数量
// 作者仓储删除作者时复用
func deleteBooks(tx *gorm.DB, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	owned := []interface{}{&RatingModel{}, &CommentModel{}, &WishlistBookModel{}, &CartBookModel{}}
	for _, m := range owned {
		if err := tx.Where("book_id IN ?", ids).Delete(m).Error; err != nil {
			return 0, apperrors.Wrap(err, "删除图书关联数据失败")
		}
	}

	result := tx.Where("id IN ?", ids).Delete(&BookModel{})
	if result.Error != nil {
		return 0, apperrors.Wrap(result.Error, "删除图书失败")
	}
	return result.RowsAffected, nil
}

func (r *bookRepository) find(ctx context.Context, query *gorm.DB) ([]*book.Book, error) {
	var models []BookModel
	if err := query.Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:            b.ID,
		ISBN:          b.ISBN,
		Title:         b.Title,
		Description:   b.Description,
		Price:         b.Price,
		AuthorID:      b.AuthorID,
		Genre:         b.Genre,
		Publisher:     b.Publisher,
		YearPublished: b.YearPublished,
		CopiesSold:    b.CopiesSold,
		Rating:        b.Rating,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:            model.ID,
		ISBN:          model.ISBN,
		Title:         model.Title,
		Description:   model.Description,
		Price:         model.Price,
		AuthorID:      model.AuthorID,
		Genre:         model.Genre,
		Publisher:     model.Publisher,
		YearPublished: model.YearPublished,
		CopiesSold:    model.CopiesSold,
		Rating:        model.Rating,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

func (r *bookRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}
