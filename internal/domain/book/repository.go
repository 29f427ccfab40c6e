package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 不存在时返回NotFound系列错误,存储故障返回包装后的内部错误
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByISBN 根据ISBN查找图书
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// FindAll 按主键升序返回全部图书
	FindAll(ctx context.Context) ([]*Book, error)

	// FindByPublisher 按出版社精确匹配(区分大小写)
	FindByPublisher(ctx context.Context, publisher string) ([]*Book, error)

	// FindByGenre 按类型查询
	FindByGenre(ctx context.Context, genre string) ([]*Book, error)

	// FindByAuthorID 查询某作者的全部图书
	FindByAuthorID(ctx context.Context, authorID uint) ([]*Book, error)

	// FindByRatingAtLeast 查询平均分不低于min的图书
	FindByRatingAtLeast(ctx context.Context, min float64) ([]*Book, error)

	// TopSellers 按销量降序返回前limit本
	TopSellers(ctx context.Context, limit int) ([]*Book, error)

	// List 分页查询图书列表
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// Exists 判断图书是否存在
	Exists(ctx context.Context, id uint) (bool, error)

	// Update 只写入patch中给出的字段,取值来自book
	// 平均分不在其中,只能由UpdateRating修改
	Update(ctx context.Context, book *Book, patch Patch) error

	// UpdatePrices 批量保存价格(同一事务内)
	UpdatePrices(ctx context.Context, books []*Book) error

	// UpdateRating 只写入平均分
	UpdateRating(ctx context.Context, id uint, rating float64) error

	// LockByID 悲观锁查询图书
	// 使用SELECT FOR UPDATE锁定行,串行化同一本书的评分重算
	LockByID(ctx context.Context, id uint) (*Book, error)

	// LockByPublisher 悲观锁查询某出版社的全部图书(按主键升序)
	LockByPublisher(ctx context.Context, publisher string) ([]*Book, error)

	// Delete 删除图书,同时删除其评分、评论以及心愿单/购物车中的引用
	Delete(ctx context.Context, id uint) error
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Keyword  string // 搜索关键词(搜索标题、出版社)
	SortBy   string // 排序字段(price_asc, price_desc, rating_desc, created_at_desc)
}
