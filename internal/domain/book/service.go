package book

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/pkg/dedup"
)

// TopSellerLimit 畅销榜返回数量
const TopSellerLimit = 10

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装跨实体的业务规则(ISBN唯一、作者存在、折扣计算)
// 2. 不依赖具体的Repository实现(依赖倒置)
// 3. 事务由应用层通过TxManager控制,这里的写操作都会加入ctx中的事务
type Service interface {
	// Register 登记图书
	// 业务规则:ISBN必须通过校验位检查且未被占用,AuthorID非空时作者必须存在
	Register(ctx context.Context, book *Book) (*Book, error)

	// RegisterBatch 批量登记,遇到第一个失败即停止,之前的图书已保存
	RegisterBatch(ctx context.Context, books []*Book) ([]*Book, error)

	// GetByID 根据ID获取图书详情
	GetByID(ctx context.Context, id uint) (*Book, error)

	// GetByISBN 根据ISBN获取图书
	GetByISBN(ctx context.Context, isbn string) (*Book, error)

	// List 分页查询图书列表
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// Update 部分更新,ISBN变更时重新校验并检查唯一性
	// 在事务中调用时先锁定该行,与评分重算、打折串行
	Update(ctx context.Context, id uint, patch Patch) (*Book, error)

	// Delete 删除图书
	Delete(ctx context.Context, id uint) error

	// ListByGenre 按类型查询,没有结果时返回ErrNoMatchingRecords
	ListByGenre(ctx context.Context, genre string) ([]*Book, error)

	// TopSellers 销量前十
	TopSellers(ctx context.Context) ([]*Book, error)

	// ListByMinRating 平均分不低于min的图书
	ListByMinRating(ctx context.Context, min float64) ([]*Book, error)

	// ListByAuthor 某作者的全部图书,作者不存在时返回作者NotFound
	ListByAuthor(ctx context.Context, authorID uint) ([]*Book, error)

	// ApplyDiscount 对某出版社的全部图书打折,返回调价后的图书
	// 在事务中调用时锁定匹配的行
	// 没有匹配图书时返回ErrNoMatchingRecords且不做任何写入
	ApplyDiscount(ctx context.Context, publisher string, percent float64) ([]*Book, error)

	// OverrideRating 管理员直接写入平均分,不经过评分聚合
	OverrideRating(ctx context.Context, id uint, value float64) (*Book, error)

	// RemoveDuplicates 按ISBN去重,保留主键最小的一条
	RemoveDuplicates(ctx context.Context) (dedup.Result[*Book], error)
}

// service 领域服务实现
type service struct {
	repo    Repository
	authors author.Repository
	logger  *zap.Logger
}

// NewService 创建图书领域服务
func NewService(repo Repository, authors author.Repository, logger *zap.Logger) Service {
	return &service{repo: repo, authors: authors, logger: logger}
}

func (s *service) Register(ctx context.Context, b *Book) (*Book, error) {
	// 1. 字段与ISBN校验(失败时不写入任何数据)
	if err := b.Validate(); err != nil {
		return nil, err
	}

	// 2. ISBN唯一性
	if err := s.ensureISBNFree(ctx, b.ISBN); err != nil {
		return nil, err
	}

	// 3. 作者引用
	if err := s.ensureAuthor(ctx, b.AuthorID); err != nil {
		return nil, err
	}

	// 4. 持久化(评分由聚合维护,登记时总是0)
	b.Rating = 0
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) RegisterBatch(ctx context.Context, books []*Book) ([]*Book, error) {
	saved := make([]*Book, 0, len(books))
	for i, b := range books {
		if _, err := s.Register(ctx, b); err != nil {
			s.logger.Warn("批量登记图书中断",
				zap.Int("index", i),
				zap.String("isbn", b.ISBN),
				zap.Int("saved", len(saved)),
				zap.Error(err),
			)
			return saved, err
		}
		saved = append(saved, b)
	}
	return saved, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) GetByISBN(ctx context.Context, isbn string) (*Book, error) {
	return s.repo.FindByISBN(ctx, isbn)
}

func (s *service) List(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	return s.repo.List(ctx, params)
}

func (s *service) Update(ctx context.Context, id uint, patch Patch) (*Book, error) {
	b, err := s.repo.LockByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldISBN := b.ISBN
	b.Apply(patch)
	if err := b.Validate(); err != nil {
		return nil, err
	}

	if b.ISBN != oldISBN {
		if err := s.ensureISBNFree(ctx, b.ISBN); err != nil {
			return nil, err
		}
	}
	if patch.AuthorID != nil {
		if err := s.ensureAuthor(ctx, b.AuthorID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, b, patch); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return NotFound(id)
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) ListByGenre(ctx context.Context, genre string) ([]*Book, error) {
	books, err := s.repo.FindByGenre(ctx, genre)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, ErrNoMatchingRecords
	}
	return books, nil
}

func (s *service) TopSellers(ctx context.Context) ([]*Book, error) {
	return s.repo.TopSellers(ctx, TopSellerLimit)
}

func (s *service) ListByMinRating(ctx context.Context, min float64) ([]*Book, error) {
	return s.repo.FindByRatingAtLeast(ctx, min)
}

func (s *service) ListByAuthor(ctx context.Context, authorID uint) ([]*Book, error) {
	if err := s.ensureAuthor(ctx, &authorID); err != nil {
		return nil, err
	}
	return s.repo.FindByAuthorID(ctx, authorID)
}

func (s *service) ApplyDiscount(ctx context.Context, publisher string, percent float64) ([]*Book, error) {
	if err := ValidateDiscount(percent); err != nil {
		return nil, err
	}

	books, err := s.repo.LockByPublisher(ctx, publisher)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, ErrNoMatchingRecords
	}

	for _, b := range books {
		if err := b.ApplyDiscount(percent); err != nil {
			return nil, err
		}
	}

	// 一次批量保存,任何一本失败则整体回滚
	if err := s.repo.UpdatePrices(ctx, books); err != nil {
		return nil, err
	}
	return books, nil
}

func (s *service) OverrideRating(ctx context.Context, id uint, value float64) (*Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := b.SetRating(value); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateRating(ctx, id, b.Rating); err != nil {
		return nil, err
	}

	s.logger.Warn("平均分被手动覆盖",
		zap.Uint("book_id", id),
		zap.Float64("rating", value),
	)
	return b, nil
}

func (s *service) RemoveDuplicates(ctx context.Context) (dedup.Result[*Book], error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return dedup.Result[*Book]{}, err
	}

	result := dedup.Resolve(all, (*Book).DedupKey)
	for _, b := range result.Removed {
		if err := s.repo.Delete(ctx, b.ID); err != nil {
			return dedup.Result[*Book]{}, err
		}
	}

	if len(result.Removed) > 0 {
		s.logger.Info("已删除重复图书",
			zap.Int("survivors", len(result.Survivors)),
			zap.Int("removed", len(result.Removed)),
		)
	}
	return result, nil
}

// ensureISBNFree ISBN未被其他图书占用
func (s *service) ensureISBNFree(ctx context.Context, isbn string) error {
	existing, err := s.repo.FindByISBN(ctx, isbn)
	if err == nil && existing != nil {
		return ErrISBNDuplicate
	}
	if err != nil && !errors.Is(err, ErrBookNotFound) {
		return err
	}
	return nil
}

// ensureAuthor 作者引用存在(nil表示未关联作者)
func (s *service) ensureAuthor(ctx context.Context, authorID *uint) error {
	if authorID == nil {
		return nil
	}
	exists, err := s.authors.Exists(ctx, *authorID)
	if err != nil {
		return err
	}
	if !exists {
		return author.NotFound(*authorID)
	}
	return nil
}
