package author

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/pkg/dedup"
)

// Service 作者领域服务
type Service interface {
	// Register 登记单个作者
	Register(ctx context.Context, author *Author) (*Author, error)

	// RegisterBatch 批量登记
	// 遇到第一个非法作者即停止，之前的作者已保存
	RegisterBatch(ctx context.Context, authors []*Author) ([]*Author, error)

	// GetByID 查询作者
	GetByID(ctx context.Context, id uint) (*Author, error)

	// RemoveDuplicates 按(名,姓,出版社)去重，保留主键最小的一条
	RemoveDuplicates(ctx context.Context) (dedup.Result[*Author], error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService 创建作者服务
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) Register(ctx context.Context, a *Author) (*Author, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) RegisterBatch(ctx context.Context, authors []*Author) ([]*Author, error) {
	saved := make([]*Author, 0, len(authors))
	for i, a := range authors {
		if _, err := s.Register(ctx, a); err != nil {
			s.logger.Warn("批量登记作者中断",
				zap.Int("index", i),
				zap.Int("saved", len(saved)),
				zap.Error(err),
			)
			return saved, err
		}
		saved = append(saved, a)
	}
	return saved, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*Author, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) RemoveDuplicates(ctx context.Context) (dedup.Result[*Author], error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return dedup.Result[*Author]{}, err
	}

	result := dedup.Resolve(all, (*Author).DedupKey)
	for _, a := range result.Removed {
		if err := s.repo.Delete(ctx, a.ID); err != nil {
			return dedup.Result[*Author]{}, err
		}
	}

	if len(result.Removed) > 0 {
		s.logger.Info("已删除重复作者",
			zap.Int("survivors", len(result.Survivors)),
			zap.Int("removed", len(result.Removed)),
		)
	}
	return result, nil
}
