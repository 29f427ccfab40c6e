package author

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/internal/domain/event"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/pkg/dedup"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// RemoveDuplicatesUseCase 按(名,姓,出版社)清理重复作者
// 被删除作者名下的图书由仓储层级联删除
type RemoveDuplicatesUseCase struct {
	txManager     *mysql.TxManager
	authorService author.Service
	publisher     event.Publisher
	logger        *zap.Logger
}

// NewRemoveDuplicatesUseCase 创建作者去重用例
func NewRemoveDuplicatesUseCase(txManager *mysql.TxManager, authorService author.Service, publisher event.Publisher, logger *zap.Logger) *RemoveDuplicatesUseCase {
	return &RemoveDuplicatesUseCase{txManager: txManager, authorService: authorService, publisher: publisher, logger: logger}
}

// Execute 返回保留和删除的作者
func (uc *RemoveDuplicatesUseCase) Execute(ctx context.Context) (dedup.Result[*author.Author], error) {
	var result dedup.Result[*author.Author]
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		result, err = uc.authorService.RemoveDuplicates(txCtx)
		return err
	})
	if err != nil {
		return dedup.Result[*author.Author]{}, err
	}

	metrics.AddDuplicatesRemoved("author", len(result.Removed))
	if len(result.Removed) == 0 {
		return result, nil
	}

	ids := make([]uint, len(result.Removed))
	for i, a := range result.Removed {
		ids[i] = a.ID
	}
	e := event.New(event.DuplicatesRemoved, event.DuplicatesRemovedPayload{Kind: "author", RemovedIDs: ids})
	if err := uc.publisher.Publish(ctx, e); err != nil {
		uc.logger.Warn("领域事件发布失败", zap.String("event", e.Name), zap.Error(err))
	}
	return result, nil
}
