package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/event"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/pkg/dedup"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// RemoveDuplicatesUseCase 按ISBN清理重复图书
// 读取快照后逐条删除,整个过程在一个事务中;快照之后并发写入的重复记录留给下一次清理
type RemoveDuplicatesUseCase struct {
	txManager   *mysql.TxManager
	bookService book.Service
	publisher   event.Publisher
	logger      *zap.Logger
}

// NewRemoveDuplicatesUseCase 创建去重用例
func NewRemoveDuplicatesUseCase(txManager *mysql.TxManager, bookService book.Service, publisher event.Publisher, logger *zap.Logger) *RemoveDuplicatesUseCase {
	return &RemoveDuplicatesUseCase{txManager: txManager, bookService: bookService, publisher: publisher, logger: logger}
}

// Execute 返回保留和删除的图书
func (uc *RemoveDuplicatesUseCase) Execute(ctx context.Context) (dedup.Result[*book.Book], error) {
	var result dedup.Result[*book.Book]
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		result, err = uc.bookService.RemoveDuplicates(txCtx)
		return err
	})
	if err != nil {
		return dedup.Result[*book.Book]{}, err
	}

	metrics.AddDuplicatesRemoved("book", len(result.Removed))
	if len(result.Removed) > 0 {
		ids := make([]uint, len(result.Removed))
		for i, b := range result.Removed {
			ids[i] = b.ID
		}
		publish(ctx, uc.publisher, uc.logger, event.New(event.DuplicatesRemoved, event.DuplicatesRemovedPayload{Kind: "book", RemovedIDs: ids}))
	}
	return result, nil
}
