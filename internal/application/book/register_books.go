package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/event"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// RegisterBooksUseCase 批量登记图书
// 逐本登记,遇到第一本失败即停止;已登记的图书保留并发布事件
type RegisterBooksUseCase struct {
	bookService book.Service
	publisher   event.Publisher
	logger      *zap.Logger
}

// NewRegisterBooksUseCase 创建登记用例
func NewRegisterBooksUseCase(bookService book.Service, publisher event.Publisher, logger *zap.Logger) *RegisterBooksUseCase {
	return &RegisterBooksUseCase{bookService: bookService, publisher: publisher, logger: logger}
}

// Execute 返回已登记的图书;err非nil时saved为失败前已登记的部分
func (uc *RegisterBooksUseCase) Execute(ctx context.Context, books []*book.Book) (saved []*book.Book, err error) {
	ctx, span := tracing.StartSpan(ctx, "book.RegisterBooks")
	defer func() { tracing.EndSpan(span, err) }()

	saved, err = uc.bookService.RegisterBatch(ctx, books)
	if len(saved) > 0 {
		ids := make([]uint, len(saved))
		for i, b := range saved {
			ids[i] = b.ID
		}
		publish(ctx, uc.publisher, uc.logger, event.New(event.BookRegistered, event.BookRegisteredPayload{BookIDs: ids}))
	}
	return saved, err
}

// publish 事件发布失败只记录日志
func publish(ctx context.Context, p event.Publisher, log *zap.Logger, e event.Event) {
	if err := p.Publish(ctx, e); err != nil {
		log.Warn("领域事件发布失败", zap.String("event", e.Name), zap.Error(err))
	}
}
