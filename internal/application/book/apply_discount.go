package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/event"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// ApplyDiscountUseCase 按出版社批量调价
// 查询与批量保存在同一事务中,避免调价期间新登记的图书只被部分处理
type ApplyDiscountUseCase struct {
	txManager   *mysql.TxManager
	bookService book.Service
	publisher   event.Publisher
	logger      *zap.Logger
}

// NewApplyDiscountUseCase 创建调价用例
func NewApplyDiscountUseCase(txManager *mysql.TxManager, bookService book.Service, publisher event.Publisher, logger *zap.Logger) *ApplyDiscountUseCase {
	return &ApplyDiscountUseCase{txManager: txManager, bookService: bookService, publisher: publisher, logger: logger}
}

// ApplyDiscountRequest 调价请求
type ApplyDiscountRequest struct {
	Publisher string
	Percent   float64
}

// ApplyDiscountResponse 调价结果
type ApplyDiscountResponse struct {
	Publisher string       `json:"publisher"`
	Percent   float64      `json:"percent"`
	Updated   int          `json:"updated"`
	Books     []*book.Book `json:"-"`
}

// Execute 没有匹配图书时返回ErrNoMatchingRecords
func (uc *ApplyDiscountUseCase) Execute(ctx context.Context, req ApplyDiscountRequest) (resp *ApplyDiscountResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "book.ApplyDiscount")
	defer func() { tracing.EndSpan(span, err) }()

	var books []*book.Book
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		books, err = uc.bookService.ApplyDiscount(txCtx, req.Publisher, req.Percent)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.AddRepriced(len(books))
	ids := make([]uint, len(books))
	for i, b := range books {
		ids[i] = b.ID
	}
	uc.logger.Info("已按出版社调价",
		zap.String("publisher", req.Publisher),
		zap.Float64("percent", req.Percent),
		zap.Int("updated", len(books)),
	)
	publish(ctx, uc.publisher, uc.logger, event.New(event.PriceDiscounted, event.PriceDiscountedPayload{
		Publisher: req.Publisher,
		Percent:   req.Percent,
		BookIDs:   ids,
	}))

	return &ApplyDiscountResponse{Publisher: req.Publisher, Percent: req.Percent, Updated: len(books), Books: books}, nil
}
