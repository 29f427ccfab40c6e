package rating

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/rating"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
)

// RecomputeRatingUseCase 按评分明细重新计算平均分
// 用于撤销管理员覆盖,或修复历史数据
type RecomputeRatingUseCase struct {
	txManager *mysql.TxManager
	books     book.Repository
	ratings   rating.Repository
	logger    *zap.Logger
}

// NewRecomputeRatingUseCase 创建重算用例
func NewRecomputeRatingUseCase(txManager *mysql.TxManager, books book.Repository, ratings rating.Repository, logger *zap.Logger) *RecomputeRatingUseCase {
	return &RecomputeRatingUseCase{txManager: txManager, books: books, ratings: ratings, logger: logger}
}

// Execute 返回重算后的平均分
func (uc *RecomputeRatingUseCase) Execute(ctx context.Context, bookID uint) (float64, error) {
	var avg float64
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		b, err := uc.books.LockByID(txCtx, bookID)
		if err != nil {
			return err
		}

		var count int
		avg, count, err = recompute(txCtx, uc.books, uc.ratings, bookID)
		if err != nil {
			return err
		}
		if b.Rating != avg {
			uc.logger.Info("平均分已重算",
				zap.Uint("book_id", bookID),
				zap.Float64("old", b.Rating),
				zap.Float64("new", avg),
				zap.Int("ratings", count),
			)
		}
		return nil
	})
	return avg, err
}

// AverageRatingUseCase 只读查询:根据评分明细计算平均分,不写回
type AverageRatingUseCase struct {
	books   book.Repository
	ratings rating.Repository
}

// NewAverageRatingUseCase 创建平均分查询用例
func NewAverageRatingUseCase(books book.Repository, ratings rating.Repository) *AverageRatingUseCase {
	return &AverageRatingUseCase{books: books, ratings: ratings}
}

// AverageRatingResponse 平均分查询结果
type AverageRatingResponse struct {
	BookID  uint    `json:"book_id"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Execute 图书不存在时返回NotFound,没有评分时平均分为0
func (uc *AverageRatingUseCase) Execute(ctx context.Context, bookID uint) (*AverageRatingResponse, error) {
	ok, err := uc.books.Exists(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, book.NotFound(bookID)
	}

	all, err := uc.ratings.FindByBookID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return &AverageRatingResponse{BookID: bookID, Average: rating.Average(all), Count: len(all)}, nil
}
