package rating

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/event"
	"github.com/xiebiao/bookcatalog/internal/domain/rating"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// RecordRatingUseCase 记录评分并重算平均分
//
// 并发问题:两个请求同时给同一本书评分
// 错误实现:各自读取评分列表再写平均分,后提交的一方覆盖前者,平均分漏掉一条评分
// 正确实现:悲观锁
//  1. SELECT FOR UPDATE 锁定图书行
//  2. 插入评分
//  3. 读取全部评分并求平均
//  4. 写回平均分
//  5. COMMIT释放锁
type RecordRatingUseCase struct {
	txManager *mysql.TxManager
	users     user.Repository
	books     book.Repository
	ratings   rating.Repository
	publisher event.Publisher
	logger    *zap.Logger
}

// NewRecordRatingUseCase 创建评分用例
func NewRecordRatingUseCase(
	txManager *mysql.TxManager,
	users user.Repository,
	books book.Repository,
	ratings rating.Repository,
	publisher event.Publisher,
	logger *zap.Logger,
) *RecordRatingUseCase {
	return &RecordRatingUseCase{
		txManager: txManager,
		users:     users,
		books:     books,
		ratings:   ratings,
		publisher: publisher,
		logger:    logger,
	}
}

// RecordRatingRequest 评分请求
type RecordRatingRequest struct {
	UserID uint
	BookID uint
	Score  int
}

// RecordRatingResponse 评分结果
type RecordRatingResponse struct {
	RatingID uint    `json:"rating_id"`
	BookID   uint    `json:"book_id"`
	Average  float64 `json:"average"`
	Count    int     `json:"count"`
}

// Execute 执行评分
// 用户不存在、图书不存在或分值越界时不写入任何数据
func (uc *RecordRatingUseCase) Execute(ctx context.Context, req RecordRatingRequest) (resp *RecordRatingResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "rating.RecordRating")
	defer func() { tracing.EndSpan(span, err) }()
	start := time.Now()

	r, err := rating.NewRating(req.UserID, req.BookID, req.Score)
	if err != nil {
		return nil, err
	}

	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 用户必须存在
		ok, err := uc.users.Exists(txCtx, req.UserID)
		if err != nil {
			return err
		}
		if !ok {
			return user.NotFound(req.UserID)
		}

		// 2. 锁定图书,串行化同一本书的重算
		if _, err := uc.books.LockByID(txCtx, req.BookID); err != nil {
			return err
		}

		// 3. 先插入再重算,保证新评分计入平均分
		if err := uc.ratings.Create(txCtx, r); err != nil {
			return err
		}

		avg, count, err := recompute(txCtx, uc.books, uc.ratings, req.BookID)
		if err != nil {
			return err
		}

		resp = &RecordRatingResponse{RatingID: r.ID, BookID: req.BookID, Average: avg, Count: count}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ObserveRatingRecorded(time.Since(start))
	uc.publish(ctx, event.New(event.RatingRecorded, event.RatingRecordedPayload{
		BookID:  req.BookID,
		UserID:  req.UserID,
		Score:   req.Score,
		Average: resp.Average,
	}))
	return resp, nil
}

func (uc *RecordRatingUseCase) publish(ctx context.Context, e event.Event) {
	if err := uc.publisher.Publish(ctx, e); err != nil {
		uc.logger.Warn("评分事件发布失败", zap.String("event", e.Name), zap.Error(err))
	}
}

// recompute 读取全部评分求平均并写回图书,调用方负责加锁
func recompute(ctx context.Context, books book.Repository, ratings rating.Repository, bookID uint) (float64, int, error) {
	all, err := ratings.FindByBookID(ctx, bookID)
	if err != nil {
		return 0, 0, err
	}
	avg := rating.Average(all)
	if err := books.UpdateRating(ctx, bookID, avg); err != nil {
		return 0, 0, err
	}
	return avg, len(all), nil
}
