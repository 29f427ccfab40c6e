package wishlist

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/cart"
	"github.com/xiebiao/bookcatalog/internal/domain/event"
	"github.com/xiebiao/bookcatalog/internal/domain/wishlist"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// MoveToCartUseCase 把心愿单中的一本书移入购物车
//
// 跨聚合操作:心愿单移除和购物车添加必须同时成功
// 任何一步失败都整体回滚,不会出现书既不在心愿单也不在购物车的情况
type MoveToCartUseCase struct {
	txManager *mysql.TxManager
	wishlists wishlist.Repository
	books     book.Repository
	carts     cart.Repository
	cartSvc   cart.Service
	publisher event.Publisher
	logger    *zap.Logger
}

// NewMoveToCartUseCase 创建移入购物车用例
func NewMoveToCartUseCase(
	txManager *mysql.TxManager,
	wishlists wishlist.Repository,
	books book.Repository,
	carts cart.Repository,
	cartSvc cart.Service,
	publisher event.Publisher,
	logger *zap.Logger,
) *MoveToCartUseCase {
	return &MoveToCartUseCase{
		txManager: txManager,
		wishlists: wishlists,
		books:     books,
		carts:     carts,
		cartSvc:   cartSvc,
		publisher: publisher,
		logger:    logger,
	}
}

// MoveToCartRequest 移入购物车请求
type MoveToCartRequest struct {
	WishlistID uint
	BookID     uint
	// RequesterID 非0时要求心愿单属于该用户
	RequesterID uint
}

// MoveToCartResponse 移入结果
type MoveToCartResponse struct {
	WishlistID uint `json:"wishlist_id"`
	CartID     uint `json:"cart_id"`
	BookID     uint `json:"book_id"`
}

// Execute 执行移动
// 检查顺序:心愿单存在 -> 图书存在 -> 图书在该心愿单中
func (uc *MoveToCartUseCase) Execute(ctx context.Context, req MoveToCartRequest) (resp *MoveToCartResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "wishlist.MoveToCart")
	defer func() {
		tracing.EndSpan(span, err)
		metrics.IncCartTransfer(err)
	}()

	var userID uint
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 心愿单
		w, err := uc.wishlists.FindByID(txCtx, req.WishlistID)
		if err != nil {
			return err
		}
		if req.RequesterID != 0 && !w.IsOwnedBy(req.RequesterID) {
			return apperrors.ErrForbidden
		}

		// 2. 图书
		ok, err := uc.books.Exists(txCtx, req.BookID)
		if err != nil {
			return err
		}
		if !ok {
			return book.NotFound(req.BookID)
		}

		// 3. 从心愿单移除
		// 快照之后被并发移走时RemoveMember返回ErrNotMember,整个事务回滚
		if err := w.RemoveBook(req.BookID); err != nil {
			return err
		}
		if err := uc.wishlists.RemoveMember(txCtx, w.ID, req.BookID); err != nil {
			return err
		}

		// 4. 加入购物车(没有则创建)
		// 不依赖购物车快照判断是否已存在,由AddMember按行插入
		c, err := uc.cartSvc.LoadOrCreate(txCtx, w.UserID)
		if err != nil {
			return err
		}
		if _, err := uc.carts.AddMember(txCtx, c.ID, req.BookID); err != nil {
			return err
		}

		userID = w.UserID
		resp = &MoveToCartResponse{WishlistID: w.ID, CartID: c.ID, BookID: req.BookID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("图书已从心愿单移入购物车",
		zap.Uint("wishlist_id", resp.WishlistID),
		zap.Uint("cart_id", resp.CartID),
		zap.Uint("book_id", resp.BookID),
	)
	e := event.New(event.WishlistMovedToCart, event.WishlistMovedToCartPayload{
		WishlistID: resp.WishlistID,
		CartID:     resp.CartID,
		BookID:     resp.BookID,
		UserID:     userID,
	})
	if err := uc.publisher.Publish(ctx, e); err != nil {
		uc.logger.Warn("领域事件发布失败", zap.String("event", e.Name), zap.Error(err))
	}
	return resp, nil
}
