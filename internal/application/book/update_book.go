package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
)

// UpdateBookUseCase 部分更新图书
// 读取(加锁)与写回在同一事务中,与评分重算、出版社调价互斥
type UpdateBookUseCase struct {
	txManager   *mysql.TxManager
	bookService book.Service
}

// NewUpdateBookUseCase 创建更新用例
func NewUpdateBookUseCase(txManager *mysql.TxManager, bookService book.Service) *UpdateBookUseCase {
	return &UpdateBookUseCase{txManager: txManager, bookService: bookService}
}

// Execute 返回更新后的图书
func (uc *UpdateBookUseCase) Execute(ctx context.Context, id uint, patch book.Patch) (*book.Book, error) {
	var updated *book.Book
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = uc.bookService.Update(txCtx, id, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
