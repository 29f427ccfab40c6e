package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// ListBooksUseCase 图书列表查询用例
// 支持分页、搜索、排序
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// ListBooksRequest 列表查询请求
type ListBooksRequest struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Keyword  string // 搜索关键词(搜索标题、出版社、类型)
	SortBy   string // 排序方式(price_asc, price_desc, rating_desc, created_at_desc)
}

// ListBooksResponse 列表查询结果
type ListBooksResponse struct {
	Books    []*book.Book
	Total    int64
	Page     int
	PageSize int
}

// Execute 执行列表查询
// page默认1,pageSize默认20,最大100
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	books, total, err := uc.bookService.List(ctx, book.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		Keyword:  req.Keyword,
		SortBy:   req.SortBy,
	})
	if err != nil {
		return nil, err
	}

	return &ListBooksResponse{Books: books, Total: total, Page: req.Page, PageSize: req.PageSize}, nil
}
