package dto

import (
	"fmt"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// TimeLayout 响应中的时间格式
const TimeLayout = "2006-01-02 15:04:05"

// BookRequest 登记图书请求
// ISBN校验位在领域层校验,这里只做格式层面的约束
type BookRequest struct {
	ISBN          string `json:"isbn" binding:"required,max=13" example:"9780306406157"`
	Title         string `json:"title" binding:"required,max=200" example:"Go语言实战"`
	Description   string `json:"description" binding:"max=5000" example:"这是一本关于Go语言的实战书籍"`
	Price         int64  `json:"price" binding:"min=0" example:"5900"` // 价格(分)
	AuthorID      *uint  `json:"author_id" example:"1"`
	Genre         string `json:"genre" binding:"max=50" example:"编程"`
	Publisher     string `json:"publisher" binding:"max=100" example:"人民邮电出版社"`
	YearPublished int    `json:"year_published" binding:"min=0,max=9999" example:"2017"`
	CopiesSold    int    `json:"copies_sold" binding:"min=0" example:"1200"`
}

// ToEntity 转换为领域实体
func (r *BookRequest) ToEntity() *book.Book {
	return &book.Book{
		ISBN:          r.ISBN,
		Title:         r.Title,
		Description:   r.Description,
		Price:         r.Price,
		AuthorID:      r.AuthorID,
		Genre:         r.Genre,
		Publisher:     r.Publisher,
		YearPublished: r.YearPublished,
		CopiesSold:    r.CopiesSold,
	}
}

// RegisterBooksRequest 批量登记请求,遇到第一本不合法的图书即停止
type RegisterBooksRequest struct {
	Books []BookRequest `json:"books" binding:"required,min=1,dive"`
}

// RegisterBooksResponse 批量登记结果
type RegisterBooksResponse struct {
	Registered []BookResponse `json:"registered"`
}

// UpdateBookRequest 部分更新请求,未出现的字段保持不变
type UpdateBookRequest struct {
	ISBN          *string `json:"isbn" binding:"omitempty,max=13"`
	Title         *string `json:"title" binding:"omitempty,max=200"`
	Description   *string `json:"description" binding:"omitempty,max=5000"`
	Price         *int64  `json:"price" binding:"omitempty,min=0"`
	AuthorID      *uint   `json:"author_id"`
	Genre         *string `json:"genre" binding:"omitempty,max=50"`
	Publisher     *string `json:"publisher" binding:"omitempty,max=100"`
	YearPublished *int    `json:"year_published" binding:"omitempty,min=0,max=9999"`
	CopiesSold    *int    `json:"copies_sold" binding:"omitempty,min=0"`
}

// ToPatch 转换为领域层的部分更新
func (r *UpdateBookRequest) ToPatch() book.Patch {
	return book.Patch{
		ISBN:          r.ISBN,
		Title:         r.Title,
		Description:   r.Description,
		Price:         r.Price,
		AuthorID:      r.AuthorID,
		Genre:         r.Genre,
		Publisher:     r.Publisher,
		YearPublished: r.YearPublished,
		CopiesSold:    r.CopiesSold,
	}
}

// BookResponse HTTP图书响应
type BookResponse struct {
	ID            uint    `json:"id" example:"1"`
	ISBN          string  `json:"isbn" example:"9780306406157"`
	Title         string  `json:"title" example:"Go语言实战"`
	Description   string  `json:"description,omitempty"`
	Price         int64   `json:"price" example:"5900"`       // 价格(分)
	PriceYuan     string  `json:"price_yuan" example:"59.00"` // 价格(元),方便前端显示
	AuthorID      *uint   `json:"author_id,omitempty" example:"1"`
	Genre         string  `json:"genre" example:"编程"`
	Publisher     string  `json:"publisher" example:"人民邮电出版社"`
	YearPublished int     `json:"year_published" example:"2017"`
	CopiesSold    int     `json:"copies_sold" example:"1200"`
	Rating        float64 `json:"rating" example:"4.5"`
	CreatedAt     string  `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt     string  `json:"updated_at" example:"2024-01-15 10:30:00"`
}

// ToBookResponse 领域实体 → HTTP响应
func ToBookResponse(b *book.Book) BookResponse {
	return BookResponse{
		ID:            b.ID,
		ISBN:          b.ISBN,
		Title:         b.Title,
		Description:   b.Description,
		Price:         b.Price,
		PriceYuan:     FormatPriceYuan(b.Price),
		AuthorID:      b.AuthorID,
		Genre:         b.Genre,
		Publisher:     b.Publisher,
		YearPublished: b.YearPublished,
		CopiesSold:    b.CopiesSold,
		Rating:        b.Rating,
		CreatedAt:     b.CreatedAt.Format(TimeLayout),
		UpdatedAt:     b.UpdatedAt.Format(TimeLayout),
	}
}

// ToBookResponses 批量转换
func ToBookResponses(books []*book.Book) []BookResponse {
	out := make([]BookResponse, len(books))
	for i, b := range books {
		out[i] = ToBookResponse(b)
	}
	return out
}

// ListBooksRequest HTTP图书列表请求
type ListBooksRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	Keyword  string `form:"keyword" binding:"omitempty,max=100" example:"Go"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=price_asc price_desc rating_desc created_at_desc" example:"created_at_desc"`
}

// MinRatingRequest 按评分筛选
type MinRatingRequest struct {
	Min float64 `form:"min" binding:"min=0,max=5" example:"4"`
}

// DiscountRequest 按出版社打折
type DiscountRequest struct {
	Publisher string  `json:"publisher" binding:"required,max=100" example:"人民邮电出版社"`
	Percent   float64 `json:"percent" binding:"min=0,max=100" example:"10"`
}

// OverrideRatingRequest 管理员直接设置评分
type OverrideRatingRequest struct {
	Rating *float64 `json:"rating" binding:"required" example:"4.2"`
}

// DuplicatesResponse 去重结果
type DuplicatesResponse struct {
	Kept       int    `json:"kept"`
	RemovedIDs []uint `json:"removed_ids"`
}

// FormatPriceYuan 格式化价格(分→元)
// 例如:5900分 → "59.00"
func FormatPriceYuan(priceFen int64) string {
	return fmt.Sprintf("%d.%02d", priceFen/100, priceFen%100)
}
