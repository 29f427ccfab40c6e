package book

import (
	"math"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/isbn"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 2. ISBN作为业务标识,唯一性在登记时由领域服务检查
// 3. AuthorID为可选引用,通过作者仓储解析,不持有作者对象
// 4. Rating为派生值,只能由评分聚合或管理员覆盖写入
type Book struct {
	ID            uint
	ISBN          string
	Title         string
	Description   string
	Price         int64 // 价格(单位:分)
	AuthorID      *uint
	Genre         string
	Publisher     string
	YearPublished int
	CopiesSold    int
	Rating        float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate 登记前的校验
// ISBN必须通过校验位检查,失败时返回具体的ISBN错误
func (b *Book) Validate() error {
	if _, err := isbn.Validate(b.ISBN); err != nil {
		return err
	}
	return apperrors.Invalid(validation.ValidateStruct(b,
		validation.Field(&b.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&b.Price, validation.Min(int64(0))),
		validation.Field(&b.CopiesSold, validation.Min(0)),
		validation.Field(&b.YearPublished, validation.Min(0), validation.Max(9999)),
		validation.Field(&b.Genre, validation.Length(0, 50)),
		validation.Field(&b.Publisher, validation.Length(0, 100)),
	))
}

// Patch 部分更新,nil字段保持不变
type Patch struct {
	ISBN          *string
	Title         *string
	Description   *string
	Price         *int64
	AuthorID      *uint
	Genre         *string
	Publisher     *string
	YearPublished *int
	CopiesSold    *int
}

// Apply 应用部分更新(不做校验,由调用方随后调用Validate)
func (b *Book) Apply(p Patch) {
	if p.ISBN != nil {
		b.ISBN = *p.ISBN
	}
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.Price != nil {
		b.Price = *p.Price
	}
	if p.AuthorID != nil {
		id := *p.AuthorID
		b.AuthorID = &id
	}
	if p.Genre != nil {
		b.Genre = *p.Genre
	}
	if p.Publisher != nil {
		b.Publisher = *p.Publisher
	}
	if p.YearPublished != nil {
		b.YearPublished = *p.YearPublished
	}
	if p.CopiesSold != nil {
		b.CopiesSold = *p.CopiesSold
	}
	b.UpdatedAt = time.Now()
}

// ApplyDiscount 按百分比降价(领域行为)
func (b *Book) ApplyDiscount(percent float64) error {
	price, err := DiscountedPrice(b.Price, percent)
	if err != nil {
		return err
	}
	b.Price = price
	b.UpdatedAt = time.Now()
	return nil
}

// SetRating 写入平均分(评分聚合与管理员覆盖共用)
func (b *Book) SetRating(value float64) error {
	if math.IsNaN(value) || value < 0 || value > MaxRating {
		return ErrInvalidRating
	}
	b.Rating = value
	b.UpdatedAt = time.Now()
	return nil
}

// DedupKey 去重键
func (b *Book) DedupKey() string {
	return b.ISBN
}

// MaxRating 平均分上限
const MaxRating = 5.0
