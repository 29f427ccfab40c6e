package author

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/xiebiao/bookcatalog/pkg/dedup"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// Author 作者实体
// 去重键为(FirstName, LastName, Publisher)，同名作者在不同出版社视为不同记录
type Author struct {
	ID        uint
	FirstName string
	LastName  string
	Biography string
	Publisher string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAuthor 创建作者(工厂方法)
func NewAuthor(firstName, lastName, biography, publisher string) *Author {
	now := time.Now()
	return &Author{
		FirstName: firstName,
		LastName:  lastName,
		Biography: biography,
		Publisher: publisher,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate 字段校验
func (a *Author) Validate() error {
	return apperrors.Invalid(validation.ValidateStruct(a,
		validation.Field(&a.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&a.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&a.Publisher, validation.Length(0, 100)),
		validation.Field(&a.Biography, validation.Length(0, 2000)),
	))
}

// DedupKey 去重键
func (a *Author) DedupKey() string {
	return dedup.Key(a.FirstName, a.LastName, a.Publisher)
}
