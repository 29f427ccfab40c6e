package comment

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// Comment 用户对图书的文字评论
type Comment struct {
	ID        uint
	BookID    uint
	UserID    uint
	Content   string
	CreatedAt time.Time
}

// NewComment 创建评论,内容去除首尾空白后不能为空
func NewComment(userID, bookID uint, content string) (*Comment, error) {
	c := &Comment{
		BookID:    bookID,
		UserID:    userID,
		Content:   strings.TrimSpace(content),
		CreatedAt: time.Now(),
	}
	err := validation.ValidateStruct(c,
		validation.Field(&c.Content, validation.Required, validation.RuneLength(1, 1000)),
	)
	if err != nil {
		return nil, apperrors.Invalid(err)
	}
	return c, nil
}
