package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Is(t *testing.T) {
	t.Run("相同错误码匹配", func(t *testing.T) {
		err := NotFound(ErrCodeBookNotFound, "图书", 42)
		assert.ErrorIs(t, err, ErrBookNotFound)
		assert.Equal(t, "图书不存在: 42", err.Message)
	})

	t.Run("不同错误码不匹配", func(t *testing.T) {
		err := NotFound(ErrCodeAuthorNotFound, "作者", 1)
		assert.NotErrorIs(t, err, ErrBookNotFound)
	})

	t.Run("多层包装后仍可识别", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", ErrNotMember)
		assert.ErrorIs(t, err, ErrNotMember)
	})
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, "查询失败")

	assert.Equal(t, ErrCodeInternal, err.Code)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestGetAppError(t *testing.T) {
	appErr := GetAppError(errors.New("boom"))
	assert.Equal(t, ErrCodeInternal, appErr.Code)

	appErr = GetAppError(fmt.Errorf("ctx: %w", ErrCartEmpty))
	assert.Equal(t, ErrCodeCartEmpty, appErr.Code)
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(ErrInvalidParams))
	assert.True(t, IsClientError(ErrNoMatchingRecords))
	assert.False(t, IsClientError(ErrDatabaseError))
	assert.False(t, IsClientError(errors.New("plain")))
}

func TestInvalid(t *testing.T) {
	assert.NoError(t, Invalid(nil))

	err := Invalid(errors.New("title: cannot be blank."))
	assert.ErrorIs(t, err, ErrInvalidParams)
	assert.Contains(t, err.Error(), "title: cannot be blank.")
}
