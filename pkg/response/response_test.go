package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusOK, StatusOf(0))
	assert.Equal(t, http.StatusUnauthorized, StatusOf(apperrors.ErrCodeInvalidToken))
	assert.Equal(t, http.StatusForbidden, StatusOf(apperrors.ErrCodeForbidden))
	assert.Equal(t, http.StatusNotFound, StatusOf(apperrors.ErrCodeWishlistNotFound))
	assert.Equal(t, http.StatusBadRequest, StatusOf(apperrors.ErrCodeInvalidChecksum))
	assert.Equal(t, http.StatusConflict, StatusOf(apperrors.ErrCodeNotMember))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(apperrors.ErrCodeInternal))
}

func TestError(t *testing.T) {
	t.Run("业务错误原样返回", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/books/1", nil)

		Error(c, apperrors.NotFound(apperrors.ErrCodeBookNotFound, "图书", 1))

		assert.Equal(t, http.StatusNotFound, w.Code)
		var body Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, apperrors.ErrCodeBookNotFound, body.Code)
		assert.Equal(t, "图书不存在: 1", body.Message)
	})

	t.Run("内部错误不泄露细节", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/books", nil)

		Error(c, errors.New("dial tcp 10.0.0.1:3306: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "10.0.0.1")
	})
}

func TestNewPageData(t *testing.T) {
	p := NewPageData([]int{1, 2}, 21, 1, 10)
	assert.Equal(t, 3, p.TotalPages)

	p = NewPageData(nil, 0, 1, 0)
	assert.Equal(t, 0, p.TotalPages)
}
