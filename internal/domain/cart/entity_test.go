package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShoppingCart(t *testing.T) {
	c := NewShoppingCart(1)
	assert.True(t, c.IsEmpty())

	assert.True(t, c.AddBook(5))
	assert.False(t, c.AddBook(5))
	assert.Equal(t, []uint{5}, c.BookIDs)

	require.NoError(t, c.RemoveBook(5))
	assert.ErrorIs(t, c.RemoveBook(5), ErrNotMember)
	assert.True(t, c.IsEmpty())
}
