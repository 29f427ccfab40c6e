package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

func TestManager_GenerateAndParse(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 24*time.Hour)

	pair, err := m.GenerateToken(7, "reader")
	require.NoError(t, err)
	assert.Equal(t, int64(3600), pair.ExpiresIn)

	claims, err := m.ParseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "reader", claims.Username)
	assert.Equal(t, "bookcatalog", claims.Issuer)
}

func TestManager_ParseToken_Errors(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, time.Hour)

	pair, err := m.GenerateToken(1, "late")
	require.NoError(t, err)

	_, err = m.ParseToken(pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)

	other := NewManager("another-secret", time.Hour, time.Hour)
	_, err = other.ParseToken(pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	_, err = m.ParseToken("not-a-jwt")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestManager_RefreshAccessToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 24*time.Hour)
	pair, err := m.GenerateToken(3, "alice")
	require.NoError(t, err)

	access, err := m.RefreshAccessToken(pair.RefreshToken, "alice")
	require.NoError(t, err)

	claims, err := m.ParseToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint(3), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}
