package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 1)

	token, err := tm.GenerateToken(42, "alice", "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestParseTokenWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 1)
	other := NewTokenManager("other-secret", 1)

	token, err := tm.GenerateToken(42, "alice", "alice@example.com")
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret", -1)

	token, err := tm.GenerateToken(42, "alice", "alice@example.com")
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestParseGarbageToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 1)

	_, err := tm.ParseToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
