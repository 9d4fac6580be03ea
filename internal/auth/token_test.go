package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return tok
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	tok := signed(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)})

	got, ok := TokenExpiry(tok)
	require.True(t, ok)
	assert.True(t, got.Equal(exp))

	assert.True(t, TokenExpired(tok, exp.Add(time.Second)))
	assert.False(t, TokenExpired(tok, exp.Add(-time.Hour)))
}

func TestTokenExpiryOpaque(t *testing.T) {
	for _, tok := range []string{"", "opaque-token", "a.b.c"} {
		_, ok := TokenExpiry(tok)
		assert.False(t, ok, tok)
		assert.False(t, TokenExpired(tok, time.Now()), tok)
	}
}

func TestTokenExpiryWithoutExp(t *testing.T) {
	tok := signed(t, jwt.RegisteredClaims{Subject: "u1"})
	_, ok := TokenExpiry(tok)
	assert.False(t, ok)
}
