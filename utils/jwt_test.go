package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer("test-secret-at-least-16-chars", time.Hour)

	token, err := issuer.Issue(42, "jdoe")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "jdoe", claims.Username)
}

func TestTokenExpired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret-at-least-16-chars", -time.Minute)

	token, err := issuer.Issue(42, "jdoe")
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenTampered(t *testing.T) {
	issuer := NewTokenIssuer("test-secret-at-least-16-chars", time.Hour)

	token, err := issuer.Issue(42, "jdoe")
	require.NoError(t, err)

	_, err = issuer.Parse(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenWrongKey(t *testing.T) {
	issuer := NewTokenIssuer("test-secret-at-least-16-chars", time.Hour)
	other := NewTokenIssuer("another-secret-entirely-here!", time.Hour)

	token, err := issuer.Issue(42, "jdoe")
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenGarbage(t *testing.T) {
	issuer := NewTokenIssuer("test-secret-at-least-16-chars", time.Hour)

	for _, bad := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := issuer.Parse(bad)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
