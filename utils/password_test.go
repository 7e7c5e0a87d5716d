package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	digest, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(digest, "$argon2id$"))
	assert.NotContains(t, digest, "correct horse battery staple")
	assert.True(t, CheckPassword(digest, "correct horse battery staple"))
	assert.False(t, CheckPassword(digest, "correct horse battery stable"))
	assert.False(t, CheckPassword(digest, ""))
}

func TestHashPasswordFreshSalt(t *testing.T) {
	first, err := HashPassword("same password")
	require.NoError(t, err)
	second, err := HashPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword(first, "same password"))
	assert.True(t, CheckPassword(second, "same password"))
}

func TestCheckPasswordMalformedDigest(t *testing.T) {
	for _, digest := range []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=65536,t=3,p=1$notbase64!!$also-not",
		"$bcrypt$v=19$m=65536,t=3,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=65536,t=3,p=1$c2FsdA$aGFzaA",
	} {
		assert.False(t, CheckPassword(digest, "whatever"), "digest %q should not verify", digest)
	}
}
