package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	tok, err := GenerateJWT("carla.fit@smartfit.com", secret, time.Hour)
	require.NoError(t, err)

	email, err := ParseJWT(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "carla.fit@smartfit.com", email)
}

func TestParseJWT_Rejects(t *testing.T) {
	secret := []byte("test-secret")

	expired, err := GenerateJWT("a@b.c", secret, -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(expired, secret)
	assert.Error(t, err)

	tok, err := GenerateJWT("a@b.c", secret, time.Hour)
	require.NoError(t, err)
	_, err = ParseJWT(tok, []byte("other-secret"))
	assert.Error(t, err)

	_, err = ParseJWT("not-a-token", secret)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)
	assert.True(t, CheckPasswordHash("password123", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
