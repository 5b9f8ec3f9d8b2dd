package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	tokens := JWTTokens{Secret: []byte("secret"), TTL: time.Hour}
	svc := NewAuthService(newTestDB(t), tokens)

	user, err := svc.Register(ctx, RegisterRequest{Email: "Carla.Fit@SmartFit.com", Name: "Carla Fit", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, carla, user.Email)

	_, err = svc.Register(ctx, RegisterRequest{Email: carla, Name: "Otra", Password: "password123"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	resp, err := svc.Login(ctx, LoginRequest{Email: carla, Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, UserSummary{Name: "Carla Fit", Email: carla}, resp.User)

	email, err := tokens.ResolveIdentity(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, carla, email)

	_, err = svc.Login(ctx, LoginRequest{Email: carla, Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginRequest{Email: "nobody@smartfit.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestFakeTokens(t *testing.T) {
	tok, err := FakeTokens{}.IssueToken(carla)
	require.NoError(t, err)
	assert.Equal(t, carla+"-fake-jwt-token", tok)

	email, err := FakeTokens{}.ResolveIdentity(tok)
	require.NoError(t, err)
	assert.Equal(t, carla, email)

	for _, bad := range []string{"", "-fake-jwt-token", "carla.fit@smartfit.com", "random"} {
		_, err := FakeTokens{}.ResolveIdentity(bad)
		assert.ErrorIs(t, err, ErrInvalidToken, bad)
	}
}

func TestJWTTokens_RejectsForeignToken(t *testing.T) {
	_, err := JWTTokens{Secret: []byte("a")}.ResolveIdentity(carla + "-fake-jwt-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
