package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easysocial/easysocial-server/internal/config"
	"github.com/easysocial/easysocial-server/internal/models"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:   "test-secret",
		Issuer:   "EasySocial Issuing Service",
		Subject:  "EasySocial Authentication Provider",
		Lifetime: time.Hour,
	}
}

func TestGenerateToken_Claims(t *testing.T) {
	svc := NewTokenService(testJWTConfig())
	user := &models.User{
		ID:       "4f6cfe84-11a4-4fb1-b2a0-0c3c8f209d2b",
		Email:    "a@b.com",
		Provider: models.ProviderGitHub,
	}

	signed, err := svc.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	token, err := jwt.Parse(signed, func(token *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, user.ID, claims["id"])
	assert.Equal(t, "a@b.com", claims["email"])
	assert.Equal(t, "github", claims["oauthProvider"])
	assert.Equal(t, "EasySocial Issuing Service", claims["iss"])
	assert.Equal(t, "EasySocial Authentication Provider", claims["sub"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), exp.Unix(), 5)
}

func TestValidateToken_RoundTrip(t *testing.T) {
	svc := NewTokenService(testJWTConfig())
	user := &models.User{ID: "user-1", Email: "a@b.com", Provider: models.ProviderGoogle}

	signed, err := svc.GenerateToken(user)
	require.NoError(t, err)

	got, err := svc.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, user.Provider, got.Provider)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := NewTokenService(testJWTConfig())
	signed, err := svc.GenerateToken(&models.User{ID: "user-1", Provider: models.ProviderGitHub})
	require.NoError(t, err)

	other := NewTokenService(config.JWTConfig{Secret: "different-secret", Lifetime: time.Hour})
	_, err = other.ValidateToken(signed)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Lifetime = -time.Minute
	svc := NewTokenService(cfg)

	signed, err := svc.GenerateToken(&models.User{ID: "user-1", Provider: models.ProviderGitHub})
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.Error(t, err)
}
