package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	"github.com/SscSPs/vidtube_backend/internal/core/services"
	"github.com/SscSPs/vidtube_backend/internal/platform/config"
	"github.com/SscSPs/vidtube_backend/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenConfig() config.TokenConfig {
	return config.TokenConfig{
		AccessTokenSecret:  "access-secret-for-tests",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenSecret: "refresh-secret-for-tests",
		RefreshTokenExpiry: 10 * 24 * time.Hour,
	}
}

func testUser() *domain.User {
	return &domain.User{
		UserID:   uuid.NewString(),
		Username: "johndoe",
		Email:    "john@example.com",
		FullName: "John Doe",
		Avatar:   "https://img.example.com/a.png",
	}
}

func decodeClaims(t *testing.T, token, secret string) jwt.MapClaims {
	t.Helper()
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	return claims
}

func claimKeys(claims jwt.MapClaims) []string {
	keys := make([]string, 0, len(claims))
	for k := range claims {
		keys = append(keys, k)
	}
	return keys
}

func TestAuthenticator_IsPasswordCorrect(t *testing.T) {
	auth := services.NewAuthenticator(testTokenConfig())
	hash, err := utils.HashPassword("Valid1Pass!")
	require.NoError(t, err)
	user := testUser()
	user.PasswordHash = hash

	assert.True(t, auth.IsPasswordCorrect(user, "Valid1Pass!"))
	assert.False(t, auth.IsPasswordCorrect(user, "Wrong1Pass!"))
	assert.False(t, auth.IsPasswordCorrect(user, "password"))
	assert.False(t, auth.IsPasswordCorrect(nil, "Valid1Pass!"))
}

func TestAuthenticator_GenerateAccessToken(t *testing.T) {
	cfg := testTokenConfig()
	auth := services.NewAuthenticator(cfg)
	user := testUser()

	before := time.Now()
	token, expiresAt, err := auth.GenerateAccessToken(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, before.Add(cfg.AccessTokenExpiry), expiresAt, 2*time.Second)

	claims := decodeClaims(t, token, cfg.AccessTokenSecret)
	assert.ElementsMatch(t, []string{"id", "email", "username", "fullName", "iat", "exp"}, claimKeys(claims))
	assert.Equal(t, user.UserID, claims["id"])
	assert.Equal(t, user.Email, claims["email"])
	assert.Equal(t, user.Username, claims["username"])
	assert.Equal(t, user.FullName, claims["fullName"])

	_, err = jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte("some-other-secret"), nil
	})
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestAuthenticator_GenerateRefreshToken(t *testing.T) {
	cfg := testTokenConfig()
	auth := services.NewAuthenticator(cfg)
	user := testUser()

	access, accessExp, err := auth.GenerateAccessToken(context.Background(), user)
	require.NoError(t, err)
	refresh, refreshExp, err := auth.GenerateRefreshToken(context.Background(), user)
	require.NoError(t, err)

	claims := decodeClaims(t, refresh, cfg.RefreshTokenSecret)
	assert.ElementsMatch(t, []string{"id", "jti", "iat", "exp"}, claimKeys(claims))
	assert.Equal(t, user.UserID, claims["id"])
	assert.NotEmpty(t, claims["jti"])
	assert.NotEqual(t, accessExp, refreshExp)
	assert.True(t, refreshExp.After(accessExp))

	// Each token only verifies with its own secret.
	_, err = auth.ParseAccessToken(context.Background(), refresh)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	_, err = auth.ParseRefreshToken(context.Background(), access)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthenticator_RefreshTokensAreUnique(t *testing.T) {
	auth := services.NewAuthenticator(testTokenConfig())
	user := testUser()

	first, _, err := auth.GenerateRefreshToken(context.Background(), user)
	require.NoError(t, err)
	second, _, err := auth.GenerateRefreshToken(context.Background(), user)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotEqual(t, utils.HashRefreshToken(first), utils.HashRefreshToken(second))
}

func TestAuthenticator_ParseTokens(t *testing.T) {
	auth := services.NewAuthenticator(testTokenConfig())
	user := testUser()
	ctx := context.Background()

	access, _, err := auth.GenerateAccessToken(ctx, user)
	require.NoError(t, err)
	accessClaims, err := auth.ParseAccessToken(ctx, access)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, accessClaims.ID)
	assert.Equal(t, user.Email, accessClaims.Email)
	assert.Equal(t, user.Username, accessClaims.Username)
	assert.Equal(t, user.FullName, accessClaims.FullName)

	refresh, _, err := auth.GenerateRefreshToken(ctx, user)
	require.NoError(t, err)
	refreshClaims, err := auth.ParseRefreshToken(ctx, refresh)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, refreshClaims.ID)

	_, err = auth.ParseAccessToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthenticator_ExpiredRefreshToken(t *testing.T) {
	cfg := testTokenConfig()
	auth := services.NewAuthenticator(cfg)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  uuid.NewString(),
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte(cfg.RefreshTokenSecret))
	require.NoError(t, err)

	_, err = auth.ParseRefreshToken(context.Background(), expired)
	assert.ErrorIs(t, err, apperrors.ErrRefreshTokenExpired)
}

func TestAuthenticator_MissingConfiguration(t *testing.T) {
	ctx := context.Background()
	user := testUser()

	noAccess := testTokenConfig()
	noAccess.AccessTokenSecret = ""
	_, _, err := services.NewAuthenticator(noAccess).GenerateAccessToken(ctx, user)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)

	noRefresh := testTokenConfig()
	noRefresh.RefreshTokenExpiry = 0
	_, _, err = services.NewAuthenticator(noRefresh).GenerateRefreshToken(ctx, user)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)

	_, err = services.NewAuthenticator(config.TokenConfig{}).ParseAccessToken(ctx, "a.b.c")
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}
