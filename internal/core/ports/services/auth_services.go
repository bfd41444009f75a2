package services

import (
	"context"
	"time"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	"github.com/SscSPs/vidtube_backend/internal/dto"
)

// AccessTokenClaims are the claims carried by an access token.
type AccessTokenClaims struct {
	ID       string
	Email    string
	Username string
	FullName string
	Expires  time.Time
}

// RefreshTokenClaims are the claims carried by a refresh token.
type RefreshTokenClaims struct {
	ID      string
	Expires time.Time
}

// AuthenticatorSvc verifies passwords and issues signed tokens for a user record.
type AuthenticatorSvc interface {
	// IsPasswordCorrect reports whether candidate matches the user's stored hash.
	IsPasswordCorrect(user *domain.User, candidate string) bool

	// GenerateAccessToken signs {id, email, username, fullName} with the access secret.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// GenerateRefreshToken signs {id} with the refresh secret.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ParseAccessToken verifies an access token and returns its claims.
	ParseAccessToken(ctx context.Context, token string) (*AccessTokenClaims, error)

	// ParseRefreshToken verifies a refresh token and returns its claims.
	ParseRefreshToken(ctx context.Context, token string) (*RefreshTokenClaims, error)
}

// AuthSvcFacade drives the session lifecycle: login, refresh and logout.
type AuthSvcFacade interface {
	// Login authenticates the credentials and issues a fresh token pair.
	Login(ctx context.Context, req dto.LoginRequest) (*domain.User, *dto.AuthTokens, error)

	// RefreshTokens exchanges a valid refresh token for a new pair, rotating the stored digest.
	RefreshTokens(ctx context.Context, refreshToken string) (*dto.AuthTokens, error)

	// Logout clears the stored refresh token digest.
	Logout(ctx context.Context, userID string) error
}
