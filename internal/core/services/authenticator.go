package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	portssvc "github.com/SscSPs/vidtube_backend/internal/core/ports/services"
	"github.com/SscSPs/vidtube_backend/internal/platform/config"
	"github.com/SscSPs/vidtube_backend/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// accessClaims is the wire form of an access token: identity claims plus iat/exp.
type accessClaims struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	jwt.RegisteredClaims
}

// refreshClaims is the wire form of a refresh token: the user ID plus jti/iat/exp.
// The random jti makes every issued refresh token distinct, so rotation always
// changes the stored digest.
type refreshClaims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

// authenticator implements portssvc.AuthenticatorSvc. Access and refresh tokens
// use separate secrets so neither secret can forge the other token type.
type authenticator struct {
	BaseService
	cfg config.TokenConfig
	now func() time.Time
}

// NewAuthenticator creates an authenticator bound to the given token configuration.
func NewAuthenticator(cfg config.TokenConfig) portssvc.AuthenticatorSvc {
	return &authenticator{cfg: cfg, now: time.Now}
}

// IsPasswordCorrect compares candidate with the stored bcrypt hash.
// A false result is a rejected credential, not an error.
func (a *authenticator) IsPasswordCorrect(user *domain.User, candidate string) bool {
	if user == nil {
		return false
	}
	return utils.CheckPasswordHash(candidate, user.PasswordHash)
}

// GenerateAccessToken creates a signed access token for the given user.
func (a *authenticator) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	if a.cfg.AccessTokenSecret == "" || a.cfg.AccessTokenExpiry <= 0 {
		return "", time.Time{}, fmt.Errorf("%w: access token secret or expiry not configured", apperrors.ErrConfiguration)
	}
	now := a.now()
	claims := accessClaims{
		ID:       user.UserID,
		Email:    user.Email,
		Username: user.Username,
		FullName: user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.cfg.AccessTokenExpiry)),
		},
	}
	token, err := utils.SignJWT(claims, a.cfg.AccessTokenSecret)
	if err != nil {
		a.LogError(ctx, err, "Failed to sign access token", slog.String("user_id", user.UserID))
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, claims.ExpiresAt.Time, nil
}

// GenerateRefreshToken creates a signed refresh token carrying only the user ID.
func (a *authenticator) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	if a.cfg.RefreshTokenSecret == "" || a.cfg.RefreshTokenExpiry <= 0 {
		return "", time.Time{}, fmt.Errorf("%w: refresh token secret or expiry not configured", apperrors.ErrConfiguration)
	}
	now := a.now()
	claims := refreshClaims{
		ID: user.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.cfg.RefreshTokenExpiry)),
		},
	}
	token, err := utils.SignJWT(claims, a.cfg.RefreshTokenSecret)
	if err != nil {
		a.LogError(ctx, err, "Failed to sign refresh token", slog.String("user_id", user.UserID))
		return "", time.Time{}, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return token, claims.ExpiresAt.Time, nil
}

// ParseAccessToken verifies token with the access secret.
func (a *authenticator) ParseAccessToken(ctx context.Context, token string) (*portssvc.AccessTokenClaims, error) {
	if a.cfg.AccessTokenSecret == "" {
		return nil, fmt.Errorf("%w: access token secret not configured", apperrors.ErrConfiguration)
	}
	claims := &accessClaims{}
	if err := utils.ParseAndValidateJWT(token, claims, a.cfg.AccessTokenSecret); err != nil {
		a.LogDebug(ctx, "Access token rejected", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, err)
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("%w: access token has no id claim", apperrors.ErrUnauthorized)
	}
	return &portssvc.AccessTokenClaims{
		ID:       claims.ID,
		Email:    claims.Email,
		Username: claims.Username,
		FullName: claims.FullName,
		Expires:  claims.ExpiresAt.Time,
	}, nil
}

// ParseRefreshToken verifies token with the refresh secret.
// An expired token yields apperrors.ErrRefreshTokenExpired.
func (a *authenticator) ParseRefreshToken(ctx context.Context, token string) (*portssvc.RefreshTokenClaims, error) {
	if a.cfg.RefreshTokenSecret == "" {
		return nil, fmt.Errorf("%w: refresh token secret not configured", apperrors.ErrConfiguration)
	}
	claims := &refreshClaims{}
	if err := utils.ParseAndValidateJWT(token, claims, a.cfg.RefreshTokenSecret); err != nil {
		a.LogDebug(ctx, "Refresh token rejected", slog.String("error", err.Error()))
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrRefreshTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, err)
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("%w: refresh token has no id claim", apperrors.ErrUnauthorized)
	}
	return &portssvc.RefreshTokenClaims{ID: claims.ID, Expires: claims.ExpiresAt.Time}, nil
}
