package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	portssvc "github.com/SscSPs/vidtube_backend/internal/core/ports/services"
	"github.com/SscSPs/vidtube_backend/internal/dto"
	"github.com/SscSPs/vidtube_backend/internal/utils"
	"github.com/SscSPs/vidtube_backend/internal/validation"
)

// authService issues and rotates token pairs. Only the SHA-256 digest of the
// latest refresh token is stored on the user record.
type authService struct {
	BaseService
	userService   portssvc.UserSvcFacade
	authenticator portssvc.AuthenticatorSvc
	validator     *validation.Validator
}

// NewAuthService creates an auth service.
func NewAuthService(userService portssvc.UserSvcFacade, authenticator portssvc.AuthenticatorSvc) portssvc.AuthSvcFacade {
	return &authService{
		userService:   userService,
		authenticator: authenticator,
		validator:     validation.New(),
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*domain.User, *dto.AuthTokens, error) {
	if err := s.validator.Struct(req).Err(); err != nil {
		return nil, nil, err
	}

	identifier := req.Username
	if identifier == "" {
		identifier = req.Email
	}

	user, err := s.userService.AuthenticateUser(ctx, identifier, req.Password)
	if err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(ctx, user, "")
	if err != nil {
		return nil, nil, err
	}
	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return user, tokens, nil
}

func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*dto.AuthTokens, error) {
	if refreshToken == "" {
		return nil, apperrors.ErrUnauthorized
	}

	claims, err := s.authenticator.ParseRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userService.GetUserByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Refresh token for unknown user", slog.String("user_id", claims.ID))
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to retrieve user for refresh token validation: %w", err)
	}

	if !user.HasRefreshToken() || !utils.CompareRefreshTokenHash(refreshToken, *user.RefreshTokenHash) {
		s.LogWarn(ctx, "Refresh token mismatch", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("%w: refresh token is expired or used", apperrors.ErrUnauthorized)
	}

	// Only the holder of the current digest may rotate it; a concurrent refresh with
	// the same token loses the compare-and-swap below.
	tokens, err := s.issueTokens(ctx, user, *user.RefreshTokenHash)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Tokens refreshed", slog.String("user_id", user.UserID))
	return tokens, nil
}

func (s *authService) Logout(ctx context.Context, userID string) error {
	if err := s.userService.UpdateRefreshToken(ctx, userID, nil); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}
	s.LogInfo(ctx, "User logged out", slog.String("user_id", userID))
	return nil
}

// issueTokens signs a new pair and stores the refresh token digest. With an empty
// previousDigest any stored digest is replaced; otherwise the store only accepts
// the new digest while previousDigest is still current.
func (s *authService) issueTokens(ctx context.Context, user *domain.User, previousDigest string) (*dto.AuthTokens, error) {
	accessToken, accessExp, err := s.authenticator.GenerateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}
	refreshToken, refreshExp, err := s.authenticator.GenerateRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}

	digest := utils.HashRefreshToken(refreshToken)
	if previousDigest == "" {
		err = s.userService.UpdateRefreshToken(ctx, user.UserID, &digest)
	} else {
		err = s.userService.RotateRefreshToken(ctx, user.UserID, previousDigest, digest)
	}
	if err != nil {
		return nil, err
	}
	user.RefreshTokenHash = &digest

	return &dto.AuthTokens{
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessExp,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExp,
	}, nil
}
