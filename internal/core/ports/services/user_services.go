package services

import (
	"context"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	"github.com/SscSPs/vidtube_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByUsername retrieves a user by username (case-insensitive).
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetWatchHistory returns the ordered video IDs the user watched.
	GetWatchHistory(ctx context.Context, userID string) ([]string, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// RegisterUser validates, hashes and stores a new user.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// UpdateAccountDetails changes the full name and/or email.
	UpdateAccountDetails(ctx context.Context, userID string, req dto.UpdateAccountRequest) (*domain.User, error)

	// ChangePassword verifies the old password and stores a hash of the new one.
	ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error

	// UpdateAvatar replaces the required avatar URL.
	UpdateAvatar(ctx context.Context, userID string, avatarURL string) (*domain.User, error)

	// UpdateCoverImage replaces the optional cover image URL; empty clears it.
	UpdateCoverImage(ctx context.Context, userID string, coverImageURL string) (*domain.User, error)

	// AddToWatchHistory appends a video reference to the user's watch history.
	AddToWatchHistory(ctx context.Context, userID string, videoID string) error

	// UpdateRefreshToken sets, or clears when nil, the stored refresh token digest.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash *string) error

	// RotateRefreshToken replaces expectedHash with newHash. It returns
	// apperrors.ErrUnauthorized when expectedHash is no longer the stored digest.
	RotateRefreshToken(ctx context.Context, userID, expectedHash, newHash string) error
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser checks a username-or-email and password pair.
	// It returns apperrors.ErrUnauthorized when the credentials are rejected.
	AuthenticateUser(ctx context.Context, identifier, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}
