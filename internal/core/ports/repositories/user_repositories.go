package repositories

import (
	"context"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
)

// UserReader defines read operations for user records.
// Lookups return apperrors.ErrNotFound when no record matches.
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by their stored (lowercase) username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their stored (lowercase) email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for user records.
// Writes that collide with the username or email unique index return apperrors.ErrDuplicate.
type UserWriter interface {
	// SaveUser inserts a new user. CreatedAt and UpdatedAt are populated by the store.
	SaveUser(ctx context.Context, user *domain.User) error

	// UpdateUser persists profile fields and the password hash. UpdatedAt is refreshed by the store.
	UpdateUser(ctx context.Context, user *domain.User) error

	// UpdateRefreshToken sets, or clears when nil, the stored refresh token digest.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash *string) error

	// ReplaceRefreshToken swaps the stored digest only while it still equals expectedHash.
	// It returns apperrors.ErrNotFound when no row matched.
	ReplaceRefreshToken(ctx context.Context, userID, expectedHash, newHash string) error
}

// WatchHistoryRepository manages the ordered list of watched video references.
type WatchHistoryRepository interface {
	// AppendWatchHistory adds videoID to the end of the user's watch history.
	AppendWatchHistory(ctx context.Context, userID string, videoID string) error

	// FindWatchHistory returns the watched video IDs in insertion order.
	FindWatchHistory(ctx context.Context, userID string) ([]string, error)
}

// UserRepositoryFacade combines all user-related repository interfaces
// This is a facade for clients that need access to all operations
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	WatchHistoryRepository
}
