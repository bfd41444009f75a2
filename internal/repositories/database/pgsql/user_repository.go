package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vidtube_backend/internal/core/ports/repositories"
	"github.com/SscSPs/vidtube_backend/internal/models"
	"github.com/SscSPs/vidtube_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, username, email, password_hash, full_name, avatar, cover_image,
	watch_history, refresh_token_hash, created_at, updated_at`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUser(row pgx.Row) (*domain.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Username,
		&m.Email,
		&m.PasswordHash,
		&m.FullName,
		&m.Avatar,
		&m.CoverImage,
		&m.WatchHistory,
		&m.RefreshTokenHash,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainUser(m)
	return &d, nil
}

func (r *PgxUserRepository) findUserBy(ctx context.Context, column, value string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, value))
	if err != nil {
		return nil, r.translateError(err, fmt.Sprintf("failed to find user by %s", column))
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findUserBy(ctx, "user_id", userID)
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findUserBy(ctx, "username", username)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findUserBy(ctx, "email", email)
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user *domain.User) error {
	m := mapping.ToModelUser(*user)
	query := `
        INSERT INTO users (user_id, username, email, password_hash, full_name, avatar, cover_image, watch_history)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at, updated_at;
    `
	err := r.Pool.QueryRow(ctx, query,
		m.UserID,
		m.Username,
		m.Email,
		m.PasswordHash,
		m.FullName,
		m.Avatar,
		m.CoverImage,
		m.WatchHistory,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return r.translateError(err, "failed to save user")
	}
	return nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	m := mapping.ToModelUser(*user)
	query := `
        UPDATE users
        SET email = $1, password_hash = $2, full_name = $3, avatar = $4, cover_image = $5, updated_at = now()
        WHERE user_id = $6
        RETURNING updated_at;
    `
	err := r.Pool.QueryRow(ctx, query,
		m.Email,
		m.PasswordHash,
		m.FullName,
		m.Avatar,
		m.CoverImage,
		m.UserID,
	).Scan(&user.UpdatedAt)
	if err != nil {
		return r.translateError(err, "failed to update user")
	}
	return nil
}

func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash *string) error {
	query := `UPDATE users SET refresh_token_hash = $1, updated_at = now() WHERE user_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, refreshTokenHash, userID)
	if err != nil {
		return r.translateError(err, "failed to update refresh token")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) ReplaceRefreshToken(ctx context.Context, userID, expectedHash, newHash string) error {
	query := `
        UPDATE users SET refresh_token_hash = $1, updated_at = now()
        WHERE user_id = $2 AND refresh_token_hash = $3;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, newHash, userID, expectedHash)
	if err != nil {
		return r.translateError(err, "failed to replace refresh token")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("current refresh token for user %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) AppendWatchHistory(ctx context.Context, userID string, videoID string) error {
	query := `UPDATE users SET watch_history = array_append(watch_history, $1), updated_at = now() WHERE user_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, videoID, userID)
	if err != nil {
		return r.translateError(err, "failed to append watch history")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) FindWatchHistory(ctx context.Context, userID string) ([]string, error) {
	var history []string
	err := r.Pool.QueryRow(ctx, `SELECT watch_history FROM users WHERE user_id = $1;`, userID).Scan(&history)
	if err != nil {
		return nil, r.translateError(err, "failed to find watch history")
	}
	if history == nil {
		history = []string{}
	}
	return history, nil
}
