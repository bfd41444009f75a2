package models

import (
	"database/sql"
	"time"
)

// AuditFields are the timestamps maintained by the database.
type AuditFields struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// User is the row stored in the users table.
type User struct {
	UserID       string         `db:"user_id"`
	Username     string         `db:"username"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	FullName     string         `db:"full_name"`
	Avatar       string         `db:"avatar"`
	CoverImage   sql.NullString `db:"cover_image"`
	WatchHistory []string       `db:"watch_history"`
	AuditFields

	// Refresh Token Fields
	RefreshTokenHash sql.NullString `db:"refresh_token_hash"` // Store hash of the refresh token
}
