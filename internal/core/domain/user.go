package domain

import (
	"fmt"
	"strings"
)

// User represents a registered account of the video platform.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	FullName     string   `json:"fullName"`
	Avatar       string   `json:"avatar"`               // externally hosted image URL
	CoverImage   *string  `json:"coverImage,omitempty"` // externally hosted image URL
	WatchHistory []string `json:"watchHistory"`         // Video IDs, not owned by this record
	// RefreshTokenHash is the SHA-256 digest of the most recently issued refresh token.
	RefreshTokenHash *string `json:"-"`
	AuditFields

	pendingPassword *string
}

// NormalizeUsername folds a username to its stored form.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// NormalizeEmail folds an email address to its stored form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Normalize trims and case-folds the fields that are stored in canonical form.
func (u *User) Normalize() {
	u.Username = NormalizeUsername(u.Username)
	u.Email = NormalizeEmail(u.Email)
	u.FullName = strings.TrimSpace(u.FullName)
	u.Avatar = strings.TrimSpace(u.Avatar)
	if u.CoverImage != nil {
		trimmed := strings.TrimSpace(*u.CoverImage)
		if trimmed == "" {
			u.CoverImage = nil
		} else {
			u.CoverImage = &trimmed
		}
	}
}

// SetPassword records a new plaintext password. It is hashed by
// HashPasswordIfModified before the record is persisted.
func (u *User) SetPassword(plaintext string) {
	u.pendingPassword = &plaintext
}

// PasswordModified reports whether the password changed since the last save.
func (u *User) PasswordModified() bool {
	return u.pendingPassword != nil
}

// HashPasswordIfModified derives the stored hash from a pending plaintext.
// It is a no-op when the password was not modified, so an already hashed
// value is never hashed again. It reports whether a new hash was stored.
func (u *User) HashPasswordIfModified(hash func(plaintext string) (string, error)) (bool, error) {
	if u.pendingPassword == nil {
		return false, nil
	}
	hashed, err := hash(*u.pendingPassword)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}
	u.PasswordHash = hashed
	u.pendingPassword = nil
	return true, nil
}

// HasRefreshToken reports whether a refresh token digest is stored.
func (u *User) HasRefreshToken() bool {
	return u.RefreshTokenHash != nil && *u.RefreshTokenHash != ""
}
