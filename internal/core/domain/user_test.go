package domain_test

import (
	"errors"
	"testing"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringPtr(s string) *string {
	return &s
}

func TestUser_Normalize(t *testing.T) {
	tests := []struct {
		name string
		user domain.User
		want domain.User
	}{
		{
			name: "trims and lowercases username and email",
			user: domain.User{Username: "  JohnDoe ", Email: " John.Doe@Example.COM ", FullName: "  John Doe  ", Avatar: " https://img/a.png "},
			want: domain.User{Username: "johndoe", Email: "john.doe@example.com", FullName: "John Doe", Avatar: "https://img/a.png"},
		},
		{
			name: "blank cover image becomes nil",
			user: domain.User{Username: "a", CoverImage: stringPtr("   ")},
			want: domain.User{Username: "a"},
		},
		{
			name: "cover image is trimmed",
			user: domain.User{Username: "a", CoverImage: stringPtr(" https://img/c.png")},
			want: domain.User{Username: "a", CoverImage: stringPtr("https://img/c.png")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := tt.user
			u.Normalize()
			assert.Equal(t, tt.want, u)
		})
	}
}

func TestUser_HashPasswordIfModified(t *testing.T) {
	calls := 0
	hashFn := func(plain string) (string, error) {
		calls++
		return "hashed:" + plain, nil
	}

	u := domain.User{}
	assert.False(t, u.PasswordModified())

	u.SetPassword("Valid1Pass!")
	assert.True(t, u.PasswordModified())

	hashed, err := u.HashPasswordIfModified(hashFn)
	require.NoError(t, err)
	assert.True(t, hashed)
	assert.Equal(t, "hashed:Valid1Pass!", u.PasswordHash)
	assert.False(t, u.PasswordModified())

	// A second save without a new password must leave the hash alone.
	hashed, err = u.HashPasswordIfModified(hashFn)
	require.NoError(t, err)
	assert.False(t, hashed)
	assert.Equal(t, "hashed:Valid1Pass!", u.PasswordHash)
	assert.Equal(t, 1, calls)
}

func TestUser_HashPasswordIfModified_Error(t *testing.T) {
	u := domain.User{PasswordHash: "old"}
	u.SetPassword("Valid1Pass!")

	_, err := u.HashPasswordIfModified(func(string) (string, error) {
		return "", errors.New("boom")
	})

	require.Error(t, err)
	assert.Equal(t, "old", u.PasswordHash)
	assert.True(t, u.PasswordModified(), "pending password must survive a failed hash")
}

func TestUser_HasRefreshToken(t *testing.T) {
	assert.False(t, (&domain.User{}).HasRefreshToken())
	assert.False(t, (&domain.User{RefreshTokenHash: stringPtr("")}).HasRefreshToken())
	assert.True(t, (&domain.User{RefreshTokenHash: stringPtr("abc")}).HasRefreshToken())
}
