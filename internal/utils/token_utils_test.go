package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParseJWT(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	token, err := SignJWT(claims, "secret-a")
	require.NoError(t, err)

	parsed := &jwt.RegisteredClaims{}
	require.NoError(t, ParseAndValidateJWT(token, parsed, "secret-a"))
	assert.Equal(t, "user-1", parsed.Subject)

	err = ParseAndValidateJWT(token, &jwt.RegisteredClaims{}, "secret-b")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParseJWT_Expired(t *testing.T) {
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))}
	token, err := SignJWT(claims, "secret-a")
	require.NoError(t, err)

	err = ParseAndValidateJWT(token, &jwt.RegisteredClaims{}, "secret-a")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWT_EmptySecret(t *testing.T) {
	_, err := SignJWT(jwt.RegisteredClaims{}, "")
	assert.ErrorIs(t, err, ErrEmptySecret)

	err = ParseAndValidateJWT("a.b.c", &jwt.RegisteredClaims{}, "")
	assert.ErrorIs(t, err, ErrEmptySecret)
}
