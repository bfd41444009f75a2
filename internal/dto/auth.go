package dto

import "time"

// LoginRequest accepts either a username or an email with the password.
type LoginRequest struct {
	Username string `json:"username,omitempty" validate:"required_without=Email"`
	Email    string `json:"email,omitempty" validate:"required_without=Username"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest carries a previously issued refresh token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// AuthTokens is an issued access/refresh token pair.
type AuthTokens struct {
	AccessToken           string    `json:"accessToken"`
	AccessTokenExpiresAt  time.Time `json:"accessTokenExpiresAt"`
	RefreshToken          string    `json:"refreshToken"`
	RefreshTokenExpiresAt time.Time `json:"refreshTokenExpiresAt"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	User UserResponse `json:"user"`
	AuthTokens
}

// RefreshTokenResponse represents the response for a successful token refresh.
type RefreshTokenResponse struct {
	AuthTokens
}

// ErrorResponse is the error body returned by handlers.
type ErrorResponse struct {
	Error  string               `json:"error"`
	Fields []FieldErrorResponse `json:"fields,omitempty"`
}

// FieldErrorResponse reports one failed field constraint.
type FieldErrorResponse struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}
