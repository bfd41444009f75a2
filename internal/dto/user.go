package dto

import (
	"time"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
)

// RegisterUserRequest is the payload for creating an account.
// Values are normalized (trimmed, lowercased) before the validate rules run.
type RegisterUserRequest struct {
	Username   string  `json:"username" validate:"required,notblank"`
	Email      string  `json:"email" validate:"required,useremail"`
	Password   string  `json:"password" validate:"required,min=8,max=32,strongpassword"`
	FullName   string  `json:"fullName" validate:"required,notblank"`
	Avatar     string  `json:"avatar" validate:"required,notblank"`
	CoverImage *string `json:"coverImage,omitempty"`
}

// UpdateAccountRequest defines the data allowed for updating account details.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateAccountRequest struct {
	FullName *string `json:"fullName,omitempty" validate:"omitnil,notblank"`
	Email    *string `json:"email,omitempty" validate:"omitnil,useremail"`
}

// ChangePasswordRequest carries the current password and its replacement.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=32,strongpassword"`
}

// UpdateAvatarRequest replaces the avatar URL.
type UpdateAvatarRequest struct {
	Avatar string `json:"avatar"`
}

// UpdateCoverImageRequest replaces the cover image URL; an empty value clears it.
type UpdateCoverImageRequest struct {
	CoverImage string `json:"coverImage"`
}

// AddWatchHistoryRequest references a watched video.
type AddWatchHistoryRequest struct {
	VideoID string `json:"videoID"`
}

// WatchHistoryResponse lists watched video IDs in the order they were added.
type WatchHistoryResponse struct {
	VideoIDs []string `json:"videoIDs"`
}

// UserResponse is the public view of a user record.
type UserResponse struct {
	UserID     string    `json:"userID"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Avatar     string    `json:"avatar"`
	CoverImage *string   `json:"coverImage,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ToUserResponse converts a domain.User to its response DTO.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:     user.UserID,
		Username:   user.Username,
		Email:      user.Email,
		FullName:   user.FullName,
		Avatar:     user.Avatar,
		CoverImage: user.CoverImage,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

// ChannelProfileResponse is the view of a user shown to other users.
type ChannelProfileResponse struct {
	Username   string  `json:"username"`
	FullName   string  `json:"fullName"`
	Avatar     string  `json:"avatar"`
	CoverImage *string `json:"coverImage,omitempty"`
}

// ToChannelProfileResponse converts a domain.User to its public channel view.
func ToChannelProfileResponse(user *domain.User) ChannelProfileResponse {
	return ChannelProfileResponse{
		Username:   user.Username,
		FullName:   user.FullName,
		Avatar:     user.Avatar,
		CoverImage: user.CoverImage,
	}
}
