package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vidtube_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vidtube_backend/internal/core/ports/services"
	"github.com/SscSPs/vidtube_backend/internal/dto"
	"github.com/SscSPs/vidtube_backend/internal/utils"
	"github.com/SscSPs/vidtube_backend/internal/validation"
	"github.com/google/uuid"
)

// PasswordVerifier checks a candidate password against a user's stored hash.
type PasswordVerifier interface {
	IsPasswordCorrect(user *domain.User, candidate string) bool
}

type userService struct {
	BaseService
	userRepo     portsrepo.UserRepositoryFacade
	verifier     PasswordVerifier
	validator    *validation.Validator
	hashPassword func(plaintext string) (string, error)
}

// NewUserService creates a user service backed by userRepo. Passwords are
// checked through verifier, normally the authenticator.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, verifier PasswordVerifier) portssvc.UserSvcFacade {
	return &userService{
		userRepo:     userRepo,
		verifier:     verifier,
		validator:    validation.New(),
		hashPassword: utils.HashPassword,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// prepareForSave runs before every persist: it hashes a modified password
// and leaves an unmodified one untouched.
func (s *userService) prepareForSave(ctx context.Context, user *domain.User) error {
	hashed, err := user.HashPasswordIfModified(s.hashPassword)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password", slog.String("user_id", user.UserID))
		return err
	}
	if hashed {
		s.LogDebug(ctx, "Password hash derived", slog.String("user_id", user.UserID))
	}
	return nil
}

// checkUniqueness reports unique-rule field errors for a username or email
// already held by a user other than excludeUserID. Empty values are skipped.
func (s *userService) checkUniqueness(ctx context.Context, username, email, excludeUserID string) (validation.Result, error) {
	var res validation.Result

	if username != "" {
		existing, err := s.userRepo.FindUserByUsername(ctx, username)
		switch {
		case err == nil && existing.UserID != excludeUserID:
			res.Add("username", apperrors.RuleUnique, "username is already taken")
		case err != nil && !errors.Is(err, apperrors.ErrNotFound):
			return res, fmt.Errorf("failed to check username availability: %w", err)
		}
	}

	if email != "" {
		existing, err := s.userRepo.FindUserByEmail(ctx, email)
		switch {
		case err == nil && existing.UserID != excludeUserID:
			res.Add("email", apperrors.RuleUnique, "email is already registered")
		case err != nil && !errors.Is(err, apperrors.ErrNotFound):
			return res, fmt.Errorf("failed to check email availability: %w", err)
		}
	}

	return res, nil
}

func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	user := &domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		Avatar:       req.Avatar,
		CoverImage:   req.CoverImage,
		WatchHistory: []string{},
	}
	user.Normalize()

	// Validate the stored form of each field.
	req.Username, req.Email, req.FullName, req.Avatar = user.Username, user.Email, user.FullName, user.Avatar
	res := s.validator.Struct(req)

	unique, err := s.checkUniqueness(ctx, user.Username, user.Email, "")
	if err != nil {
		return nil, err
	}
	res.Merge(unique)
	if err := res.Err(); err != nil {
		s.LogInfo(ctx, "User registration rejected", slog.String("username", user.Username), slog.Int("field_errors", len(res.Errors)))
		return nil, err
	}

	user.SetPassword(req.Password)
	if err := s.prepareForSave(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("username", user.Username))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, domain.NormalizeUsername(username))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateAccountDetails(ctx context.Context, userID string, req dto.UpdateAccountRequest) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		trimmed := strings.TrimSpace(*req.FullName)
		req.FullName = &trimmed
	}
	if req.Email != nil {
		normalized := domain.NormalizeEmail(*req.Email)
		req.Email = &normalized
	}

	res := s.validator.Struct(req)
	if err := res.Err(); err != nil {
		return nil, err
	}

	changed := false
	if req.FullName != nil && *req.FullName != user.FullName {
		user.FullName = *req.FullName
		changed = true
	}
	if req.Email != nil && *req.Email != user.Email {
		unique, err := s.checkUniqueness(ctx, "", *req.Email, user.UserID)
		if err != nil {
			return nil, err
		}
		if err := unique.Err(); err != nil {
			return nil, err
		}
		user.Email = *req.Email
		changed = true
	}

	if !changed {
		return user, nil
	}
	if err := s.save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update account details: %w", err)
	}
	s.LogInfo(ctx, "Account details updated", slog.String("user_id", user.UserID))
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	if err := s.validator.Struct(req).Err(); err != nil {
		return err
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !s.verifier.IsPasswordCorrect(user, req.OldPassword) {
		s.LogWarn(ctx, "Password change rejected: old password mismatch", slog.String("user_id", userID))
		return apperrors.NewValidationError(apperrors.FieldError{
			Field:   "oldPassword",
			Rule:    "mismatch",
			Message: "Invalid old password",
		})
	}

	user.SetPassword(req.NewPassword)
	if err := s.save(ctx, user); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	s.LogInfo(ctx, "Password changed", slog.String("user_id", userID))
	return nil
}

func (s *userService) UpdateAvatar(ctx context.Context, userID string, avatarURL string) (*domain.User, error) {
	avatarURL = strings.TrimSpace(avatarURL)
	if err := s.validator.Var("avatar", avatarURL, "required").Err(); err != nil {
		return nil, err
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Avatar == avatarURL {
		return user, nil
	}

	user.Avatar = avatarURL
	if err := s.save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateCoverImage(ctx context.Context, userID string, coverImageURL string) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.CoverImage = &coverImageURL
	user.Normalize()
	if err := s.save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update cover image: %w", err)
	}
	return user, nil
}

func (s *userService) AddToWatchHistory(ctx context.Context, userID string, videoID string) error {
	videoID = strings.TrimSpace(videoID)
	if err := s.validator.Var("videoID", videoID, "required").Err(); err != nil {
		return err
	}
	if err := s.userRepo.AppendWatchHistory(ctx, userID, videoID); err != nil {
		return fmt.Errorf("failed to add to watch history: %w", err)
	}
	return nil
}

func (s *userService) GetWatchHistory(ctx context.Context, userID string) ([]string, error) {
	history, err := s.userRepo.FindWatchHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get watch history: %w", err)
	}
	if history == nil {
		history = []string{}
	}
	return history, nil
}

func (s *userService) AuthenticateUser(ctx context.Context, identifier, password string) (*domain.User, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" || password == "" {
		return nil, apperrors.ErrUnauthorized
	}

	user, err := s.userRepo.FindUserByUsername(ctx, identifier)
	if errors.Is(err, apperrors.ErrNotFound) && validation.ValidateEmail(identifier) {
		user, err = s.userRepo.FindUserByEmail(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogInfo(ctx, "Login for unknown user")
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user for authentication: %w", err)
	}

	if !s.verifier.IsPasswordCorrect(user, password) {
		s.LogInfo(ctx, "Invalid password", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash *string) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash); err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}
	return nil
}

func (s *userService) RotateRefreshToken(ctx context.Context, userID, expectedHash, newHash string) error {
	if err := s.userRepo.ReplaceRefreshToken(ctx, userID, expectedHash, newHash); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Refresh token already rotated", slog.String("user_id", userID))
			return fmt.Errorf("%w: refresh token is expired or used", apperrors.ErrUnauthorized)
		}
		return fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	return nil
}

// save runs the pre-save hook and persists an existing user.
func (s *userService) save(ctx context.Context, user *domain.User) error {
	if err := s.prepareForSave(ctx, user); err != nil {
		return err
	}
	return s.userRepo.UpdateUser(ctx, user)
}
