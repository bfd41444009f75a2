package services_test

import (
	"context"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vidtube_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vidtube_backend/internal/core/ports/services"
	"github.com/SscSPs/vidtube_backend/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func userOrNil(v any) *domain.User {
	if v == nil {
		return nil
	}
	return v.(*domain.User)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash *string) error {
	args := m.Called(ctx, userID, refreshTokenHash)
	return args.Error(0)
}

func (m *MockUserRepository) ReplaceRefreshToken(ctx context.Context, userID, expectedHash, newHash string) error {
	args := m.Called(ctx, userID, expectedHash, newHash)
	return args.Error(0)
}

func (m *MockUserRepository) AppendWatchHistory(ctx context.Context, userID string, videoID string) error {
	args := m.Called(ctx, userID, videoID)
	return args.Error(0)
}

func (m *MockUserRepository) FindWatchHistory(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	var history []string
	if args.Get(0) != nil {
		history = args.Get(0).([]string)
	}
	return history, args.Error(1)
}

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserService) GetWatchHistory(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	var history []string
	if args.Get(0) != nil {
		history = args.Get(0).([]string)
	}
	return history, args.Error(1)
}

func (m *MockUserService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserService) UpdateAccountDetails(ctx context.Context, userID string, req dto.UpdateAccountRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	args := m.Called(ctx, userID, req)
	return args.Error(0)
}

func (m *MockUserService) UpdateAvatar(ctx context.Context, userID string, avatarURL string) (*domain.User, error) {
	args := m.Called(ctx, userID, avatarURL)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserService) UpdateCoverImage(ctx context.Context, userID string, coverImageURL string) (*domain.User, error) {
	args := m.Called(ctx, userID, coverImageURL)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserService) AddToWatchHistory(ctx context.Context, userID string, videoID string) error {
	args := m.Called(ctx, userID, videoID)
	return args.Error(0)
}

func (m *MockUserService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash *string) error {
	args := m.Called(ctx, userID, refreshTokenHash)
	return args.Error(0)
}

func (m *MockUserService) RotateRefreshToken(ctx context.Context, userID, expectedHash, newHash string) error {
	args := m.Called(ctx, userID, expectedHash, newHash)
	return args.Error(0)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, identifier, password string) (*domain.User, error) {
	args := m.Called(ctx, identifier, password)
	return userOrNil(args.Get(0)), args.Error(1)
}
