package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	portssvc "github.com/SscSPs/vidtube_backend/internal/core/ports/services"
	"github.com/SscSPs/vidtube_backend/internal/core/services"
	"github.com/SscSPs/vidtube_backend/internal/dto"
	"github.com/SscSPs/vidtube_backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	mockUserService *MockUserService
	authenticator   portssvc.AuthenticatorSvc
	service         portssvc.AuthSvcFacade
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockUserService = new(MockUserService)
	suite.authenticator = services.NewAuthenticator(testTokenConfig())
	suite.service = services.NewAuthService(suite.mockUserService, suite.authenticator)
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	user := testUser()
	var storedDigest *string

	suite.mockUserService.On("AuthenticateUser", ctx, "johndoe", "Valid1Pass!").Return(user, nil).Once()
	suite.mockUserService.On("UpdateRefreshToken", ctx, user.UserID, mock.AnythingOfType("*string")).Return(nil).Once().Run(func(args mock.Arguments) {
		storedDigest = args.Get(2).(*string)
	})

	gotUser, tokens, err := suite.service.Login(ctx, dto.LoginRequest{Username: "johndoe", Password: "Valid1Pass!"})

	suite.Require().NoError(err)
	suite.Equal(user, gotUser)
	suite.Require().NotNil(tokens)
	suite.NotEmpty(tokens.AccessToken)
	suite.NotEmpty(tokens.RefreshToken)
	suite.True(tokens.RefreshTokenExpiresAt.After(tokens.AccessTokenExpiresAt))

	// Only the digest of the refresh token is stored.
	suite.Require().NotNil(storedDigest)
	suite.NotEqual(tokens.RefreshToken, *storedDigest)
	suite.True(utils.CompareRefreshTokenHash(tokens.RefreshToken, *storedDigest))
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestLogin_ByEmail() {
	ctx := context.Background()
	user := testUser()

	suite.mockUserService.On("AuthenticateUser", ctx, "john@example.com", "Valid1Pass!").Return(user, nil).Once()
	suite.mockUserService.On("UpdateRefreshToken", ctx, user.UserID, mock.AnythingOfType("*string")).Return(nil).Once()

	_, tokens, err := suite.service.Login(ctx, dto.LoginRequest{Email: "john@example.com", Password: "Valid1Pass!"})

	suite.Require().NoError(err)
	suite.NotNil(tokens)
}

func (suite *AuthServiceTestSuite) TestLogin_InvalidCredentials() {
	ctx := context.Background()

	suite.mockUserService.On("AuthenticateUser", ctx, "johndoe", "Wrong1Pass!").Return(nil, apperrors.ErrUnauthorized).Once()

	user, tokens, err := suite.service.Login(ctx, dto.LoginRequest{Username: "johndoe", Password: "Wrong1Pass!"})

	suite.Require().Error(err)
	suite.Nil(user)
	suite.Nil(tokens)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserService.AssertNotCalled(suite.T(), "UpdateRefreshToken", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestLogin_MissingIdentifier() {
	_, _, err := suite.service.Login(context.Background(), dto.LoginRequest{Password: "Valid1Pass!"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AuthServiceTestSuite) TestRefreshTokens_Success() {
	ctx := context.Background()
	user := testUser()

	refresh, _, err := suite.authenticator.GenerateRefreshToken(ctx, user)
	suite.Require().NoError(err)
	digest := utils.HashRefreshToken(refresh)
	user.RefreshTokenHash = &digest

	suite.mockUserService.On("GetUserByID", ctx, user.UserID).Return(user, nil).Once()
	suite.mockUserService.On("RotateRefreshToken", ctx, user.UserID, digest, mock.AnythingOfType("string")).Return(nil).Once()

	tokens, err := suite.service.RefreshTokens(ctx, refresh)

	suite.Require().NoError(err)
	suite.NotEmpty(tokens.AccessToken)
	suite.NotEqual(refresh, tokens.RefreshToken)
	claims, err := suite.authenticator.ParseAccessToken(ctx, tokens.AccessToken)
	suite.Require().NoError(err)
	suite.Equal(user.UserID, claims.ID)
	suite.mockUserService.AssertNotCalled(suite.T(), "UpdateRefreshToken", mock.Anything, mock.Anything, mock.Anything)
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestRefreshTokens_ReplayAfterRotation() {
	ctx := context.Background()
	user := testUser()

	first, _, err := suite.authenticator.GenerateRefreshToken(ctx, user)
	suite.Require().NoError(err)
	digest := utils.HashRefreshToken(first)
	user.RefreshTokenHash = &digest

	suite.mockUserService.On("GetUserByID", ctx, user.UserID).Return(user, nil).Twice()
	suite.mockUserService.On("RotateRefreshToken", ctx, user.UserID, digest, mock.AnythingOfType("string")).Return(nil).Once()

	// Both refreshes run within the same second.
	rotated, err := suite.service.RefreshTokens(ctx, first)
	suite.Require().NoError(err)
	suite.NotEqual(first, rotated.RefreshToken)
	suite.True(utils.CompareRefreshTokenHash(rotated.RefreshToken, *user.RefreshTokenHash))

	replayed, err := suite.service.RefreshTokens(ctx, first)

	suite.Nil(replayed)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserService.AssertNumberOfCalls(suite.T(), "RotateRefreshToken", 1)
}

func (suite *AuthServiceTestSuite) TestRefreshTokens_ConcurrentRotationLoses() {
	ctx := context.Background()
	user := testUser()

	refresh, _, err := suite.authenticator.GenerateRefreshToken(ctx, user)
	suite.Require().NoError(err)
	digest := utils.HashRefreshToken(refresh)
	user.RefreshTokenHash = &digest

	// Another request rotated the digest between the read and the swap.
	suite.mockUserService.On("GetUserByID", ctx, user.UserID).Return(user, nil).Once()
	suite.mockUserService.On("RotateRefreshToken", ctx, user.UserID, digest, mock.AnythingOfType("string")).
		Return(apperrors.ErrUnauthorized).Once()

	tokens, err := suite.service.RefreshTokens(ctx, refresh)

	suite.Nil(tokens)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Equal(digest, *user.RefreshTokenHash)
}

func (suite *AuthServiceTestSuite) TestRefreshTokens_Mismatch() {
	ctx := context.Background()
	user := testUser()

	refresh, _, err := suite.authenticator.GenerateRefreshToken(ctx, user)
	suite.Require().NoError(err)
	otherDigest := utils.HashRefreshToken("a-newer-token")
	user.RefreshTokenHash = &otherDigest

	suite.mockUserService.On("GetUserByID", ctx, user.UserID).Return(user, nil).Once()

	tokens, err := suite.service.RefreshTokens(ctx, refresh)

	suite.Require().Error(err)
	suite.Nil(tokens)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserService.AssertNotCalled(suite.T(), "UpdateRefreshToken", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestRefreshTokens_LoggedOut() {
	ctx := context.Background()
	user := testUser()

	refresh, _, err := suite.authenticator.GenerateRefreshToken(ctx, user)
	suite.Require().NoError(err)

	suite.mockUserService.On("GetUserByID", ctx, user.UserID).Return(user, nil).Once()

	_, err = suite.service.RefreshTokens(ctx, refresh)

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestRefreshTokens_UnknownUser() {
	ctx := context.Background()
	user := testUser()

	refresh, _, err := suite.authenticator.GenerateRefreshToken(ctx, user)
	suite.Require().NoError(err)

	suite.mockUserService.On("GetUserByID", ctx, user.UserID).Return(nil, apperrors.ErrNotFound).Once()

	_, err = suite.service.RefreshTokens(ctx, refresh)

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestRefreshTokens_AccessTokenRejected() {
	ctx := context.Background()
	access, _, err := suite.authenticator.GenerateAccessToken(ctx, testUser())
	suite.Require().NoError(err)

	_, err = suite.service.RefreshTokens(ctx, access)

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserService.AssertNotCalled(suite.T(), "GetUserByID", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestLogout() {
	ctx := context.Background()
	user := &domain.User{UserID: "user-1"}

	suite.mockUserService.On("UpdateRefreshToken", ctx, user.UserID, (*string)(nil)).Return(nil).Once()

	err := suite.service.Logout(ctx, user.UserID)

	suite.Require().NoError(err)
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestLogout_Error() {
	ctx := context.Background()

	suite.mockUserService.On("UpdateRefreshToken", ctx, "user-1", (*string)(nil)).Return(assert.AnError).Once()

	err := suite.service.Logout(ctx, "user-1")

	suite.ErrorIs(err, assert.AnError)
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
