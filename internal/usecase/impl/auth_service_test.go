package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"pulseboard/internal/domain/entity"
	domainerrors "pulseboard/internal/domain/errors"
	"pulseboard/internal/domain/repository"
	"pulseboard/internal/domain/service"
	"pulseboard/internal/mocks"
	"pulseboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authServiceFixture struct {
	service  usecase.AuthUsecase
	userRepo *mocks.MockUserRepository
	hasher   *mocks.MockPasswordHasher
	tokenSvc *mocks.MockTokenService
	oauthSvc *mocks.MockOAuthService
}

func newAuthServiceFixture(t *testing.T) *authServiceFixture {
	t.Helper()

	fx := &authServiceFixture{
		userRepo: &mocks.MockUserRepository{},
		hasher:   &mocks.MockPasswordHasher{},
		tokenSvc: &mocks.MockTokenService{},
		oauthSvc: &mocks.MockOAuthService{},
	}

	fx.service = NewAuthService(AuthServiceParams{
		UserRepo:     fx.userRepo,
		Hasher:       fx.hasher,
		TokenService: fx.tokenSvc,
		OAuthService: fx.oauthSvc,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	t.Cleanup(func() {
		fx.userRepo.AssertExpectations(t)
		fx.hasher.AssertExpectations(t)
		fx.tokenSvc.AssertExpectations(t)
		fx.oauthSvc.AssertExpectations(t)
	})

	return fx
}

func TestAuthService_Register_Success(t *testing.T) {
	fx := newAuthServiceFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.hasher.On("ValidatePasswordStrength", "Str0ng!pass").Return(nil)
	fx.hasher.On("Hash", "Str0ng!pass").Return("hashed", nil)
	fx.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*entity.User)
			user.ID = userID
		}).
		Return(nil)
	fx.tokenSvc.On("GenerateTokens", userID).Return("access-token", "refresh-token", nil)

	output, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Email:     "Jane@Example.com",
		Password:  "Str0ng!pass",
		FirstName: "Jane",
		LastName:  "Doe",
	})

	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", output.User.Email)
	assert.Equal(t, "hashed", output.User.PasswordHash)
	assert.Equal(t, "access-token", output.AccessToken)
	assert.Equal(t, "refresh-token", output.RefreshToken)
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	fx := newAuthServiceFixture(t)
	ctx := context.Background()

	fx.hasher.On("ValidatePasswordStrength", "weak").
		Return(domainerrors.ErrPasswordStrength.WrapMessage("password is too short"))

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Email:    "jane@example.com",
		Password: "weak",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	fx := newAuthServiceFixture(t)
	ctx := context.Background()

	fx.hasher.On("ValidatePasswordStrength", "Str0ng!pass").Return(nil)
	fx.hasher.On("Hash", "Str0ng!pass").Return("hashed", nil)
	fx.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Return(repository.ErrEmailTaken)

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Email:    "jane@example.com",
		Password: "Str0ng!pass",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrEmailAlreadyRegistered))
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := newAuthServiceFixture(t)
	ctx := context.Background()
	user := &entity.User{
		ID:           uuid.New(),
		Email:        "jane@example.com",
		PasswordHash: "hashed",
	}

	fx.userRepo.On("FindByEmail", ctx, "jane@example.com").Return(user, nil)
	fx.hasher.On("Check", "Str0ng!pass", "hashed").Return(true)
	fx.tokenSvc.On("GenerateTokens", user.ID).Return("access-token", "refresh-token", nil)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "jane@example.com",
		Password: "Str0ng!pass",
	})

	require.NoError(t, err)
	assert.Equal(t, user, output.User)
	assert.Equal(t, "access-token", output.AccessToken)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	fx := newAuthServiceFixture(t)
	ctx := context.Background()

	fx.userRepo.On("FindByEmail", ctx, "ghost@example.com").
		Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	fx := newAuthServiceFixture(t)
	ctx := context.Background()
	user := &entity.User{
		ID:           uuid.New(),
		Email:        "jane@example.com",
		PasswordHash: "hashed",
	}

	fx.userRepo.On("FindByEmail", ctx, "jane@example.com").Return(user, nil)
	fx.hasher.On("Check", "wrong", "hashed").Return(false)

	_, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "jane@example.com",
		Password: "wrong",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_Login_OAuthOnlyAccount(t *testing.T) {
	fx := newAuthServiceFixture(t)
	ctx := context.Background()
	// User created through Google login has no local password hash.
	user := &entity.User{
		ID:    uuid.New(),
		Email: "jane@example.com",
	}

	fx.userRepo.On("FindByEmail", ctx, "jane@example.com").Return(user, nil)

	_, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "jane@example.com",
		Password: "anything",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_GoogleLogin_ExistingUser(t *testing.T) {
	fx := newAuthServiceFixture(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "jane@example.com"}

	fx.oauthSvc.On("ExchangeCode", ctx, "auth-code", "verifier").Return("provider-token", nil)
	fx.oauthSvc.On("FetchUserInfo", ctx, "provider-token").
		Return(&service.OAuthUser{Email: "Jane@Example.com", GivenName: "Jane", FamilyName: "Doe"}, nil)
	fx.userRepo.On("FindByEmail", ctx, "jane@example.com").Return(user, nil)
	fx.tokenSvc.On("GenerateTokens", user.ID).Return("access-token", "refresh-token", nil)

	output, err := fx.service.GoogleLogin(ctx, &usecase.GoogleLoginInput{
		Code:         "auth-code",
		CodeVerifier: "verifier",
	})

	require.NoError(t, err)
	assert.Equal(t, user, output.User)
}

func TestAuthService_GoogleLogin_NewUser(t *testing.T) {
	fx := newAuthServiceFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.oauthSvc.On("ExchangeCode", ctx, "auth-code", "verifier").Return("provider-token", nil)
	fx.oauthSvc.On("FetchUserInfo", ctx, "provider-token").
		Return(&service.OAuthUser{Email: "jane@example.com", GivenName: "Jane", FamilyName: "Doe"}, nil)
	fx.userRepo.On("FindByEmail", ctx, "jane@example.com").
		Return(nil, repository.ErrUserNotFound)
	fx.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*entity.User)
			user.ID = userID
		}).
		Return(nil)
	fx.tokenSvc.On("GenerateTokens", userID).Return("access-token", "refresh-token", nil)

	output, err := fx.service.GoogleLogin(ctx, &usecase.GoogleLoginInput{
		Code:         "auth-code",
		CodeVerifier: "verifier",
	})

	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", output.User.Email)
	assert.Equal(t, "Jane", output.User.FirstName)
	assert.Equal(t, "Doe", output.User.LastName)
	assert.False(t, output.User.HasLocalPassword())
}

func TestAuthService_GoogleLogin_CreateRace(t *testing.T) {
	fx := newAuthServiceFixture(t)
	ctx := context.Background()
	winner := &entity.User{ID: uuid.New(), Email: "jane@example.com"}

	fx.oauthSvc.On("ExchangeCode", ctx, "auth-code", "verifier").Return("provider-token", nil)
	fx.oauthSvc.On("FetchUserInfo", ctx, "provider-token").
		Return(&service.OAuthUser{Email: "jane@example.com"}, nil)
	fx.userRepo.On("FindByEmail", ctx, "jane@example.com").
		Return(nil, repository.ErrUserNotFound).Once()
	fx.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Return(repository.ErrEmailTaken)
	fx.userRepo.On("FindByEmail", ctx, "jane@example.com").
		Return(winner, nil).Once()
	fx.tokenSvc.On("GenerateTokens", winner.ID).Return("access-token", "refresh-token", nil)

	output, err := fx.service.GoogleLogin(ctx, &usecase.GoogleLoginInput{
		Code:         "auth-code",
		CodeVerifier: "verifier",
	})

	require.NoError(t, err)
	assert.Equal(t, winner, output.User)
}

func TestAuthService_GoogleLogin_ExchangeFails(t *testing.T) {
	fx := newAuthServiceFixture(t)
	ctx := context.Background()

	fx.oauthSvc.On("ExchangeCode", ctx, "bad-code", "verifier").
		Return("", domainerrors.ErrOAuthUpstream.WrapMessage("token exchange failed"))

	_, err := fx.service.GoogleLogin(ctx, &usecase.GoogleLoginInput{
		Code:         "bad-code",
		CodeVerifier: "verifier",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrOAuthUpstream))
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	fx := newAuthServiceFixture(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "jane@example.com"}

	fx.tokenSvc.On("ValidateToken", "refresh-token").
		Return(&service.Claims{UserID: user.ID, Type: service.TokenTypeRefresh}, nil)
	fx.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	fx.tokenSvc.On("GenerateTokens", user.ID).Return("new-access-token", "unused-refresh", nil)

	output, err := fx.service.RefreshToken(ctx, &usecase.RefreshTokenInput{
		RefreshToken: "refresh-token",
	})

	require.NoError(t, err)
	assert.Equal(t, "new-access-token", output.AccessToken)
}

func TestAuthService_RefreshToken_AccessTokenRejected(t *testing.T) {
	fx := newAuthServiceFixture(t)
	ctx := context.Background()

	fx.tokenSvc.On("ValidateToken", "access-token").
		Return(&service.Claims{UserID: uuid.New(), Type: service.TokenTypeAccess}, nil)

	_, err := fx.service.RefreshToken(ctx, &usecase.RefreshTokenInput{
		RefreshToken: "access-token",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrRefreshTokenInvalid))
}

func TestAuthService_RefreshToken_InvalidToken(t *testing.T) {
	fx := newAuthServiceFixture(t)
	ctx := context.Background()

	fx.tokenSvc.On("ValidateToken", "garbage").
		Return(nil, errors.New("failed to validate token"))

	_, err := fx.service.RefreshToken(ctx, &usecase.RefreshTokenInput{
		RefreshToken: "garbage",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrRefreshTokenInvalid))
}

func TestAuthService_RefreshToken_UserDeleted(t *testing.T) {
	fx := newAuthServiceFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.tokenSvc.On("ValidateToken", "refresh-token").
		Return(&service.Claims{UserID: userID, Type: service.TokenTypeRefresh}, nil)
	fx.userRepo.On("FindByID", ctx, userID).Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.RefreshToken(ctx, &usecase.RefreshTokenInput{
		RefreshToken: "refresh-token",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrRefreshTokenInvalid))
}
