// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "pulseboard/internal/delivery/context"
	"pulseboard/internal/domain/entity"
	domainerrors "pulseboard/internal/domain/errors"
	"pulseboard/internal/domain/repository"
	"pulseboard/internal/domain/service"
	"pulseboard/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	oauthService service.OAuthService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	OAuthService service.OAuthService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		oauthService: params.OAuthService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete user registration process:
// password policy check, one-way hash, persist, issue credential pair.
// The plaintext password exists only on the stack of this call.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during registration", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "password does not meet security requirements")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during registration")
	}

	newUser := &entity.User{
		Email:        email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hashedPassword,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			srv.log(ctx).Warn("Registration with already registered email", slog.String("email", email))

			return nil, errors.Wrap(domainerrors.ErrEmailAlreadyRegistered, "registration failed")
		}

		return nil, errors.Wrap(err, "failed to create user during registration")
	}

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(newUser.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to generate tokens after registration", slog.Any("userID", newUser.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate tokens after registration")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.AuthOutput{
		User:         newUser,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Login orchestrates the user login process. Unknown email, OAuth-only account
// and wrong password all collapse into the same opaque ErrInvalidCredentials
// so the response never reveals whether the email exists.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting user login", slog.String("email", email))

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", email))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find user during login")
	}

	if !user.HasLocalPassword() || !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens during login")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.AuthOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// GoogleLogin handles login or registration via the Google authorization-code
// flow. The three steps are strictly ordered: code exchange, profile fetch,
// identity resolution by email.
func (srv *authService) GoogleLogin(ctx context.Context, input *usecase.GoogleLoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Handling Google login")

	providerToken, err := srv.oauthService.ExchangeCode(ctx, input.Code, input.CodeVerifier)
	if err != nil {
		return nil, errors.Wrap(err, "failed to exchange authorization code")
	}

	oauthUser, err := srv.oauthService.FetchUserInfo(ctx, providerToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch provider user info")
	}

	user, err := srv.findOrCreateGoogleUser(ctx, oauthUser)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve Google user")
	}

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens for Google login")
	}

	return &usecase.AuthOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// findOrCreateGoogleUser resolves the local user by the provider-reported
// email, creating one on first sight. Two accounts with the same email always
// merge into one User record. A concurrent create losing the race against the
// unique email index falls back to fetching the winner's row.
func (srv *authService) findOrCreateGoogleUser(ctx context.Context, oauthUser *service.OAuthUser) (*entity.User, error) {
	email := normalizeEmail(oauthUser.Email)

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err == nil {
		srv.log(ctx).Info("Found existing user for Google login", slog.Any("userID", user.ID))

		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	srv.log(ctx).Info("Google user not found, creating new user", slog.String("email", email))

	newUser := &entity.User{
		Email:     email,
		FirstName: oauthUser.GivenName,
		LastName:  oauthUser.FamilyName,
		// No local password: the account authenticates via Google only until
		// a password is set through an explicit flow.
	}

	createErr := srv.userRepo.Create(ctx, newUser)
	if createErr == nil {
		return newUser, nil
	}
	if !errors.Is(createErr, repository.ErrEmailTaken) {
		return nil, errors.Wrap(createErr, "failed to create user for Google login")
	}

	// Lost the race against a concurrent registration with the same email.
	existing, findErr := srv.userRepo.FindByEmail(ctx, email)
	if findErr != nil {
		return nil, errors.Wrap(findErr, "failed to fetch user after create race")
	}

	return existing, nil
}

// RefreshToken handles the process of issuing a new access token using a refresh token.
// The refresh token remains unchanged; there is no rotation or server-side session state.
func (srv *authService) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error) {
	srv.log(ctx).Info("Attempting to refresh access token")

	claims, err := srv.tokenService.ValidateToken(input.RefreshToken)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "invalid refresh token")
	}
	if claims.Type != service.TokenTypeRefresh {
		srv.log(ctx).Warn("Refresh attempted with non-refresh token", slog.String("type", claims.Type))

		return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "token is not a refresh token")
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "user no longer exists")
		}

		return nil, errors.Wrap(err, "failed to find user during token refresh")
	}

	// Generate only a new access token; the refresh token stays valid until expiry.
	newAccessToken, _, err := srv.tokenService.GenerateTokens(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate new access token")
	}

	return &usecase.RefreshTokenOutput{
		AccessToken: newAccessToken,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
