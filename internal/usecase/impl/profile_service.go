package impl

import (
	"context"
	"log/slog"

	deliverycontext "pulseboard/internal/delivery/context"
	"pulseboard/internal/domain/entity"
	domainerrors "pulseboard/internal/domain/errors"
	"pulseboard/internal/domain/repository"
	"pulseboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// ProfileServiceParams holds dependencies for profileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Logger   *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		userRepo: params.UserRepo,
		logger:   params.Logger,
	}
}

// GetProfile retrieves the user identified by an authenticated access token.
// The user ID comes from validated token claims, so a miss means the account
// was deleted after the token was issued.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logger.Warn("Profile requested for missing user", slog.Any("userID", userID))

			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "profile lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find user for profile")
	}

	return user, nil
}
