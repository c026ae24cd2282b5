package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"pulseboard/internal/domain/entity"
	domainerrors "pulseboard/internal/domain/errors"
	"pulseboard/internal/domain/repository"
	"pulseboard/internal/mocks"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_GetProfile_Success(t *testing.T) {
	userRepo := &mocks.MockUserRepository{}
	svc := NewProfileService(ProfileServiceParams{
		UserRepo: userRepo,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "jane@example.com"}

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	got, err := svc.GetProfile(ctx, user.ID)

	require.NoError(t, err)
	assert.Equal(t, user, got)
	userRepo.AssertExpectations(t)
}

func TestProfileService_GetProfile_NotFound(t *testing.T) {
	userRepo := &mocks.MockUserRepository{}
	svc := NewProfileService(ProfileServiceParams{
		UserRepo: userRepo,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	ctx := context.Background()
	userID := uuid.New()

	userRepo.On("FindByID", ctx, userID).Return(nil, repository.ErrUserNotFound)

	_, err := svc.GetProfile(ctx, userID)

	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}
