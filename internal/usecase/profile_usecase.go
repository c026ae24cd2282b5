// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"pulseboard/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfileUsecase defines the interface for profile-related business operations.
type ProfileUsecase interface {
	// GetProfile retrieves the user identified by an authenticated access token.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
