// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"pulseboard/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific persistence errors. The application layer handles these
// outcomes without depending on database-specific error types.
var (
	// ErrUserNotFound is returned when no user matches the lookup key.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when a create collides with the unique email index.
	// The get-or-create step of the OAuth flow relies on this signal to fall back
	// to fetching the existing user instead of failing.
	ErrEmailTaken = errors.New("email already registered")
)

// UserRepository defines the standard operations for user persistence.
// Uniqueness of email is enforced at the storage boundary by a unique index;
// callers rely on ErrEmailTaken rather than doing their own locking.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user entity and fills in its generated ID and timestamps.
	// Returns ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, user *entity.User) error
}
