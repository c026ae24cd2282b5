// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"pulseboard/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleLoginInput carries the authorization code and PKCE verifier received
// from the frontend after the provider redirect.
type GoogleLoginInput struct {
	Code         string `json:"code" validate:"required"`
	CodeVerifier string `json:"code_verifier" validate:"required"`
}

// RefreshTokenInput defines the data required to mint a new access token.
type RefreshTokenInput struct {
	RefreshToken string `json:"refresh" validate:"required"`
}

// --- Output DTOs ---

// AuthOutput returns the resolved user together with a fresh credential pair.
// Registration, local login and OAuth login all respond with this shape.
type AuthOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// RefreshTokenOutput returns a new access token; the refresh token is unchanged.
type RefreshTokenOutput struct {
	AccessToken string
}

// AuthUsecase defines the interface for authentication and session issuance.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Register creates a new local account and issues a credential pair.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login verifies local credentials and issues a credential pair.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// GoogleLogin exchanges an authorization code with the provider, resolves
	// the local user by email (creating one on first sight) and issues a
	// credential pair.
	GoogleLogin(ctx context.Context, input *GoogleLoginInput) (*AuthOutput, error)

	// RefreshToken validates a refresh token and issues a new access token.
	RefreshToken(ctx context.Context, input *RefreshTokenInput) (*RefreshTokenOutput, error)
}
