// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the single identity record in the system. Email is the
// identity-linking key across local and OAuth-originated accounts:
// a Google sign-in with an email that already exists resolves to the
// same User rather than creating a second account.
type User struct {
	ID           uuid.UUID // The unique identifier for the user, generated by the database.
	Email        string    // The unique login identifier, stored lowercase.
	FirstName    string    // The user's given name. May be empty for OAuth-created accounts.
	LastName     string    // The user's family name. May be empty for OAuth-created accounts.
	PasswordHash string    // The bcrypt hash of the local password. Empty when the account was created via OAuth only.
	CreatedAt    time.Time // Timestamp of account creation; exposed as date_joined and never mutated.
	UpdatedAt    time.Time // Timestamp of the last modification to this user's data.
}

// HasLocalPassword reports whether the account can authenticate with
// email and password. OAuth-only accounts have no local credential.
func (u *User) HasLocalPassword() bool {
	return u.PasswordHash != ""
}
