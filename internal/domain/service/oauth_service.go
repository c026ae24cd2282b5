package service

import "context"

// OAuthUser represents the profile reported by the OAuth provider's userinfo endpoint.
type OAuthUser struct {
	Email         string // User's email address; the identity-linking key.
	GivenName     string // First name; empty when the provider omits it.
	FamilyName    string // Last name; empty when the provider omits it.
	Name          string // Full display name.
	Picture       string // URL to the user's profile picture.
	EmailVerified bool   // Whether the provider has verified the email.
}

// OAuthService defines the server-side authorization-code exchange with an
// OAuth provider. The two calls are strictly ordered: ExchangeCode first,
// then FetchUserInfo with the token it returned.
type OAuthService interface {
	// ExchangeCode exchanges an authorization code and PKCE verifier for a
	// provider access token.
	ExchangeCode(ctx context.Context, code, codeVerifier string) (string, error)

	// FetchUserInfo retrieves the provider profile using the access token
	// obtained from ExchangeCode.
	FetchUserInfo(ctx context.Context, accessToken string) (*OAuthUser, error)
}
