// Package google implements the server-side Google OAuth authorization-code exchange.
package google

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pulseboard/config"
	domainerrors "pulseboard/internal/domain/errors"
	"pulseboard/internal/domain/service"

	"github.com/pkg/errors"
)

const exchangeTimeout = 10 * time.Second

// OAuthService performs the two outbound provider calls of the OAuth login
// flow: authorization-code exchange and userinfo fetch. Both surface provider
// failures as ErrOAuthUpstream so the caller answers with a 502 instead of
// letting the fault propagate unhandled.
type OAuthService struct {
	clientID     string
	clientSecret string
	redirectURI  string
	tokenURL     string
	userInfoURL  string

	client *http.Client
}

// NewOAuthService creates a new Google OAuth service from static client configuration.
func NewOAuthService(cfg *config.Config) service.OAuthService {
	return &OAuthService{
		clientID:     cfg.GoogleOAuth.ClientID,
		clientSecret: cfg.GoogleOAuth.ClientSecret,
		redirectURI:  cfg.GoogleOAuth.RedirectURI,
		tokenURL:     cfg.GoogleOAuth.TokenURL,
		userInfoURL:  cfg.GoogleOAuth.UserInfoURL,
		client:       &http.Client{Timeout: exchangeTimeout},
	}
}

// ExchangeCode exchanges an authorization code and PKCE verifier for a provider access token.
func (s *OAuthService) ExchangeCode(ctx context.Context, code, codeVerifier string) (string, error) {
	data := url.Values{}
	data.Set("code", code)
	data.Set("code_verifier", codeVerifier)
	data.Set("client_id", s.clientID)
	data.Set("client_secret", s.clientSecret)
	data.Set("redirect_uri", s.redirectURI)
	data.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return "", errors.Wrap(err, "failed to create token exchange request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", domainerrors.ErrOAuthUpstream.WrapMessage("token endpoint unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)

		return "", domainerrors.ErrOAuthUpstream.
			WithDetails(string(body)).
			WrapMessage("token exchange failed with status " + resp.Status)
	}

	var tokenResponse struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
		return "", domainerrors.ErrOAuthUpstream.WrapMessage("failed to decode token response")
	}

	if tokenResponse.AccessToken == "" {
		return "", domainerrors.ErrOAuthUpstream.WrapMessage("token response contained no access token")
	}

	return tokenResponse.AccessToken, nil
}

// FetchUserInfo retrieves the provider profile using the access token from ExchangeCode.
func (s *OAuthService) FetchUserInfo(ctx context.Context, accessToken string) (*service.OAuthUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create user info request")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, domainerrors.ErrOAuthUpstream.WrapMessage("userinfo endpoint unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)

		return nil, domainerrors.ErrOAuthUpstream.
			WithDetails(string(body)).
			WrapMessage("user info request failed with status " + resp.Status)
	}

	var googleUser struct {
		Email         string `json:"email"`
		GivenName     string `json:"given_name"`
		FamilyName    string `json:"family_name"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
		VerifiedEmail bool   `json:"verified_email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		return nil, domainerrors.ErrOAuthUpstream.WrapMessage("failed to decode user info response")
	}

	if googleUser.Email == "" {
		return nil, domainerrors.ErrOAuthUpstream.WrapMessage("user info response contained no email")
	}

	return &service.OAuthUser{
		Email:         googleUser.Email,
		GivenName:     googleUser.GivenName,
		FamilyName:    googleUser.FamilyName,
		Name:          googleUser.Name,
		Picture:       googleUser.Picture,
		EmailVerified: googleUser.VerifiedEmail,
	}, nil
}
