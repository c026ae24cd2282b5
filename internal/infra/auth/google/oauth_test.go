package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"pulseboard/config"
	domainerrors "pulseboard/internal/domain/errors"
	"pulseboard/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOAuthService(tokenURL, userInfoURL string) service.OAuthService {
	return NewOAuthService(&config.Config{
		GoogleOAuth: &config.GoogleOAuthConfig{
			ClientID:     "test-client-id",
			ClientSecret: "test-client-secret",
			RedirectURI:  "https://app.example.com/callback",
			TokenURL:     tokenURL,
			UserInfoURL:  userInfoURL,
		},
	})
}

func assertOAuthUpstream(t *testing.T, err error) {
	t.Helper()

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "OAUTH_UPSTREAM_ERROR", appErr.ErrorCode())
	assert.Equal(t, http.StatusBadGateway, appErr.HTTPCode())
}

func TestOAuthService_ExchangeCode_Success(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "auth-code", r.PostFormValue("code"))
		assert.Equal(t, "verifier", r.PostFormValue("code_verifier"))
		assert.Equal(t, "test-client-id", r.PostFormValue("client_id"))
		assert.Equal(t, "test-client-secret", r.PostFormValue("client_secret"))
		assert.Equal(t, "https://app.example.com/callback", r.PostFormValue("redirect_uri"))
		assert.Equal(t, "authorization_code", r.PostFormValue("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"provider-token","token_type":"Bearer","expires_in":3600}`))
	}))
	defer provider.Close()

	svc := newTestOAuthService(provider.URL, provider.URL)

	token, err := svc.ExchangeCode(context.Background(), "auth-code", "verifier")

	require.NoError(t, err)
	assert.Equal(t, "provider-token", token)
}

func TestOAuthService_ExchangeCode_ProviderRejects(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer provider.Close()

	svc := newTestOAuthService(provider.URL, provider.URL)

	_, err := svc.ExchangeCode(context.Background(), "expired-code", "verifier")

	assertOAuthUpstream(t, err)
}

func TestOAuthService_ExchangeCode_Unreachable(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	provider.Close()

	svc := newTestOAuthService(provider.URL, provider.URL)

	_, err := svc.ExchangeCode(context.Background(), "auth-code", "verifier")

	assertOAuthUpstream(t, err)
}

func TestOAuthService_ExchangeCode_EmptyToken(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer provider.Close()

	svc := newTestOAuthService(provider.URL, provider.URL)

	_, err := svc.ExchangeCode(context.Background(), "auth-code", "verifier")

	assertOAuthUpstream(t, err)
}

func TestOAuthService_FetchUserInfo_Success(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer provider-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"email": "jane@example.com",
			"given_name": "Jane",
			"family_name": "Doe",
			"name": "Jane Doe",
			"picture": "https://example.com/avatar.png",
			"verified_email": true
		}`))
	}))
	defer provider.Close()

	svc := newTestOAuthService(provider.URL, provider.URL)

	user, err := svc.FetchUserInfo(context.Background(), "provider-token")

	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, "Jane", user.GivenName)
	assert.Equal(t, "Doe", user.FamilyName)
	assert.True(t, user.EmailVerified)
}

func TestOAuthService_FetchUserInfo_MissingEmail(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"given_name":"Jane"}`))
	}))
	defer provider.Close()

	svc := newTestOAuthService(provider.URL, provider.URL)

	_, err := svc.FetchUserInfo(context.Background(), "provider-token")

	assertOAuthUpstream(t, err)
}

func TestOAuthService_FetchUserInfo_ProviderError(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer provider.Close()

	svc := newTestOAuthService(provider.URL, provider.URL)

	_, err := svc.FetchUserInfo(context.Background(), "bad-token")

	assertOAuthUpstream(t, err)
}
