package mocks

import (
	"context"

	"pulseboard/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockOAuthService is a mock implementation of service.OAuthService.
type MockOAuthService struct {
	mock.Mock
}

func (m *MockOAuthService) ExchangeCode(ctx context.Context, code, codeVerifier string) (string, error) {
	args := m.Called(ctx, code, codeVerifier)

	return args.String(0), args.Error(1)
}

func (m *MockOAuthService) FetchUserInfo(ctx context.Context, accessToken string) (*service.OAuthUser, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.OAuthUser), args.Error(1)
}
