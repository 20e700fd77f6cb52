package users_test

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-users"
	"github.com/stretchr/testify/mock"
)

// MockAuthenticator implements users.Authenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthenticator) ClaimsFromToken(token string) (users.AuthClaims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(users.AuthClaims)
	return claims, args.Error(1)
}

func (m *MockAuthenticator) UserFromClaims(ctx context.Context, claims users.AuthClaims) (*users.User, error) {
	args := m.Called(ctx, claims)
	user, _ := args.Get(0).(*users.User)
	return user, args.Error(1)
}

// MockUserStore implements users.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string, criteria ...repository.SelectCriteria) (*users.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*users.User)
	return user, args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id string, criteria ...repository.SelectCriteria) (*users.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*users.User)
	return user, args.Error(1)
}

// MockIdentityProvider implements users.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, email, password string) (*users.User, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(0).(*users.User)
	return user, args.Error(1)
}

func (m *MockIdentityProvider) FindIdentityByID(ctx context.Context, id string) (*users.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*users.User)
	return user, args.Error(1)
}

// testConfig implements users.Config with static values
type testConfig struct {
	signingKey string
	issuer     string
	audience   []string
}

func (c testConfig) GetSigningKey() string {
	if c.signingKey == "" {
		return "test-signing-key"
	}
	return c.signingKey
}

func (c testConfig) GetSigningMethod() string { return "HS256" }
func (c testConfig) GetContextKey() string    { return "user" }
func (c testConfig) GetTokenLookup() string   { return "header:Authorization" }
func (c testConfig) GetAuthScheme() string    { return "Bearer" }
func (c testConfig) GetIssuer() string        { return c.issuer }
func (c testConfig) GetAudience() []string    { return c.audience }

type noopLogger struct{}

func (noopLogger) Debug(format string, args ...any) {}
func (noopLogger) Info(format string, args ...any)  {}
func (noopLogger) Warn(format string, args ...any)  {}
func (noopLogger) Error(format string, args ...any) {}
