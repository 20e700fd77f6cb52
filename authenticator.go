package users

import (
	"context"

	"github.com/goliatone/go-errors"
)

// Auther implements Authenticator over an IdentityProvider and a TokenService.
type Auther struct {
	provider       IdentityProvider
	signingKey     []byte
	issuer         string
	audience       []string
	logger         Logger
	tokenService   TokenService
	tokenValidator TokenValidator
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(provider IdentityProvider, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetIssuer(),
		opts.GetAudience(),
		defLogger{},
	)

	return &Auther{
		provider:     provider,
		signingKey:   []byte(opts.GetSigningKey()),
		audience:     opts.GetAudience(),
		issuer:       opts.GetIssuer(),
		logger:       defLogger{},
		tokenService: tokenService,
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	s.tokenService = NewTokenService(
		s.signingKey,
		s.issuer,
		s.audience,
		logger,
	)
	return s
}

// WithTokenValidator sets a custom token validator for externally issued tokens.
func (s *Auther) WithTokenValidator(validator TokenValidator) *Auther {
	s.tokenValidator = validator
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login verifies the credentials and issues a token carrying the user id.
// Any credential failure surfaces as ErrCredentialsNotValid.
func (s *Auther) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.provider.VerifyIdentity(ctx, email, password)
	if err != nil {
		s.logger.Error("Login verify identity error", "error", err)
		return "", err
	}

	if user == nil {
		s.logger.Error("Login verified identity is nil")
		return "", ErrCredentialsNotValid
	}

	token, err := s.tokenService.Generate(user.ID.String())
	if err != nil {
		s.logger.Error("Login token generation failed", "error", err)
		return "", err
	}

	return token, nil
}

// ClaimsFromToken validates a raw token and returns its claims.
func (s Auther) ClaimsFromToken(raw string) (AuthClaims, error) {
	validator := s.tokenValidator
	if validator == nil {
		validator = s.tokenService
	}

	claims, err := validator.Validate(raw)
	if err != nil {
		s.logger.Error("ClaimsFromToken validation failed", "error", err)
		return nil, err
	}

	return claims, nil
}

// UserFromClaims loads the account behind validated claims. Deactivated
// accounts are rejected even when the token itself is still valid.
func (s *Auther) UserFromClaims(ctx context.Context, claims AuthClaims) (*User, error) {
	user, err := s.provider.FindIdentityByID(ctx, claims.UserID())
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrTokenMalformed
		}
		s.logger.Error("UserFromClaims find identity error", "error", err)
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	return user, nil
}

var _ Authenticator = (*Auther)(nil)
