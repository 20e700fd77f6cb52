package users

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-users/middleware/jwtware"
)

// RouteAuthenticator wires the JWT middleware for protected routes: it
// extracts and validates the bearer token, loads the account behind the
// claim and stores it in both the router locals and the standard context.
type RouteAuthenticator struct {
	auth               Authenticator
	cfg                Config
	fallbackValidators []TokenValidator
	Logger             Logger
	Debug              bool
	AuthErrorHandler   router.ErrorHandler
	ErrorHandler       router.ErrorHandler
}

func NewHTTPAuthenticator(auther Authenticator, cfg Config) (*RouteAuthenticator, error) {
	a := &RouteAuthenticator{
		cfg:    cfg,
		auth:   auther,
		Logger: defLogger{},
	}

	a.ErrorHandler = a.defaultErrHandler
	a.AuthErrorHandler = a.MakeRouteAuthErrorHandler(false)

	return a, nil
}

func (a *RouteAuthenticator) WithLogger(logger Logger) *RouteAuthenticator {
	if logger != nil {
		a.Logger = logger
	}
	return a
}

// WithFallbackValidators accepts tokens from additional issuers, e.g. a
// JWKS backed validator for externally minted tokens. The authenticator's
// own validator always runs first; fallbacks only see tokens it reports
// as malformed.
func (a *RouteAuthenticator) WithFallbackValidators(validators ...TokenValidator) *RouteAuthenticator {
	a.fallbackValidators = append(a.fallbackValidators, validators...)
	return a
}

// Protected returns the middleware stack for routes that require a valid
// token and an active account.
func (a *RouteAuthenticator) Protected() router.MiddlewareFunc {
	return a.ProtectedRoute(a.cfg, a.AuthErrorHandler)
}

func (a *RouteAuthenticator) ProtectedRoute(cfg Config, errorHandler router.ErrorHandler) router.MiddlewareFunc {
	validator := TokenValidator(TokenValidatorFunc(a.auth.ClaimsFromToken))
	if len(a.fallbackValidators) > 0 {
		chain := append([]TokenValidator{validator}, a.fallbackValidators...)
		validator = NewMultiTokenValidator(chain...)
	}

	return jwtware.New(jwtware.Config{
		ErrorHandler: errorHandler,
		SigningKey: jwtware.SigningKey{
			Key:    []byte(cfg.GetSigningKey()),
			JWTAlg: cfg.GetSigningMethod(),
		},
		AuthScheme:  cfg.GetAuthScheme(),
		ContextKey:  cfg.GetContextKey(),
		TokenLookup: cfg.GetTokenLookup(),
		TokenValidator: jwtValidatorAdapter{
			validator: validator,
		},
		ValidationListeners: []jwtware.ValidationListener{
			a.loadUserListener,
		},
		ContextEnricher: func(c context.Context, claims jwtware.AuthClaims) context.Context {
			if ac, ok := claims.(AuthClaims); ok {
				return WithClaimsContext(c, ac)
			}
			return c
		},
	})
}

// loadUserListener resolves the account behind validated claims so the
// guard and the handlers never trust token contents for authorization.
func (a *RouteAuthenticator) loadUserListener(ctx router.Context, claims jwtware.AuthClaims) error {
	ac, ok := claims.(AuthClaims)
	if !ok {
		return ErrUnableToDecodeSession
	}

	user, err := a.auth.UserFromClaims(ctx.Context(), ac)
	if err != nil {
		return err
	}

	ctx.Locals(DefaultUserContextKey, user)
	ctx.SetContext(WithContext(ctx.Context(), user))

	return nil
}

// MakeRouteAuthErrorHandler maps token failures to a 401 JSON response.
// With optional set, failures log and fall through to the handler chain.
func (a *RouteAuthenticator) MakeRouteAuthErrorHandler(optional bool) router.ErrorHandler {
	return func(ctx router.Context, err error) error {
		var richErr *errors.Error

		if IsTokenExpiredError(err) {
			richErr = ErrTokenExpired
		} else if IsMalformedError(err) {
			richErr = ErrTokenMalformed
		} else if !errors.As(err, &richErr) {
			richErr = errors.Wrap(err, errors.CategoryAuth, "Invalid authentication token").
				WithCode(errors.CodeUnauthorized)
		}

		if optional {
			a.Logger.Info("Optional auth failed, proceeding", "error", richErr.Message)
			return ctx.Next()
		}

		return RespondError(ctx, richErr)
	}
}

func (a *RouteAuthenticator) defaultErrHandler(ctx router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	a.Logger.Info(
		"Middleware error handler",
		"error", richErr.Message,
		"category", richErr.Category,
		"details", print.MaybePrettyJSON(richErr.Metadata),
	)

	return RespondError(ctx, richErr)
}

// RespondError writes a rich error as a JSON response with the matching
// HTTP status code.
func RespondError(ctx router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	status := richErr.Code
	if status == 0 {
		status = statusFromCategory(richErr.Category)
	}

	body := map[string]any{
		"message":    richErr.Message,
		"statusCode": status,
	}
	if richErr.TextCode != "" {
		body["error"] = richErr.TextCode
	}

	return ctx.JSON(status, body)
}

func statusFromCategory(category errors.Category) int {
	switch category {
	case errors.CategoryAuth:
		return router.StatusUnauthorized
	case errors.CategoryAuthz:
		return router.StatusForbidden
	case errors.CategoryValidation, errors.CategoryBadInput:
		return router.StatusBadRequest
	case errors.CategoryNotFound:
		return router.StatusNotFound
	case errors.CategoryConflict:
		return router.StatusConflict
	default:
		return router.StatusInternalServerError
	}
}

// jwtValidatorAdapter bridges the package TokenValidator to the middleware
// interface without an import cycle.
type jwtValidatorAdapter struct {
	validator TokenValidator
}

func (a jwtValidatorAdapter) Validate(token string) (jwtware.AuthClaims, error) {
	claims, err := a.validator.Validate(token)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
