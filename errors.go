package users

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// ErrCredentialsNotValid is returned for unknown emails and password
// mismatches alike; the two cases are indistinguishable on purpose so
// callers cannot probe which accounts exist.
var ErrCredentialsNotValid = errors.New("Credentials are not valid", errors.CategoryAuth).
	WithTextCode("INVALID_CREDENTIALS").
	WithCode(errors.CodeUnauthorized)

// ErrUserInactive blocks token holders whose account was deactivated
// after the token was issued.
var ErrUserInactive = errors.New("User is inactive, talk with an admin", errors.CategoryAuth).
	WithTextCode("USER_INACTIVE").
	WithCode(errors.CodeUnauthorized)

// ErrUserNotActive guards mutations against deactivated accounts.
var ErrUserNotActive = errors.New("User is not active", errors.CategoryValidation).
	WithTextCode("USER_NOT_ACTIVE").
	WithCode(errors.CodeBadRequest)

// ErrUserAlreadyActive makes reactivation non idempotent by report.
var ErrUserAlreadyActive = errors.New("User is already active", errors.CategoryValidation).
	WithTextCode("USER_ALREADY_ACTIVE").
	WithCode(errors.CodeBadRequest)

// ErrEmailUnchanged rejects an email update to the current address.
var ErrEmailUnchanged = errors.New("The email is already the same.", errors.CategoryValidation).
	WithTextCode("EMAIL_UNCHANGED").
	WithCode(errors.CodeBadRequest)

// ErrEmailTaken rejects an email update to an address held by another account.
var ErrEmailTaken = errors.New("Email already in use by another user.", errors.CategoryValidation).
	WithTextCode("EMAIL_TAKEN").
	WithCode(errors.CodeBadRequest)

// ErrUserActiveDelete rejects removal of accounts that were not deactivated first.
var ErrUserActiveDelete = errors.New("Cannot delete an active user. Please deactivate account first.", errors.CategoryValidation).
	WithTextCode("USER_ACTIVE_DELETE").
	WithCode(errors.CodeBadRequest)

// ErrUserNotFound is the base lookup failure; userNotFound clones it with
// the offending identifier in the message.
var ErrUserNotFound = errors.New("User not found", errors.CategoryNotFound).
	WithTextCode("USER_NOT_FOUND").
	WithCode(errors.CodeNotFound)

// ErrMissingRequestUser reports a guarded route running without an
// authenticated user in the request context. This is a wiring problem,
// not an authorization denial, hence the 400.
var ErrMissingRequestUser = errors.New("User not found in request", errors.CategoryBadInput).
	WithTextCode("MISSING_REQUEST_USER").
	WithCode(errors.CodeBadRequest)

// ErrForbiddenPermissions is the base denial; permissionDenied clones it
// with the email and the acceptable permission list.
var ErrForbiddenPermissions = errors.New("User is missing a required permission", errors.CategoryAuthz).
	WithTextCode("FORBIDDEN_PERMISSIONS").
	WithCode(errors.CodeForbidden)

// ErrTokenExpired is returned when token validation hits an expired token.
var ErrTokenExpired = errors.New("Authentication token expired", errors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED").
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned for tokens we cannot parse or verify.
var ErrTokenMalformed = errors.New("Invalid authentication token", errors.CategoryAuth).
	WithTextCode("TOKEN_MALFORMED").
	WithCode(errors.CodeUnauthorized)

// ErrUnableToDecodeSession is returned when a parsed token carries claims
// we cannot map to AuthClaims.
var ErrUnableToDecodeSession = errors.New("Unable to decode token claims", errors.CategoryAuth).
	WithTextCode("TOKEN_UNDECODABLE").
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString rejects empty passwords before hashing.
var ErrNoEmptyString = errors.New("Password must not be empty", errors.CategoryValidation).
	WithTextCode("EMPTY_PASSWORD").
	WithCode(errors.CodeBadRequest)

// ErrMismatchedHashAndPassword is the internal bcrypt mismatch signal. The
// auth flow maps it to ErrCredentialsNotValid before it leaves the package.
var ErrMismatchedHashAndPassword = errors.New("Password hash mismatch", errors.CategoryAuth).
	WithTextCode("HASH_MISMATCH").
	WithCode(errors.CodeUnauthorized)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired") ||
		strings.Contains(err.Error(), "token expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenMalformed) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
