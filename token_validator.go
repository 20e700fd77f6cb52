package users

// TokenValidator validates tokens and extracts claims without tying callers
// to a specific signing implementation.
type TokenValidator interface {
	Validate(tokenString string) (AuthClaims, error)
}

// TokenValidatorFunc adapts a function into a TokenValidator.
type TokenValidatorFunc func(tokenString string) (AuthClaims, error)

// Validate satisfies the TokenValidator interface.
func (f TokenValidatorFunc) Validate(tokenString string) (AuthClaims, error) {
	if f == nil {
		return nil, ErrUnableToDecodeSession
	}
	return f(tokenString)
}

// MultiTokenValidator accepts tokens from more than one issuer, e.g. the
// local token service plus a JWKS backed validator for externally issued
// tokens. Candidates run in declaration order. A malformed verdict moves
// on to the next candidate; any other failure, expiry included, is final
// because a later issuer has no business rescuing a token the signing
// issuer already recognized.
type MultiTokenValidator struct {
	chain []TokenValidator
}

// NewMultiTokenValidator filters nil validators and returns a composite validator.
func NewMultiTokenValidator(validators ...TokenValidator) *MultiTokenValidator {
	m := &MultiTokenValidator{}
	for _, v := range validators {
		if v != nil {
			m.chain = append(m.chain, v)
		}
	}
	return m
}

// Validate satisfies the TokenValidator interface.
func (m *MultiTokenValidator) Validate(tokenString string) (AuthClaims, error) {
	err := error(ErrTokenMalformed)
	for _, v := range m.chain {
		var claims AuthClaims
		if claims, err = v.Validate(tokenString); err == nil {
			return claims, nil
		}
		if !IsMalformedError(err) {
			return nil, err
		}
	}
	return nil, err
}
