package users

import (
	"context"

	"github.com/goliatone/go-errors"
)

// UserProvider resolves accounts for the authentication flow.
type UserProvider struct {
	store  UserStore
	logger Logger
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserStore) *UserProvider {
	return &UserProvider{
		store:  store,
		logger: defLogger{},
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	if l != nil {
		u.logger = l
	}
	return u
}

// VerifyIdentity will find the user by email and compare the password.
// The lookup uses the email exactly as given; normalization happens at
// registration and on email updates only. Unknown emails and password
// mismatches both come back as ErrCredentialsNotValid so the response
// never reveals whether the account exists.
func (u UserProvider) VerifyIdentity(ctx context.Context, email, password string) (*User, error) {
	user, err := u.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrCredentialsNotValid
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrMismatchedHashAndPassword) {
			return nil, ErrCredentialsNotValid
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to compare password hash")
	}

	return user, nil
}

// FindIdentityByID resolves the account behind a token claim.
func (u UserProvider) FindIdentityByID(ctx context.Context, id string) (*User, error) {
	user, err := u.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

var _ IdentityProvider = (*UserProvider)(nil)
