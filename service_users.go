package users

import (
	"context"
	"fmt"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

// CreateUserInput carries the registration payload into the service.
type CreateUserInput struct {
	Email       string         `json:"email"`
	Password    string         `json:"password"`
	Permissions PermissionList `json:"permissions"`
}

// UserService implements the account lifecycle: registration, lookups,
// profile mutation and soft activation. Business rule violations come back
// as rich errors with their HTTP code attached; unexpected storage faults
// are routed through TranslateDBError.
type UserService struct {
	repo   RepositoryManager
	tokens TokenService
	logger Logger
}

// NewUserService creates a UserService over the given repositories.
func NewUserService(repo RepositoryManager, tokens TokenService) *UserService {
	return &UserService{
		repo:   repo,
		tokens: tokens,
		logger: defLogger{},
	}
}

func (s *UserService) WithLogger(l Logger) *UserService {
	if l != nil {
		s.logger = l
	}
	return s
}

// Create registers an account: the email is normalized, the password is
// hashed, permissions default to the baseline grant when empty, and the
// caller gets the stored record plus a login token so registration doubles
// as a first login.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*User, string, error) {
	hash, err := HashPassword(input.Password)
	if err != nil {
		var richErr *errors.Error
		if errors.As(err, &richErr) {
			return nil, "", richErr
		}
		return nil, "", errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}

	user := &User{
		Email:        NormalizeEmail(input.Email),
		PasswordHash: hash,
		Permissions:  input.Permissions,
	}

	record, err := s.repo.Users().Create(ctx, user)
	if err != nil {
		return nil, "", TranslateDBError(s.logger, err, "UserService.Create")
	}

	token, err := s.tokens.Generate(record.ID.String())
	if err != nil {
		return nil, "", errors.Wrap(err, errors.CategoryInternal, "failed to issue token for new user")
	}

	return record, token, nil
}

// List returns every account ordered by creation time.
func (s *UserService) List(ctx context.Context) ([]*User, error) {
	records, err := s.repo.Users().ListAll(ctx)
	if err != nil {
		return nil, TranslateDBError(s.logger, err, "UserService.List")
	}
	return records, nil
}

// Get returns the account with the given id or a not-found error naming it.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.findByID(ctx, id)
}

// UpdateEmail changes the account's email after normalizing it. The
// account must be active, the new address must differ from the current one
// and must not be held by another account. A concurrent insert racing past
// the pre-check still surfaces through the unique constraint as a
// conflict.
func (s *UserService) UpdateEmail(ctx context.Context, id uuid.UUID, email string) error {
	normalized := NormalizeEmail(email)

	user, err := s.findByID(ctx, id)
	if err != nil {
		return err
	}

	if !user.IsActive {
		return ErrUserNotActive
	}

	if user.Email == normalized {
		return ErrEmailUnchanged
	}

	existing, err := s.repo.Users().GetByEmail(ctx, normalized)
	if err != nil && !errors.IsNotFound(err) && !repository.IsRecordNotFound(err) {
		return TranslateDBError(s.logger, err, "UserService.UpdateEmail")
	}
	if existing != nil && existing.ID != user.ID {
		return ErrEmailTaken
	}

	record := &User{ID: user.ID, Email: normalized}
	if _, err := s.repo.Users().Update(ctx, record, repository.UpdateByID(user.ID.String())); err != nil {
		return TranslateDBError(s.logger, err, "UserService.UpdateEmail")
	}

	return nil
}

// UpdatePassword rehashes and stores a new password for an active account.
func (s *UserService) UpdatePassword(ctx context.Context, id uuid.UUID, password string) error {
	user, err := s.findByID(ctx, id)
	if err != nil {
		return err
	}

	if !user.IsActive {
		return ErrUserNotActive
	}

	hash, err := HashPassword(password)
	if err != nil {
		var richErr *errors.Error
		if errors.As(err, &richErr) {
			return richErr
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}

	record := &User{ID: user.ID, PasswordHash: hash}
	if _, err := s.repo.Users().Update(ctx, record, repository.UpdateByID(user.ID.String())); err != nil {
		return TranslateDBError(s.logger, err, "UserService.UpdatePassword")
	}

	return nil
}

// UpdatePermissions replaces the grant set wholesale; it is not a merge.
// An empty set is stored as given.
func (s *UserService) UpdatePermissions(ctx context.Context, id uuid.UUID, perms PermissionList) (*User, error) {
	user, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrUserNotActive
	}

	if perms == nil {
		perms = PermissionList{}
	}

	if err := s.repo.Users().SetPermissions(ctx, user.ID, perms); err != nil {
		return nil, TranslateDBError(s.logger, err, "UserService.UpdatePermissions")
	}

	user.Permissions = perms
	return user, nil
}

// Deactivate soft-disables the account. Deactivating twice is an error.
func (s *UserService) Deactivate(ctx context.Context, id uuid.UUID) (*User, error) {
	user, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrUserNotActive
	}

	if err := s.repo.Users().SetActive(ctx, user.ID, false); err != nil {
		return nil, TranslateDBError(s.logger, err, "UserService.Deactivate")
	}

	user.IsActive = false
	return user, nil
}

// Reactivate re-enables a deactivated account. Reactivating an active
// account is an error.
func (s *UserService) Reactivate(ctx context.Context, id uuid.UUID) (*User, error) {
	user, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.IsActive {
		return nil, ErrUserAlreadyActive
	}

	if err := s.repo.Users().SetActive(ctx, user.ID, true); err != nil {
		return nil, TranslateDBError(s.logger, err, "UserService.Reactivate")
	}

	user.IsActive = true
	return user, nil
}

// Remove hard-deletes a deactivated account. Active accounts must be
// deactivated first.
func (s *UserService) Remove(ctx context.Context, id uuid.UUID) error {
	user, err := s.findByID(ctx, id)
	if err != nil {
		return err
	}

	if user.IsActive {
		return ErrUserActiveDelete
	}

	if err := s.repo.Users().DeleteByID(ctx, user.ID); err != nil {
		return TranslateDBError(s.logger, err, "UserService.Remove")
	}

	return nil
}

// findByID is the shared lookup primitive every mutation goes through.
func (s *UserService) findByID(ctx context.Context, id uuid.UUID) (*User, error) {
	user, err := s.repo.Users().GetByID(ctx, id.String())
	if err != nil {
		if repository.IsRecordNotFound(err) || errors.IsNotFound(err) {
			return nil, userNotFound(id)
		}
		return nil, TranslateDBError(s.logger, err, "UserService.findByID")
	}

	return user, nil
}

func userNotFound(id uuid.UUID) error {
	clone := ErrUserNotFound.Clone()
	clone.Message = fmt.Sprintf("User with id %s not found", id)
	return clone.WithMetadata(map[string]any{
		"id": id.String(),
	})
}
