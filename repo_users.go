package users

import (
	"context"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users is the account repository.
type Users interface {
	repository.Repository[*User]

	GetByEmail(ctx context.Context, email string, criteria ...repository.SelectCriteria) (*User, error)
	GetByEmailTx(ctx context.Context, tx bun.IDB, email string, criteria ...repository.SelectCriteria) (*User, error)

	Create(ctx context.Context, record *User, criteria ...repository.InsertCriteria) (*User, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *User, criteria ...repository.InsertCriteria) (*User, error)

	ListAll(ctx context.Context) ([]*User, error)
	ListAllTx(ctx context.Context, tx bun.IDB) ([]*User, error)

	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	SetActiveTx(ctx context.Context, tx bun.IDB, id uuid.UUID, active bool) error

	SetPermissions(ctx context.Context, id uuid.UUID, perms PermissionList) error
	SetPermissionsTx(ctx context.Context, tx bun.IDB, id uuid.UUID, perms PermissionList) error

	DeleteByID(ctx context.Context, id uuid.UUID) error
	DeleteByIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error
}

type usersRepo struct {
	repository.Repository[*User]
	db *bun.DB
}

var (
	_ Users                        = (*usersRepo)(nil)
	_ repository.Repository[*User] = (*usersRepo)(nil)
	_ UserStore                    = (Users)(nil)
)

func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &usersRepo{
		Repository: repo,
		db:         db,
	}
}

func (a *usersRepo) GetByEmail(ctx context.Context, email string, criteria ...repository.SelectCriteria) (*User, error) {
	return a.GetByEmailTx(ctx, a.db, email, criteria...)
}

// GetByEmailTx matches the email column exactly as given; callers decide
// whether to normalize first.
func (a *usersRepo) GetByEmailTx(ctx context.Context, tx bun.IDB, email string, criteria ...repository.SelectCriteria) (*User, error) {
	record := &User{}
	q := tx.NewSelect().Model(record)

	for _, c := range criteria {
		q.Apply(c)
	}

	err := q.
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"email": email,
				})
		}
		return nil, err
	}

	return record, nil
}

func (a *usersRepo) Create(ctx context.Context, record *User, criteria ...repository.InsertCriteria) (*User, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *usersRepo) CreateTx(ctx context.Context, tx bun.IDB, record *User, criteria ...repository.InsertCriteria) (*User, error) {
	prepareUserDefaults(record)
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}

// ListAll returns every account ordered by creation time. The embedded
// repository keeps its criteria-driven List for callers that page.
func (a *usersRepo) ListAll(ctx context.Context) ([]*User, error) {
	return a.ListAllTx(ctx, a.db)
}

func (a *usersRepo) ListAllTx(ctx context.Context, tx bun.IDB) ([]*User, error) {
	records := []*User{}
	err := tx.NewSelect().
		Model(&records).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *usersRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return a.SetActiveTx(ctx, a.db, id, active)
}

// SetActiveTx uses a raw update: the ORM update path skips zero values, so
// flipping is_active to false would silently not persist.
func (a *usersRepo) SetActiveTx(ctx context.Context, tx bun.IDB, id uuid.UUID, active bool) error {
	res, err := tx.NewUpdate().
		Model((*User)(nil)).
		Set("is_active = ?", active).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	return ensureAffected(res, id)
}

func (a *usersRepo) SetPermissions(ctx context.Context, id uuid.UUID, perms PermissionList) error {
	return a.SetPermissionsTx(ctx, a.db, id, perms)
}

// SetPermissionsTx replaces the grant set wholesale, raw update for the
// same zero-value reason as SetActiveTx (an empty list must still clear
// the column).
func (a *usersRepo) SetPermissionsTx(ctx context.Context, tx bun.IDB, id uuid.UUID, perms PermissionList) error {
	if perms == nil {
		perms = PermissionList{}
	}

	res, err := tx.NewUpdate().
		Model((*User)(nil)).
		Set("permissions = ?", perms).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	return ensureAffected(res, id)
}

func (a *usersRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return a.DeleteByIDTx(ctx, a.db, id)
}

func (a *usersRepo) DeleteByIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error {
	res, err := tx.NewDelete().
		Model((*User)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	return ensureAffected(res, id)
}

func ensureAffected(res interface{ RowsAffected() (int64, error) }, id uuid.UUID) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id": id.String(),
			})
	}

	return nil
}
