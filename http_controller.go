package users

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// RouteRegistrar captures the router methods used by the controllers.
type RouteRegistrar interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Patch(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Delete(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
}

const passwordComplexityMessage = "Password must be at least 6 characters long and contain at least one uppercase letter, one lowercase letter, one number, and one special character"

// passwordComplexity enforces the upper/lower/digit/special rule over an
// endpoint-specific allowed character set. Every class is mandatory, the
// special character included. The allowed specials differ between login
// and registration on purpose; each endpoint's contract is preserved as
// specified.
func passwordComplexity(allowedSpecials string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if len(s) < 6 {
			return fmt.Errorf(passwordComplexityMessage)
		}

		var hasLower, hasUpper, hasDigit, hasSpecial bool
		for _, r := range s {
			switch {
			case r >= 'a' && r <= 'z':
				hasLower = true
			case r >= 'A' && r <= 'Z':
				hasUpper = true
			case r >= '0' && r <= '9':
				hasDigit = true
			case strings.ContainsRune(allowedSpecials, r):
				hasSpecial = true
			default:
				return fmt.Errorf(passwordComplexityMessage)
			}
		}

		if !hasLower || !hasUpper || !hasDigit || !hasSpecial {
			return fmt.Errorf(passwordComplexityMessage)
		}

		return nil
	}
}

var (
	loginPasswordRule  = validation.By(passwordComplexity("@$!%*?&"))
	createPasswordRule = validation.By(passwordComplexity("@$!%*?&#"))
)

func validPermissions(value any) error {
	perms, _ := value.(PermissionList)
	for _, p := range perms {
		if !p.IsValid() {
			return fmt.Errorf("unknown permission: %q", p)
		}
	}
	return nil
}

// LoginRequest is the login payload. The email is only structurally
// validated here; the lookup uses it verbatim.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Email, validation.Required),
			validation.Field(&r.Password, validation.Required, validation.Length(6, 50), loginPasswordRule),
		)
	}, "Invalid login request payload")
}

// CreateUserRequest is the registration payload.
type CreateUserRequest struct {
	Email       string         `json:"email"`
	Password    string         `json:"password"`
	Permissions PermissionList `json:"permissions"`
}

func (r CreateUserRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Email, validation.Required, is.Email),
			validation.Field(&r.Password, validation.Required, createPasswordRule),
			validation.Field(&r.Permissions, validation.By(validPermissions)),
		)
	}, "Invalid user payload")
}

// UpdateMailRequest carries an email change.
type UpdateMailRequest struct {
	Email string `json:"mail"`
}

func (r UpdateMailRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Email, validation.Required, is.Email),
		)
	}, "Invalid email payload")
}

// UpdatePasswordRequest carries a password change.
type UpdatePasswordRequest struct {
	Password string `json:"password"`
}

func (r UpdatePasswordRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Password, validation.Required, createPasswordRule),
		)
	}, "Invalid password payload")
}

// UpdatePermissionsRequest replaces the grant set wholesale.
type UpdatePermissionsRequest struct {
	Permissions PermissionList `json:"permissions"`
}

func (r UpdatePermissionsRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Permissions, validation.By(validPermissions)),
		)
	}, "Invalid permissions payload")
}

// AuthController handles the login route.
type AuthController struct {
	Debug        bool
	Logger       Logger
	Auther       Authenticator
	ErrorHandler router.ErrorHandler
}

func (a *AuthController) WithLogger(l Logger) *AuthController {
	if l != nil {
		a.Logger = l
	}
	return a
}

// Login verifies credentials and returns a signed token. Every credential
// failure maps to the same 401 body.
func (a *AuthController) Login(ctx router.Context) error {
	payload := new(LoginRequest)
	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, errors.Wrap(err, errors.CategoryBadInput, "Unable to parse login payload").
			WithCode(errors.CodeBadRequest))
	}

	if a.Debug {
		a.Logger.Debug("login payload %s", print.MaybePrettyJSON(map[string]any{
			"email": payload.Email,
		}))
	}

	if err := payload.Validate(); err != nil {
		return respondValidationError(ctx, err)
	}

	token, err := a.Auther.Login(ctx.Context(), payload.Email, payload.Password)
	if err != nil {
		a.Logger.Error("Login error", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"token": token,
	})
}

// UsersController handles the account lifecycle routes.
type UsersController struct {
	Logger       Logger
	Service      *UserService
	ErrorHandler router.ErrorHandler
}

func (c *UsersController) WithLogger(l Logger) *UsersController {
	if l != nil {
		c.Logger = l
	}
	return c
}

// Create registers an account and returns the record plus a login token.
func (c *UsersController) Create(ctx router.Context) error {
	payload := new(CreateUserRequest)
	if err := ctx.Bind(payload); err != nil {
		return c.ErrorHandler(ctx, errors.Wrap(err, errors.CategoryBadInput, "Unable to parse user payload").
			WithCode(errors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return respondValidationError(ctx, err)
	}

	user, token, err := c.Service.Create(ctx.Context(), CreateUserInput{
		Email:       payload.Email,
		Password:    payload.Password,
		Permissions: payload.Permissions,
	})
	if err != nil {
		return c.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, map[string]any{
		"user":  user,
		"token": token,
	})
}

// List returns every account.
func (c *UsersController) List(ctx router.Context) error {
	records, err := c.Service.List(ctx.Context())
	if err != nil {
		return c.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, records)
}

// Show returns a single account by id.
func (c *UsersController) Show(ctx router.Context) error {
	id, err := parseUserID(ctx)
	if err != nil {
		return c.ErrorHandler(ctx, err)
	}

	user, err := c.Service.Get(ctx.Context(), id)
	if err != nil {
		return c.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, user)
}

// UpdateMail changes the account email.
func (c *UsersController) UpdateMail(ctx router.Context) error {
	id, err := parseUserID(ctx)
	if err != nil {
		return c.ErrorHandler(ctx, err)
	}

	payload := new(UpdateMailRequest)
	if err := ctx.Bind(payload); err != nil {
		return c.ErrorHandler(ctx, errors.Wrap(err, errors.CategoryBadInput, "Unable to parse email payload").
			WithCode(errors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return respondValidationError(ctx, err)
	}

	if err := c.Service.UpdateEmail(ctx.Context(), id, payload.Email); err != nil {
		return c.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"message": "Email updated",
	})
}

// UpdatePassword changes the account password.
func (c *UsersController) UpdatePassword(ctx router.Context) error {
	id, err := parseUserID(ctx)
	if err != nil {
		return c.ErrorHandler(ctx, err)
	}

	payload := new(UpdatePasswordRequest)
	if err := ctx.Bind(payload); err != nil {
		return c.ErrorHandler(ctx, errors.Wrap(err, errors.CategoryBadInput, "Unable to parse password payload").
			WithCode(errors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return respondValidationError(ctx, err)
	}

	if err := c.Service.UpdatePassword(ctx.Context(), id, payload.Password); err != nil {
		return c.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"message": "Password updated",
	})
}

// UpdatePermissions replaces the account's grant set.
func (c *UsersController) UpdatePermissions(ctx router.Context) error {
	id, err := parseUserID(ctx)
	if err != nil {
		return c.ErrorHandler(ctx, err)
	}

	payload := new(UpdatePermissionsRequest)
	if err := ctx.Bind(payload); err != nil {
		return c.ErrorHandler(ctx, errors.Wrap(err, errors.CategoryBadInput, "Unable to parse permissions payload").
			WithCode(errors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return respondValidationError(ctx, err)
	}

	user, err := c.Service.UpdatePermissions(ctx.Context(), id, payload.Permissions)
	if err != nil {
		return c.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, user)
}

// Deactivate soft-disables the account.
func (c *UsersController) Deactivate(ctx router.Context) error {
	id, err := parseUserID(ctx)
	if err != nil {
		return c.ErrorHandler(ctx, err)
	}

	user, err := c.Service.Deactivate(ctx.Context(), id)
	if err != nil {
		return c.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, user)
}

// Reactivate re-enables a deactivated account.
func (c *UsersController) Reactivate(ctx router.Context) error {
	id, err := parseUserID(ctx)
	if err != nil {
		return c.ErrorHandler(ctx, err)
	}

	user, err := c.Service.Reactivate(ctx.Context(), id)
	if err != nil {
		return c.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, user)
}

// Remove hard-deletes a deactivated account.
func (c *UsersController) Remove(ctx router.Context) error {
	id, err := parseUserID(ctx)
	if err != nil {
		return c.ErrorHandler(ctx, err)
	}

	if err := c.Service.Remove(ctx.Context(), id); err != nil {
		return c.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"message": "User deleted",
	})
}

// RegisterAuthRoutes mounts the login route.
func RegisterAuthRoutes(group RouteRegistrar, configure func(*AuthController) *AuthController) *AuthController {
	ac := &AuthController{
		Logger:       defLogger{},
		ErrorHandler: RespondError,
	}
	if configure != nil {
		ac = configure(ac)
	}

	group.Post("/auth/login", ac.Login)

	return ac
}

// RegisterUserRoutes mounts the lifecycle routes. Only the single-account
// read is permission guarded; the remaining routes follow the upstream
// contract and stay open behind whatever middleware the caller mounts.
func RegisterUserRoutes(group RouteRegistrar, auther *RouteAuthenticator, configure func(*UsersController) *UsersController) *UsersController {
	uc := &UsersController{
		Logger:       defLogger{},
		ErrorHandler: RespondError,
	}
	if configure != nil {
		uc = configure(uc)
	}

	group.Post("/users", uc.Create)
	group.Get("/users", uc.List)
	group.Get("/users/:id", uc.Show,
		auther.Protected(),
		RequirePermissions(PermissionSuperAdmin, PermissionUser),
	)
	group.Patch("/users/:id/mail", uc.UpdateMail)
	group.Patch("/users/:id/password", uc.UpdatePassword)
	group.Patch("/users/:id/permissions", uc.UpdatePermissions)
	group.Patch("/users/:id/reactive", uc.Reactivate)
	group.Delete("/users/:id/desactive", uc.Deactivate)
	group.Delete("/users/:id", uc.Remove)

	return uc
}

func parseUserID(ctx router.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return uuid.Nil, errors.New("Invalid user id, expected a UUID", errors.CategoryBadInput).
			WithTextCode("INVALID_USER_ID").
			WithCode(errors.CodeBadRequest)
	}
	return id, nil
}

func respondValidationError(ctx router.Context, err *errors.Error) error {
	status := err.Code
	if status == 0 {
		status = router.StatusBadRequest
	}

	return ctx.JSON(status, map[string]any{
		"message":    err.Message,
		"statusCode": status,
		"validation": err.ValidationMap(),
	})
}
