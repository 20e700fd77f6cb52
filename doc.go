// Package users provides user account management backed by bun and JWT
// authentication: registration, password login, profile mutation (email,
// password, permission grants), soft activation and permission-guarded
// HTTP routes.
//
// The package exposes three layers that can be consumed independently:
//
//   - UserService: lifecycle operations (create, list, get, update
//     email/password/permissions, deactivate, reactivate, remove) with
//     business rules enforced at the service boundary.
//   - Auther / UserProvider / TokenService: password verification and
//     HS256 token issuance with a fixed seven day expiry. Login failures
//     are reported with a single uniform error so callers cannot tell
//     unknown accounts apart from wrong passwords.
//   - RouteAuthenticator / RequirePermissions: HTTP middleware built on
//     go-router that validates bearer tokens, loads the account and
//     enforces declarative permission sets per route.
//
// Storage goes through RepositoryManager, a thin facade over
// go-repository-bun repositories, so callers can run any operation inside
// their own bun transactions.
package users
