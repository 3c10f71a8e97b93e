// Package common defines shared constants and sentinel errors used across
// the ForkVault client and gateway server. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Access errors.
	ErrInvalidProductKey = errors.New("invalid product key")
	ErrAccountInactive   = errors.New("account is not activated")
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrAdminOnly         = errors.New("admin access required")
	ErrUserOnly          = errors.New("user access required")

	// Validation errors.
	ErrEmptyName    = errors.New("name must not be empty")
	ErrFileTooLarge = errors.New("file exceeds size limit")
	ErrFileNotFound = errors.New("file not found")
)
