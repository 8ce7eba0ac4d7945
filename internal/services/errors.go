package services

import (
	"errors"

	"github.com/diewo77/go-press/gate"
	pkgerrors "github.com/pkg/errors"
)

// Error kinds returned to the boundary layer. None of them is retryable.
var (
	ErrAlreadyTaken       = errors.New("email or username already taken")
	ErrEmailAlreadyTaken  = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrPasswordTooLong    = errors.New("password too long")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInsufficientRole   = errors.New("insufficient role")
	ErrForbidden          = errors.New("forbidden")
	ErrUserNotFound       = errors.New("user not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryInUse      = errors.New("category is referenced by posts")
	ErrPostNotFound       = errors.New("post not found")
	ErrSlugAlreadyExists  = errors.New("slug already exists")
)

// authzError maps gate outcomes onto the service error kinds.
func authzError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gate.ErrUnauthenticated):
		return ErrUnauthenticated
	case errors.Is(err, gate.ErrMissingPermission):
		return ErrInsufficientRole
	case errors.Is(err, gate.ErrPolicyDenied):
		return ErrForbidden
	default:
		return pkgerrors.Wrap(err, "authorize")
	}
}
