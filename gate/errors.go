package gate

import "errors"

// Sentinel errors returned by HybridGate.Authorize.
var (
	// ErrUnauthenticated is returned for the zero-value user.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrMissingPermission is returned when the user's profile lacks resource:action.
	ErrMissingPermission = errors.New("missing permission")
	// ErrPolicyDenied is returned when the resource policy rejects the user.
	ErrPolicyDenied = errors.New("denied by resource policy")
)
