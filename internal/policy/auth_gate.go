package policy

import (
	"context"
	"net/http"

	"github.com/diewo77/go-press/auth"
	"github.com/diewo77/go-press/gate"
	"github.com/diewo77/go-press/httpx"
)

// AuthGate is the central authorization point of the application.
type AuthGate struct {
	Gate *gate.HybridGate[auth.Actor]
}

// NewAuthGate returns a gate resolving roles to profiles, with posts guarded
// by CanAct. Categories have no owner; their writes are covered by the ADMIN
// profile alone.
func NewAuthGate() *AuthGate {
	g := gate.NewHybridGate[auth.Actor](RoleResolver)
	g.Register(ResourcePost, postPolicy)
	return &AuthGate{Gate: g}
}

// CheckRole verifies that the actor's role grants action on resourceType.
func (ag *AuthGate) CheckRole(ctx context.Context, actor auth.Actor, action gate.Action, resourceType string) error {
	return ag.Gate.CheckProfile(ctx, actor, action, resourceType)
}

// Authorize runs the role check and then the resource policy.
func (ag *AuthGate) Authorize(ctx context.Context, actor auth.Actor, action gate.Action, resourceType string, resource any) error {
	return ag.Gate.Authorize(ctx, actor, action, resourceType, resource)
}

// RequirePermission returns middleware that checks the role permission
// before the handler runs. Anonymous requests get 401, others lacking the
// permission get 403.
func (ag *AuthGate) RequirePermission(resourceType string, action gate.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := auth.ActorFromContext(r.Context())
			if !ok {
				httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
				return
			}
			if !ag.Gate.CanProfile(r.Context(), actor, action, resourceType) {
				httpx.JSONError(w, http.StatusForbidden, "insufficient_role", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin returns middleware that only lets ADMIN actors through.
func (ag *AuthGate) RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := auth.ActorFromContext(r.Context())
			if !ok {
				httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
				return
			}
			profile, err := RoleResolver.Resolve(r.Context(), actor)
			if err != nil || profile == nil || !profile.HasPermission(gate.PermissionSuperAdmin) {
				httpx.JSONError(w, http.StatusForbidden, "insufficient_role", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
