// Package auth carries the identity of the caller: who they are (Actor), how their
// password is checked (PasswordHasher) and how their access token is issued and
// verified (TokenIssuer). HTTP middleware in this package turns a bearer token into
// an Actor on the request context; everything downstream takes the Actor as a value.
package auth

import (
	"context"

	"github.com/diewo77/go-press/internal/models"
)

type ctxKey string

const actorCtxKey = ctxKey("actor")

// Actor is the authenticated user performing a request.
// The zero value means "anonymous".
type Actor struct {
	ID   uint
	Role models.Role
}

// IsZero reports whether a is the anonymous actor.
func (a Actor) IsZero() bool { return a == Actor{} }

// IsAdmin reports whether a holds the ADMIN role.
func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

// ActorOf builds the actor for a stored user.
func ActorOf(u *models.User) Actor {
	return Actor{ID: u.ID, Role: u.Role}
}

// WithActor stores the actor in context.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey, a)
}

// ActorFromContext extracts the actor. ok is false for anonymous requests.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorCtxKey).(Actor)
	if !ok || a.IsZero() {
		return Actor{}, false
	}
	return a, true
}
