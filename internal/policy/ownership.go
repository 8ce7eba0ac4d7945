package policy

import (
	"context"

	"github.com/diewo77/go-press/auth"
	"github.com/diewo77/go-press/gate"
)

// Ownable is implemented by resources that have an owner.
type Ownable interface {
	GetUserID() uint
}

// OwnershipPolicy allows an actor to act on resources it owns.
type OwnershipPolicy struct{}

func NewOwnershipPolicy() *OwnershipPolicy {
	return &OwnershipPolicy{}
}

// Can reports whether actor owns resource. A nil resource is allowed since
// the profile check already covered the action. Resources that are not
// Ownable are denied.
func (p *OwnershipPolicy) Can(_ context.Context, actor auth.Actor, _ gate.Action, resource any) bool {
	if resource == nil {
		return true
	}
	ownable, ok := resource.(Ownable)
	if !ok {
		return false
	}
	return ownable.GetUserID() == actor.ID
}

// AdminBypassPolicy wraps another policy and always allows admins.
type AdminBypassPolicy struct {
	inner gate.Policy[auth.Actor]
}

func NewAdminBypassPolicy(inner gate.Policy[auth.Actor]) *AdminBypassPolicy {
	return &AdminBypassPolicy{inner: inner}
}

func (p *AdminBypassPolicy) Can(ctx context.Context, actor auth.Actor, action gate.Action, resource any) bool {
	if actor.IsAdmin() {
		return true
	}
	return p.inner.Can(ctx, actor, action, resource)
}

type ownedBy uint

func (o ownedBy) GetUserID() uint { return uint(o) }

var postOwnership = NewAdminBypassPolicy(NewOwnershipPolicy())

// CanAct decides whether actor may perform action on a post owned by ownerID.
// Reads are always allowed. Writes need the role permission first and then
// either ownership or the ADMIN role.
func CanAct(actor auth.Actor, ownerID uint, action gate.Action) bool {
	if action.IsRead() {
		return true
	}
	profile := ProfileFor(actor.Role)
	if actor.IsZero() || profile == nil || !profile.HasPermission(gate.NewPermission(ResourcePost, action)) {
		return false
	}
	return postOwnership.Can(context.Background(), actor, action, ownedBy(ownerID))
}

// postPolicy is the gate policy for posts: CanAct applied to the post's owner.
var postPolicy = gate.PolicyFunc[auth.Actor](func(_ context.Context, actor auth.Actor, action gate.Action, resource any) bool {
	owned, ok := resource.(Ownable)
	return ok && CanAct(actor, owned.GetUserID(), action)
})
