package gate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/diewo77/go-press/gate"
)

type testUser struct {
	ID   uint
	Role string
}

type ownedResource struct {
	OwnerID uint
}

func newTestGate() *gate.HybridGate[testUser] {
	profiles := map[string]gate.Profile{
		"editor": gate.NewStaticProfile("editor",
			gate.NewPermission("post", gate.ActionView),
			gate.NewPermission("post", gate.ActionUpdate),
		),
		"admin": gate.NewStaticProfile("admin", gate.PermissionSuperAdmin),
	}
	g := gate.NewHybridGate[testUser](gate.ResolverFunc[testUser](func(_ context.Context, u testUser) (gate.Profile, error) {
		return profiles[u.Role], nil
	}))
	g.Register("post", gate.PolicyFunc[testUser](func(_ context.Context, u testUser, _ gate.Action, resource any) bool {
		r, ok := resource.(*ownedResource)
		return ok && (u.Role == "admin" || r.OwnerID == u.ID)
	}))
	return g
}

func TestHybridGate_ProfileOnly(t *testing.T) {
	g := newTestGate()
	ctx := context.Background()
	editor := testUser{ID: 1, Role: "editor"}

	if err := g.Authorize(ctx, editor, gate.ActionUpdate, "post", nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := g.Authorize(ctx, editor, gate.ActionDelete, "post", nil); !errors.Is(err, gate.ErrMissingPermission) {
		t.Errorf("expected ErrMissingPermission, got %v", err)
	}
	if err := g.Authorize(ctx, testUser{ID: 2, Role: "nobody"}, gate.ActionView, "post", nil); !errors.Is(err, gate.ErrMissingPermission) {
		t.Errorf("user without profile should be denied, got %v", err)
	}
	if err := g.Authorize(ctx, testUser{}, gate.ActionView, "post", nil); !errors.Is(err, gate.ErrUnauthenticated) {
		t.Errorf("zero user should be unauthenticated, got %v", err)
	}
}

func TestHybridGate_WithOwnershipPolicy(t *testing.T) {
	g := newTestGate()
	ctx := context.Background()
	resource := &ownedResource{OwnerID: 1}

	if err := g.Authorize(ctx, testUser{ID: 1, Role: "editor"}, gate.ActionUpdate, "post", resource); err != nil {
		t.Errorf("owner should be allowed, got %v", err)
	}
	if err := g.Authorize(ctx, testUser{ID: 2, Role: "editor"}, gate.ActionUpdate, "post", resource); !errors.Is(err, gate.ErrPolicyDenied) {
		t.Errorf("non-owner should be denied by policy, got %v", err)
	}
	if err := g.Authorize(ctx, testUser{ID: 3, Role: "admin"}, gate.ActionUpdate, "post", resource); err != nil {
		t.Errorf("admin should bypass ownership, got %v", err)
	}
}

func TestHybridGate_ProfileCheckedBeforePolicy(t *testing.T) {
	g := newTestGate()
	resource := &ownedResource{OwnerID: 1}

	// The owner lacks post:delete, so the profile step must fail first.
	err := g.Authorize(context.Background(), testUser{ID: 1, Role: "editor"}, gate.ActionDelete, "post", resource)
	if !errors.Is(err, gate.ErrMissingPermission) {
		t.Errorf("expected ErrMissingPermission, got %v", err)
	}
}

func TestHybridGate_ResolverError(t *testing.T) {
	boom := errors.New("boom")
	g := gate.NewHybridGate[uint](gate.ResolverFunc[uint](func(context.Context, uint) (gate.Profile, error) {
		return nil, boom
	}))
	if err := g.Authorize(context.Background(), 1, gate.ActionView, "post", nil); !errors.Is(err, boom) {
		t.Errorf("expected resolver error, got %v", err)
	}
}

func TestHybridGate_CanProfile(t *testing.T) {
	g := newTestGate()
	editor := testUser{ID: 1, Role: "editor"}

	if !g.CanProfile(context.Background(), editor, gate.ActionView, "post") {
		t.Error("CanProfile should return true for user with permission")
	}
	if g.CanProfile(context.Background(), editor, gate.ActionDelete, "post") {
		t.Error("CanProfile should return false for missing permission")
	}
	if !g.Can(context.Background(), editor, gate.ActionUpdate, "post", &ownedResource{OwnerID: 1}) {
		t.Error("Can should return true for owner")
	}
}
