package gate_test

import (
	"context"
	"testing"

	"github.com/diewo77/go-press/gate"
)

func TestStaticProfile_HasPermission(t *testing.T) {
	p := gate.NewStaticProfile("author",
		gate.NewPermission("post", gate.ActionCreate),
		"post:*",
	)

	if p.Name() != "author" {
		t.Errorf("expected name 'author', got '%s'", p.Name())
	}
	if !p.HasPermission("post:publish") {
		t.Error("expected wildcard to grant post:publish")
	}
	if p.HasPermission("category:create") {
		t.Error("expected category:create to be denied")
	}
}

func TestStaticProfile_PermissionsIsCopy(t *testing.T) {
	p := gate.NewStaticProfile("reader", "post:view")
	perms := p.Permissions()
	perms[0] = gate.PermissionSuperAdmin

	if p.HasPermission("category:delete") {
		t.Error("mutating the returned slice must not widen the profile")
	}
}

func TestResolverFunc(t *testing.T) {
	reader := gate.NewStaticProfile("reader", "post:view")
	r := gate.ResolverFunc[string](func(_ context.Context, user string) (gate.Profile, error) {
		if user == "alice" {
			return reader, nil
		}
		return nil, nil
	})

	p, err := r.Resolve(context.Background(), "alice")
	if err != nil || p == nil || p.Name() != "reader" {
		t.Fatalf("expected reader profile, got %v (err=%v)", p, err)
	}
	p, err = r.Resolve(context.Background(), "bob")
	if err != nil || p != nil {
		t.Fatalf("expected no profile, got %v (err=%v)", p, err)
	}
}
