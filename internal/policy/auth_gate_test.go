package policy_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diewo77/go-press/auth"
	"github.com/diewo77/go-press/gate"
	"github.com/diewo77/go-press/internal/models"
	"github.com/diewo77/go-press/internal/policy"
)

func TestProfileFor(t *testing.T) {
	post := func(a gate.Action) gate.Permission { return gate.NewPermission(policy.ResourcePost, a) }
	category := func(a gate.Action) gate.Permission { return gate.NewPermission(policy.ResourceCategory, a) }

	if p := policy.ProfileFor(models.RoleReader); !p.HasPermission(post(gate.ActionList)) || p.HasPermission(post(gate.ActionCreate)) {
		t.Error("reader should only read")
	}
	author := policy.ProfileFor(models.RoleAuthor)
	if !author.HasPermission(post(gate.ActionPublish)) || author.HasPermission(category(gate.ActionCreate)) {
		t.Error("author should manage posts but not categories")
	}
	if !policy.ProfileFor(models.RoleAdmin).HasPermission(category(gate.ActionDelete)) {
		t.Error("admin should manage categories")
	}
	if policy.ProfileFor("GUEST") != nil {
		t.Error("unknown role should have no profile")
	}
}

func TestAuthGate_RoleBeforeOwnership(t *testing.T) {
	g := policy.NewAuthGate()
	ctx := context.Background()
	reader := auth.Actor{ID: 42, Role: models.RoleReader}
	owned := &mockOwnable{userID: 42}

	if err := g.Authorize(ctx, reader, gate.ActionUpdate, policy.ResourcePost, owned); !errors.Is(err, gate.ErrMissingPermission) {
		t.Errorf("reader owning the post: expected ErrMissingPermission, got %v", err)
	}
	if err := g.Authorize(ctx, author99, gate.ActionUpdate, policy.ResourcePost, owned); !errors.Is(err, gate.ErrPolicyDenied) {
		t.Errorf("foreign author: expected ErrPolicyDenied, got %v", err)
	}
	if err := g.Authorize(ctx, admin1, gate.ActionUpdate, policy.ResourcePost, owned); err != nil {
		t.Errorf("admin: expected nil, got %v", err)
	}
	if err := g.Authorize(ctx, admin1, gate.ActionUpdate, policy.ResourcePost, &mockNonOwnable{ID: 1}); !errors.Is(err, gate.ErrPolicyDenied) {
		t.Errorf("resource without owner: expected ErrPolicyDenied, got %v", err)
	}
	if err := g.CheckRole(ctx, author42, gate.ActionCreate, policy.ResourceCategory); !errors.Is(err, gate.ErrMissingPermission) {
		t.Errorf("author creating category: expected ErrMissingPermission, got %v", err)
	}
	if err := g.CheckRole(ctx, auth.Actor{}, gate.ActionCreate, policy.ResourcePost); !errors.Is(err, gate.ErrUnauthenticated) {
		t.Errorf("anonymous: expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthGate_Middleware(t *testing.T) {
	g := policy.NewAuthGate()
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })

	tests := []struct {
		name    string
		handler http.Handler
		actor   *auth.Actor
		want    int
	}{
		{"permission anonymous", g.RequirePermission(policy.ResourcePost, gate.ActionCreate)(ok), nil, http.StatusUnauthorized},
		{"permission reader", g.RequirePermission(policy.ResourcePost, gate.ActionCreate)(ok), &auth.Actor{ID: 3, Role: models.RoleReader}, http.StatusForbidden},
		{"permission author", g.RequirePermission(policy.ResourcePost, gate.ActionCreate)(ok), &author42, http.StatusTeapot},
		{"admin anonymous", g.RequireAdmin()(ok), nil, http.StatusUnauthorized},
		{"admin author", g.RequireAdmin()(ok), &author42, http.StatusForbidden},
		{"admin admin", g.RequireAdmin()(ok), &admin1, http.StatusTeapot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.actor != nil {
				req = req.WithContext(auth.WithActor(req.Context(), *tt.actor))
			}
			rec := httptest.NewRecorder()
			tt.handler.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
