package services

import (
	"context"
	"errors"
	"testing"

	"github.com/diewo77/go-press/internal/logging"
	"github.com/diewo77/go-press/internal/models"
	"github.com/diewo77/go-press/internal/policy"
	"github.com/diewo77/go-press/internal/repository"
)

func TestCategoryLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.signup(t, "admin", models.RoleAdmin)
	author := f.signup(t, "alice", models.RoleAuthor)

	if _, err := f.categories.Create(ctx, author, CreateCategoryInput{Name: "Go", Slug: "go"}); !errors.Is(err, ErrInsufficientRole) {
		t.Errorf("author create: expected ErrInsufficientRole, got %v", err)
	}
	c := f.newCategory(t, admin, "go")
	if _, err := f.categories.Create(ctx, admin, CreateCategoryInput{Name: "Go 2", Slug: "go"}); !errors.Is(err, ErrSlugAlreadyExists) {
		t.Errorf("duplicate slug: expected ErrSlugAlreadyExists, got %v", err)
	}

	if got, err := f.categories.GetBySlug(ctx, "go"); err != nil || got.ID != c.ID {
		t.Errorf("GetBySlug: %v %v", got, err)
	}
	if _, err := f.categories.GetBySlug(ctx, "nope"); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}

	if _, err := f.categories.Update(ctx, author, "go", UpdateCategoryInput{Name: strPtr("x")}); !errors.Is(err, ErrInsufficientRole) {
		t.Errorf("author update: expected ErrInsufficientRole, got %v", err)
	}
	if _, err := f.categories.Update(ctx, admin, "nope", UpdateCategoryInput{Name: strPtr("x")}); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("missing update: expected ErrCategoryNotFound, got %v", err)
	}
	updated, err := f.categories.Update(ctx, admin, "go", UpdateCategoryInput{Description: strPtr("gophers")})
	if err != nil || updated.Name != "go" || updated.Description == nil || *updated.Description != "gophers" {
		t.Fatalf("partial update: %+v %v", updated, err)
	}

	list, err := f.categories.List(ctx)
	if err != nil || len(list) != 1 {
		t.Errorf("List: %v %v", list, err)
	}

	if err := f.categories.Delete(ctx, author, "go"); !errors.Is(err, ErrInsufficientRole) {
		t.Errorf("author delete: expected ErrInsufficientRole, got %v", err)
	}
	if err := f.categories.Delete(ctx, admin, "nope"); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("missing delete: expected ErrCategoryNotFound, got %v", err)
	}
	if err := f.categories.Delete(ctx, admin, "go"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestCategoryDelete_InUse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.signup(t, "admin", models.RoleAdmin)
	author := f.signup(t, "alice", models.RoleAuthor)
	c := f.newCategory(t, admin, "go")

	if _, err := f.posts.Create(ctx, author, CreatePostInput{Title: "t", Slug: "t", Content: "c", CategoryID: c.ID}); err != nil {
		t.Fatal(err)
	}
	if err := f.categories.Delete(ctx, admin, "go"); !errors.Is(err, ErrCategoryInUse) {
		t.Errorf("expected ErrCategoryInUse, got %v", err)
	}
	if err := f.posts.Delete(ctx, author, "t"); err != nil {
		t.Fatal(err)
	}
	if err := f.categories.Delete(ctx, admin, "go"); err != nil {
		t.Errorf("delete after posts removed: %v", err)
	}
}

// staleCountRepository reports no posts, as if one was attached after the count.
type staleCountRepository struct {
	repository.CategoryRepository
}

func (staleCountRepository) CountPosts(context.Context, uint) (int64, error) { return 0, nil }

func TestCategoryDelete_StoreRejectsReferencedCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.signup(t, "admin", models.RoleAdmin)
	author := f.signup(t, "alice", models.RoleAuthor)
	c := f.newCategory(t, admin, "go")
	if _, err := f.posts.Create(ctx, author, CreatePostInput{Title: "t", Slug: "t", Content: "c", CategoryID: c.ID}); err != nil {
		t.Fatal(err)
	}

	stale := NewCategoryService(staleCountRepository{repository.NewCategoryRepository(f.db)}, policy.NewAuthGate(), logging.Discard())
	if err := stale.Delete(ctx, admin, "go"); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}
	if _, err := f.categories.GetBySlug(ctx, "go"); err != nil {
		t.Errorf("category must survive: %v", err)
	}
}
