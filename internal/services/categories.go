package services

import (
	"context"
	"errors"

	"github.com/diewo77/go-press/auth"
	"github.com/diewo77/go-press/gate"
	"github.com/diewo77/go-press/internal/models"
	"github.com/diewo77/go-press/internal/policy"
	"github.com/diewo77/go-press/internal/repository"
	"github.com/sirupsen/logrus"
)

type CreateCategoryInput struct {
	Name        string
	Slug        string
	Description *string
}

// UpdateCategoryInput is a partial update. Nil fields are left untouched.
type UpdateCategoryInput struct {
	Name        *string
	Slug        *string
	Description *string
}

// CategoryService manages categories. Reads are public, writes need ADMIN.
type CategoryService struct {
	categories repository.CategoryRepository
	gate       *policy.AuthGate
	log        logrus.FieldLogger
}

func NewCategoryService(categories repository.CategoryRepository, g *policy.AuthGate, log logrus.FieldLogger) *CategoryService {
	return &CategoryService{categories: categories, gate: g, log: log}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categories.FindBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCategoryNotFound
	}
	return category, err
}

// Create inserts a category. Slug uniqueness is left to the store; a
// collision comes back as ErrSlugAlreadyExists.
func (s *CategoryService) Create(ctx context.Context, actor auth.Actor, in CreateCategoryInput) (*models.Category, error) {
	if err := s.checkRole(ctx, actor, gate.ActionCreate); err != nil {
		return nil, err
	}
	category := &models.Category{Name: in.Name, Slug: in.Slug, Description: in.Description}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, slugError(err)
	}
	s.log.WithFields(logrus.Fields{"actor_id": actor.ID, "slug": category.Slug}).Info("category created")
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, actor auth.Actor, slug string, in UpdateCategoryInput) (*models.Category, error) {
	if err := s.checkRole(ctx, actor, gate.ActionUpdate); err != nil {
		return nil, err
	}
	category, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Slug != nil {
		fields["slug"] = *in.Slug
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	updated, err := s.categories.Update(ctx, category.ID, fields)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, slugError(err)
	}
	s.log.WithFields(logrus.Fields{"actor_id": actor.ID, "slug": updated.Slug}).Info("category updated")
	return updated, nil
}

// Delete removes a category. A category still referenced by posts is kept
// and ErrCategoryInUse is returned.
func (s *CategoryService) Delete(ctx context.Context, actor auth.Actor, slug string) error {
	if err := s.checkRole(ctx, actor, gate.ActionDelete); err != nil {
		return err
	}
	category, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	n, err := s.categories.CountPosts(ctx, category.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrCategoryInUse
	}
	if err := s.categories.Delete(ctx, category.ID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrCategoryNotFound
		case errors.Is(err, repository.ErrReferenced):
			// a post was attached after the count
			return ErrCategoryInUse
		}
		return err
	}
	s.log.WithFields(logrus.Fields{"actor_id": actor.ID, "slug": slug}).Info("category deleted")
	return nil
}

func (s *CategoryService) checkRole(ctx context.Context, actor auth.Actor, action gate.Action) error {
	return authzError(s.gate.CheckRole(ctx, actor, action, policy.ResourceCategory))
}

// slugError turns a storage uniqueness violation into ErrSlugAlreadyExists.
func slugError(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return ErrSlugAlreadyExists
	}
	return err
}
