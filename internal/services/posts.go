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

type CreatePostInput struct {
	Title         string
	Slug          string
	Content       string
	Excerpt       *string
	CoverImageURL *string
	Published     bool
	CategoryID    uint
}

// UpdatePostInput is a partial update. Nil fields are left untouched.
type UpdatePostInput struct {
	Title         *string
	Slug          *string
	Content       *string
	Excerpt       *string
	CoverImageURL *string
	Published     *bool
	CategoryID    *uint
}

// PostService manages the post lifecycle. Every mutating call checks, in
// order: the actor's role, that the post exists, ownership, then slug and
// category constraints. Nothing is written until all checks pass.
type PostService struct {
	posts      repository.PostRepository
	categories repository.CategoryRepository
	gate       *policy.AuthGate
	log        logrus.FieldLogger
}

func NewPostService(posts repository.PostRepository, categories repository.CategoryRepository, g *policy.AuthGate, log logrus.FieldLogger) *PostService {
	return &PostService{posts: posts, categories: categories, gate: g, log: log}
}

// List returns published posts only.
func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	return s.posts.ListPublished(ctx)
}

// GetBySlug returns a post. Drafts are visible to their author and to
// admins; anyone else gets ErrPostNotFound.
func (s *PostService) GetBySlug(ctx context.Context, actor auth.Actor, slug string) (*models.Post, error) {
	post, err := s.find(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post.IsDraft() && !actor.IsAdmin() && (actor.IsZero() || actor.ID != post.AuthorID) {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *PostService) Create(ctx context.Context, actor auth.Actor, in CreatePostInput) (*models.Post, error) {
	if err := s.checkRole(ctx, actor, gate.ActionCreate); err != nil {
		return nil, err
	}
	if err := s.ensureCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, in.Slug); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:         in.Title,
		Slug:          in.Slug,
		Content:       in.Content,
		Excerpt:       in.Excerpt,
		CoverImageURL: in.CoverImageURL,
		Published:     in.Published,
		CategoryID:    in.CategoryID,
		AuthorID:      actor.ID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, postWriteError(err)
	}
	s.log.WithFields(logrus.Fields{"actor_id": actor.ID, "slug": post.Slug}).Info("post created")
	return post, nil
}

// Update merges the non-nil fields of in into the post. The author is kept.
func (s *PostService) Update(ctx context.Context, actor auth.Actor, slug string, in UpdatePostInput) (*models.Post, error) {
	post, err := s.authorize(ctx, actor, gate.ActionUpdate, slug)
	if err != nil {
		return nil, err
	}
	if in.Slug != nil && *in.Slug != post.Slug {
		if err := s.ensureSlugFree(ctx, *in.Slug); err != nil {
			return nil, err
		}
	}
	if in.CategoryID != nil {
		if err := s.ensureCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
	}

	fields := map[string]any{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Slug != nil {
		fields["slug"] = *in.Slug
	}
	if in.Content != nil {
		fields["content"] = *in.Content
	}
	if in.Excerpt != nil {
		fields["excerpt"] = *in.Excerpt
	}
	if in.CoverImageURL != nil {
		fields["cover_image_url"] = *in.CoverImageURL
	}
	if in.Published != nil {
		fields["published"] = *in.Published
	}
	if in.CategoryID != nil {
		fields["category_id"] = *in.CategoryID
	}
	updated, err := s.write(ctx, post.ID, fields)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"actor_id": actor.ID, "slug": updated.Slug}).Info("post updated")
	return updated, nil
}

func (s *PostService) Delete(ctx context.Context, actor auth.Actor, slug string) error {
	post, err := s.authorize(ctx, actor, gate.ActionDelete, slug)
	if err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, post.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	s.log.WithFields(logrus.Fields{"actor_id": actor.ID, "slug": slug}).Info("post deleted")
	return nil
}

// Publish moves a post to Published. Publishing a published post is a no-op write.
func (s *PostService) Publish(ctx context.Context, actor auth.Actor, slug string) (*models.Post, error) {
	return s.setPublished(ctx, actor, gate.ActionPublish, slug, true)
}

// Unpublish moves a post back to Draft.
func (s *PostService) Unpublish(ctx context.Context, actor auth.Actor, slug string) (*models.Post, error) {
	return s.setPublished(ctx, actor, gate.ActionUnpublish, slug, false)
}

func (s *PostService) setPublished(ctx context.Context, actor auth.Actor, action gate.Action, slug string, published bool) (*models.Post, error) {
	post, err := s.authorize(ctx, actor, action, slug)
	if err != nil {
		return nil, err
	}
	updated, err := s.write(ctx, post.ID, map[string]any{"published": published})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"actor_id": actor.ID, "slug": slug, "published": published}).Info("post visibility changed")
	return updated, nil
}

// authorize runs the role check, resolves the post, then checks ownership.
func (s *PostService) authorize(ctx context.Context, actor auth.Actor, action gate.Action, slug string) (*models.Post, error) {
	if err := s.checkRole(ctx, actor, action); err != nil {
		return nil, err
	}
	post, err := s.find(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := authzError(s.gate.Authorize(ctx, actor, action, policy.ResourcePost, post)); err != nil {
		s.log.WithFields(logrus.Fields{"actor_id": actor.ID, "slug": slug, "action": action}).Debug("post access denied")
		return nil, err
	}
	return post, nil
}

func (s *PostService) checkRole(ctx context.Context, actor auth.Actor, action gate.Action) error {
	return authzError(s.gate.CheckRole(ctx, actor, action, policy.ResourcePost))
}

func (s *PostService) find(ctx context.Context, slug string) (*models.Post, error) {
	post, err := s.posts.FindBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	return post, err
}

func (s *PostService) write(ctx context.Context, id uint, fields map[string]any) (*models.Post, error) {
	post, err := s.posts.Update(ctx, id, fields)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, postWriteError(err)
	}
	return post, nil
}

func (s *PostService) ensureCategory(ctx context.Context, id uint) error {
	_, err := s.categories.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCategoryNotFound
	}
	return err
}

func (s *PostService) ensureSlugFree(ctx context.Context, slug string) error {
	_, err := s.posts.FindBySlug(ctx, slug)
	switch {
	case err == nil:
		return ErrSlugAlreadyExists
	case errors.Is(err, repository.ErrNotFound):
		return nil
	default:
		return err
	}
}

// postWriteError translates store constraint failures on a post write. A
// foreign key failure means the category vanished after it was checked.
func postWriteError(err error) error {
	if errors.Is(err, repository.ErrReferenced) {
		return ErrCategoryNotFound
	}
	return slugError(err)
}
