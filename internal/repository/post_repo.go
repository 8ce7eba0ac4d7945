package repository

import (
	"context"

	"github.com/diewo77/go-press/internal/models"
	"gorm.io/gorm"
)

type PostRepository interface {
	// ListPublished returns published posts, newest first.
	ListPublished(ctx context.Context) ([]models.Post, error)
	FindBySlug(ctx context.Context, slug string) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, id uint, fields map[string]any) (*models.Post, error)
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) ListPublished(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}
	err := r.db.WithContext(ctx).
		Where("published = ?", true).
		Order("created_at DESC").Order("id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, translate(err, "list published posts")
	}
	return posts, nil
}

func (r *postRepository) FindBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&post).Error; err != nil {
		return nil, translate(err, "find post by slug")
	}
	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return translate(r.db.WithContext(ctx).Create(post).Error, "create post")
}

func (r *postRepository) Update(ctx context.Context, id uint, fields map[string]any) (*models.Post, error) {
	if len(fields) > 0 {
		err := r.db.WithContext(ctx).Model(&models.Post{ID: id}).Updates(fields).Error
		if err != nil {
			return nil, translate(err, "update post")
		}
	}
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, translate(err, "reload post")
	}
	return &post, nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return translate(res.Error, "delete post")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
