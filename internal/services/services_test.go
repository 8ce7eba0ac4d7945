package services

import (
	"context"
	"strings"
	"testing"

	"github.com/diewo77/go-press/auth"
	"github.com/diewo77/go-press/internal/logging"
	"github.com/diewo77/go-press/internal/models"
	"github.com/diewo77/go-press/internal/policy"
	"github.com/diewo77/go-press/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	db          *gorm.DB
	credentials *CredentialService
	users       *UserService
	categories  *CategoryService
	posts       *PostService
	tokens      *auth.JWTIssuer
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+strings.ReplaceAll(t.Name(), "/", "_")+"?mode=memory&cache=shared&_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Post{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupTestDB(t)
	log := logging.Discard()
	g := policy.NewAuthGate()
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	tokens := auth.NewJWTIssuer("test-secret", 0)
	return &fixture{
		db:          db,
		credentials: NewCredentialService(userRepo, auth.NewBcryptHasher(bcrypt.MinCost), tokens, log),
		users:       NewUserService(userRepo, log),
		categories:  NewCategoryService(categoryRepo, g, log),
		posts:       NewPostService(repository.NewPostRepository(db), categoryRepo, g, log),
		tokens:      tokens,
	}
}

func (f *fixture) signup(t *testing.T, name string, role models.Role) auth.Actor {
	t.Helper()
	u, err := f.credentials.Signup(context.Background(), SignupInput{
		Email: name + "@x.com", Username: name, Password: "p", FirstName: "F", LastName: "L", Role: role,
	})
	if err != nil {
		t.Fatalf("signup %s: %v", name, err)
	}
	return auth.ActorOf(u)
}

func (f *fixture) newCategory(t *testing.T, admin auth.Actor, slug string) *models.Category {
	t.Helper()
	c, err := f.categories.Create(context.Background(), admin, CreateCategoryInput{Name: slug, Slug: slug})
	if err != nil {
		t.Fatalf("create category %s: %v", slug, err)
	}
	return c
}

func (f *fixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(model).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	return n
}

func strPtr(s string) *string { return &s }
