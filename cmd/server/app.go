package main

import (
	"context"
	"net/http"

	"github.com/diewo77/go-press/auth"
	"github.com/diewo77/go-press/gate"
	"github.com/diewo77/go-press/internal/db"
	"github.com/diewo77/go-press/internal/handlers"
	"github.com/diewo77/go-press/internal/logging"
	"github.com/diewo77/go-press/internal/policy"
	"github.com/diewo77/go-press/internal/repository"
	"github.com/diewo77/go-press/internal/services"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux     *http.ServeMux
	handler http.Handler
	gate    *policy.AuthGate
	log     logrus.FieldLogger

	auth       *handlers.AuthHandler
	users      *handlers.UserHandler
	categories *handlers.CategoryHandler
	posts      *handlers.PostHandler
	health     http.HandlerFunc
}

// NewApp wires repositories, services and handlers over conn and builds the route table.
func NewApp(conn *gorm.DB, hasher auth.PasswordHasher, tokens auth.TokenIssuer, log logrus.FieldLogger) *App {
	userRepo := repository.NewUserRepository(conn)
	categoryRepo := repository.NewCategoryRepository(conn)
	postRepo := repository.NewPostRepository(conn)
	authGate := policy.NewAuthGate()

	userService := services.NewUserService(userRepo, log)
	app := &App{
		mux:        http.NewServeMux(),
		gate:       authGate,
		log:        log,
		auth:       handlers.NewAuthHandler(services.NewCredentialService(userRepo, hasher, tokens, log), log),
		users:      handlers.NewUserHandler(userService, log),
		categories: handlers.NewCategoryHandler(services.NewCategoryService(categoryRepo, authGate, log), log),
		posts:      handlers.NewPostHandler(services.NewPostService(postRepo, categoryRepo, authGate, log), log),
		health:     handlers.Health(func(ctx context.Context) error { return db.Ping(ctx, conn) }, log),
	}

	// tokens of deleted accounts are rejected before they expire
	auth.SetActorVerifier(func(r *http.Request, a auth.Actor) bool {
		return userService.Exists(r.Context(), a)
	})

	app.setupRoutes()
	app.handler = logging.Middleware(log)(auth.Middleware(tokens)(app.mux))
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

func (a *App) setupRoutes() {
	// Public routes
	a.mux.HandleFunc("GET /healthz", a.health)
	a.mux.HandleFunc("POST /auth/signup", a.auth.Signup)
	a.mux.HandleFunc("POST /auth/login", a.auth.Login)
	a.mux.HandleFunc("GET /categories", a.categories.List)
	a.mux.HandleFunc("GET /categories/{slug}", a.categories.Get)
	a.mux.HandleFunc("GET /posts", a.posts.List)
	a.mux.HandleFunc("GET /posts/{slug}", a.posts.Get)

	// Authenticated routes
	a.mux.Handle("POST /auth/logout", auth.RequireAuth(http.HandlerFunc(a.auth.Logout)))
	a.mux.Handle("GET /users/me", auth.RequireAuth(http.HandlerFunc(a.users.Me)))
	a.mux.Handle("PATCH /users", auth.RequireAuth(http.HandlerFunc(a.users.Edit)))
	a.mux.Handle("DELETE /users", auth.RequireAuth(http.HandlerFunc(a.users.Delete)))

	// Posts: the role is checked here, ownership inside the service
	a.mux.Handle("POST /posts", a.requirePermission(policy.ResourcePost, gate.ActionCreate, a.posts.Create))
	a.mux.Handle("PATCH /posts/{slug}", a.requirePermission(policy.ResourcePost, gate.ActionUpdate, a.posts.Update))
	a.mux.Handle("DELETE /posts/{slug}", a.requirePermission(policy.ResourcePost, gate.ActionDelete, a.posts.Delete))
	a.mux.Handle("POST /posts/{slug}/publish", a.requirePermission(policy.ResourcePost, gate.ActionPublish, a.posts.Publish))
	a.mux.Handle("POST /posts/{slug}/unpublish", a.requirePermission(policy.ResourcePost, gate.ActionUnpublish, a.posts.Unpublish))

	// Admin routes
	a.mux.Handle("POST /categories", a.requireAdmin(a.categories.Create))
	a.mux.Handle("PATCH /categories/{slug}", a.requireAdmin(a.categories.Update))
	a.mux.Handle("DELETE /categories/{slug}", a.requireAdmin(a.categories.Delete))
}

func (a *App) requirePermission(resource string, action gate.Action, h http.HandlerFunc) http.Handler {
	return a.gate.RequirePermission(resource, action)(h)
}

func (a *App) requireAdmin(h http.HandlerFunc) http.Handler {
	return a.gate.RequireAdmin()(h)
}
