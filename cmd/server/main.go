package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diewo77/go-press/auth"
	"github.com/diewo77/go-press/internal/config"
	"github.com/diewo77/go-press/internal/db"
	"github.com/diewo77/go-press/internal/logging"
	"github.com/joho/godotenv"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Seed the admin account and exit")
)

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.App.LogLevel)

	if cfg.UsesDevSecret() && !cfg.App.Dev {
		log.Fatal("JWT_SECRET must be set outside dev mode")
	}
	if cfg.UsesDevSecret() {
		log.Warn("using the development JWT secret")
	}

	conn, err := db.Open(cfg.Database.URL, cfg.App.Dev)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	if *migrateOnlyFlag {
		if err := db.Migrate(conn); err != nil {
			log.WithError(err).Fatal("migration failed")
		}
		log.Info("migrations completed")
		return
	}
	if *seedOnlyFlag {
		if err := db.SeedAdmin(conn, cfg.Admin, hasher); err != nil {
			log.WithError(err).Fatal("seeding failed")
		}
		log.Info("seeding completed")
		return
	}

	if cfg.App.Migrations {
		if err := db.Migrate(conn); err != nil {
			log.WithError(err).Fatal("migration failed")
		}
		log.Info("migrations completed")
	}
	if err := db.SeedAdmin(conn, cfg.Admin, hasher); err != nil {
		if !errors.Is(err, db.ErrAdminUsernameTaken) {
			log.WithError(err).Fatal("seeding failed")
		}
		log.WithField("username", cfg.Admin.Username).Warn("admin account not seeded: username already taken")
	}

	tokens := auth.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	app := NewApp(conn, hasher, tokens, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      app,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Server.Port).WithField("dev", cfg.App.Dev).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("error during shutdown")
	}
	log.Info("server stopped")
}
