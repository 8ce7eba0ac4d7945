package db

import (
	"github.com/diewo77/go-press/auth"
	"github.com/diewo77/go-press/internal/config"
	"github.com/diewo77/go-press/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Migrate runs AutoMigrate for all models.
// The unique indexes it creates on users.email, users.username, categories.slug and
// posts.slug are the system of record for uniqueness.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Post{},
	)
}

// ErrAdminUsernameTaken is returned by SeedAdmin when another account, with a
// different email, already holds the configured admin username.
var ErrAdminUsernameTaken = errors.New("admin username held by another account")

// SeedAdmin creates the configured admin account, or promotes an existing account
// with that email to ADMIN. It is a no-op when no admin is configured.
func SeedAdmin(db *gorm.DB, admin config.AdminConfig, hasher auth.PasswordHasher) error {
	if !admin.Enabled() {
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", admin.Email).First(&existing).Error
	if err == nil {
		if existing.Role == models.RoleAdmin {
			return nil
		}
		return db.Model(&existing).Update("role", models.RoleAdmin).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrap(err, "look up admin")
	}

	var holder int64
	if err := db.Model(&models.User{}).Where("username = ?", admin.Username).Count(&holder).Error; err != nil {
		return errors.Wrap(err, "look up admin username")
	}
	if holder > 0 {
		return ErrAdminUsernameTaken
	}

	digest, err := hasher.Hash(admin.Password)
	if err != nil {
		return errors.Wrap(err, "hash admin password")
	}
	user := models.User{
		Email:          admin.Email,
		Username:       admin.Username,
		PasswordDigest: digest,
		FirstName:      "Site",
		LastName:       "Admin",
		Role:           models.RoleAdmin,
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAdminUsernameTaken
		}
		return errors.Wrap(err, "create admin")
	}
	return nil
}
