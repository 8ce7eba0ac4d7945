package models

import "time"

// Role is the coarse permission tier of an account.
type Role string

const (
	RoleReader Role = "READER"
	RoleAuthor Role = "AUTHOR"
	RoleAdmin  Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleReader, RoleAuthor, RoleAdmin:
		return true
	}
	return false
}

// User represents an account that can sign in and, depending on its role, publish.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Email          string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Username       string    `gorm:"uniqueIndex;size:100;not null" json:"username"`
	PasswordDigest string    `gorm:"column:password_digest;size:255;not null" json:"-"` // Hashed, never exposed in JSON
	FirstName      string    `gorm:"size:100;not null" json:"first_name"`
	LastName       string    `gorm:"size:100;not null" json:"last_name"`
	Bio            *string   `gorm:"size:2000" json:"bio,omitempty"`
	AvatarURL      *string   `gorm:"column:avatar_url;size:500" json:"avatar_url,omitempty"`
	Role           Role      `gorm:"type:varchar(16);not null;default:READER" json:"role"`
}
