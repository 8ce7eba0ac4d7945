package models

import "time"

// Category groups posts. Only admins manage categories.
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Description *string   `gorm:"size:1000" json:"description,omitempty"`
}

// Post is an article written by an author. A post is a draft until published.
type Post struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Slug          string    `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	Excerpt       *string   `gorm:"size:1000" json:"excerpt,omitempty"`
	CoverImageURL *string   `gorm:"column:cover_image_url;size:500" json:"cover_image_url,omitempty"`
	Published     bool      `gorm:"not null;default:false" json:"published"`
	CategoryID    uint      `gorm:"index;not null" json:"category_id"`
	AuthorID      uint      `gorm:"index;not null" json:"author_id"`

	// Only declared for the foreign keys; never preloaded.
	Category *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Author   *User     `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// GetUserID returns the author, so posts satisfy the ownership policy.
func (p *Post) GetUserID() uint {
	return p.AuthorID
}

// IsDraft reports whether the post is hidden from the public listing.
func (p *Post) IsDraft() bool {
	return !p.Published
}
