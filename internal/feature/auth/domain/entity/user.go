// Package entity defines the domain entities for the auth feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vidtube_backend/internal/shared/ident"
)

// User represents a registered account and the channel it publishes under.
type User struct {
	// ID is the unique identifier for the user.
	ID uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`

	// Username is stored lower-cased, which makes its uniqueness case-insensitive.
	Username string `gorm:"uniqueIndex;size:64;not null" json:"username"`

	// Email is the user's email address. It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	FullName   string `gorm:"size:255;not null" json:"fullName"`
	Avatar     string `gorm:"size:1024;not null" json:"avatar"`
	CoverImage string `gorm:"size:1024" json:"coverImage"`

	// Password is the bcrypt hash. It is never serialized.
	Password string `gorm:"size:255;not null" json:"-"`

	// RefreshToken holds the only valid rotation token, or nil when signed out.
	RefreshToken *string `gorm:"size:1024" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the table name for GORM.
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a time-ordered id when none is set.
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = ident.New()
	}
	return nil
}

// WatchEntry is one element of a user's watch history. Each view appends a
// new entry, so the history is most-recent-first when read by id descending
// and may contain the same video several times.
type WatchEntry struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `gorm:"type:char(36);index;not null"`
	VideoID   uuid.UUID `gorm:"type:char(36);index;not null"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM.
func (WatchEntry) TableName() string {
	return "watch_entries"
}

// BeforeCreate assigns a time-ordered id when none is set.
func (w *WatchEntry) BeforeCreate(*gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = ident.New()
	}
	return nil
}
