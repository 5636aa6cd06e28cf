// Package entity defines the domain entities for the comment feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vidtube_backend/internal/shared/ident"
)

// Comment is a user's comment on a video.
type Comment struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	VideoID   uuid.UUID `gorm:"type:char(36);index;not null" json:"video"`
	OwnerID   uuid.UUID `gorm:"type:char(36);index;not null" json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the table name for GORM.
func (Comment) TableName() string {
	return "comments"
}

// BeforeCreate assigns a time-ordered id when none is set.
func (c *Comment) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = ident.New()
	}
	return nil
}

// OwnedBy returns the author.
func (c *Comment) OwnedBy() uuid.UUID {
	return c.OwnerID
}
