// Package entity defines the domain entities for the tweet feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vidtube_backend/internal/shared/ident"
)

// Tweet is a short text post on a user's channel.
type Tweet struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	OwnerID   uuid.UUID `gorm:"type:char(36);index;not null" json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the table name for GORM.
func (Tweet) TableName() string {
	return "tweets"
}

// BeforeCreate assigns a time-ordered id when none is set.
func (t *Tweet) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = ident.New()
	}
	return nil
}

// OwnedBy returns the author.
func (t *Tweet) OwnedBy() uuid.UUID {
	return t.OwnerID
}
