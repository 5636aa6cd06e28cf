// Package entity defines the domain entities for the video feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vidtube_backend/internal/shared/ident"
)

// Video is an uploaded video and its metadata.
type Video struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	OwnerID     uuid.UUID `gorm:"type:char(36);index;not null" json:"owner"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	VideoFile   string    `gorm:"size:1024;not null" json:"videoFile"`
	Thumbnail   string    `gorm:"size:1024;not null" json:"thumbnail"`
	// Duration is in seconds.
	Duration    float64   `json:"duration"`
	Views       int64     `gorm:"not null" json:"views"`
	IsPublished bool      `gorm:"index;not null" json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName returns the table name for GORM.
func (Video) TableName() string {
	return "videos"
}

// BeforeCreate assigns a time-ordered id when none is set.
func (v *Video) BeforeCreate(*gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = ident.New()
	}
	return nil
}

// OwnedBy returns the publishing user.
func (v *Video) OwnedBy() uuid.UUID {
	return v.OwnerID
}

// VisibleTo reports whether actor may see the video. Unpublished videos are
// visible to their owner only.
func (v *Video) VisibleTo(actor uuid.UUID) bool {
	return v.IsPublished || (actor != uuid.Nil && actor == v.OwnerID)
}

// VisibleScope restricts a video query to the rows VisibleTo would allow.
func VisibleScope(actor uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if actor == uuid.Nil {
			return db.Where("is_published = ?", true)
		}
		return db.Where("(is_published = ? OR owner_id = ?)", true, actor)
	}
}
