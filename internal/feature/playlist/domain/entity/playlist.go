// Package entity defines the domain entities for the playlist feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vidtube_backend/internal/shared/ident"
)

// Playlist is a named, ordered set of videos.
type Playlist struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	OwnerID     uuid.UUID `gorm:"type:char(36);index;not null" json:"owner"`

	// Videos is loaded from playlist_videos in insertion order.
	Videos []uuid.UUID `gorm:"-" json:"videos"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the table name for GORM.
func (Playlist) TableName() string {
	return "playlists"
}

// BeforeCreate assigns a time-ordered id when none is set.
func (p *Playlist) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = ident.New()
	}
	return nil
}

// OwnedBy returns the creator.
func (p *Playlist) OwnedBy() uuid.UUID {
	return p.OwnerID
}

// Contains reports whether videoID is in the playlist.
func (p *Playlist) Contains(videoID uuid.UUID) bool {
	for _, id := range p.Videos {
		if id == videoID {
			return true
		}
	}
	return false
}

// PlaylistVideo is one membership row. The unique index makes adds set-union.
type PlaylistVideo struct {
	ID         uuid.UUID `gorm:"type:char(36);primaryKey"`
	PlaylistID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_playlist_video,priority:1"`
	VideoID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_playlist_video,priority:2;index:idx_playlist_videos_video"`
	CreatedAt  time.Time
}

// TableName returns the table name for GORM.
func (PlaylistVideo) TableName() string {
	return "playlist_videos"
}

// BeforeCreate assigns a time-ordered id when none is set.
func (pv *PlaylistVideo) BeforeCreate(*gorm.DB) error {
	if pv.ID == uuid.Nil {
		pv.ID = ident.New()
	}
	return nil
}
