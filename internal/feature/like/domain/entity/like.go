// Package entity defines the domain entities for the like feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vidtube_backend/internal/shared/apperror"
	"vidtube_backend/internal/shared/ident"
)

// TargetKind names the kind of resource a like points at.
type TargetKind string

const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
	TargetTweet   TargetKind = "tweet"
)

// ErrInvalidTarget is returned when a like target has an unknown kind or no id.
var ErrInvalidTarget = apperror.Validation("invalid like target")

// Valid reports whether k is one of the known kinds.
func (k TargetKind) Valid() bool {
	switch k {
	case TargetVideo, TargetComment, TargetTweet:
		return true
	}
	return false
}

// Target identifies exactly one likeable resource.
type Target struct {
	Kind TargetKind `json:"kind"`
	ID   uuid.UUID  `json:"id"`
}

// NewTarget validates kind and id.
func NewTarget(kind TargetKind, id uuid.UUID) (Target, error) {
	if !kind.Valid() || id == uuid.Nil {
		return Target{}, ErrInvalidTarget
	}
	return Target{Kind: kind, ID: id}, nil
}

// Like is a directed edge from a user to a target. A user may like a given
// target at most once, enforced by the unique index on (owner, kind, target).
type Like struct {
	ID         uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	OwnerID    uuid.UUID  `gorm:"type:char(36);not null;uniqueIndex:idx_like_edge,priority:1" json:"likedBy"`
	TargetKind TargetKind `gorm:"size:16;not null;uniqueIndex:idx_like_edge,priority:2;index:idx_like_target,priority:1" json:"targetKind"`
	TargetID   uuid.UUID  `gorm:"type:char(36);not null;uniqueIndex:idx_like_edge,priority:3;index:idx_like_target,priority:2" json:"targetId"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// TableName returns the table name for GORM.
func (Like) TableName() string {
	return "likes"
}

// BeforeCreate assigns a time-ordered id when none is set.
func (l *Like) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = ident.New()
	}
	return nil
}

// Target returns the liked resource.
func (l *Like) Target() Target {
	return Target{Kind: l.TargetKind, ID: l.TargetID}
}
