// Package entity defines the domain entities for the subscription feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vidtube_backend/internal/shared/ident"
)

// Subscription is a directed edge from a subscriber to a channel (both users).
// Unique per pair; a user never subscribes to themselves.
type Subscription struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	SubscriberID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_subscription_edge,priority:1" json:"subscriber"`
	ChannelID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_subscription_edge,priority:2;index:idx_subscriptions_channel" json:"channel"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TableName returns the table name for GORM.
func (Subscription) TableName() string {
	return "subscriptions"
}

// BeforeCreate assigns a time-ordered id when none is set.
func (s *Subscription) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = ident.New()
	}
	return nil
}
