// Package entity defines the outbox entity for cascade cleanup.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vidtube_backend/internal/shared/ident"
)

// Step names a single cleanup action triggered by a delete.
type Step string

const (
	// StepVideoLikes removes likes whose target is the deleted video.
	StepVideoLikes Step = "video_likes"
	// StepVideoComments removes the video's comments and the likes on them.
	StepVideoComments Step = "video_comments"
	// StepWatchHistory removes the video from every watch history.
	StepWatchHistory Step = "watch_history"
	// StepPlaylistVideos removes the video from every playlist.
	StepPlaylistVideos Step = "playlist_videos"
	// StepCommentLikes removes likes whose target is the deleted comment.
	StepCommentLikes Step = "comment_likes"
	// StepTweetLikes removes likes whose target is the deleted tweet.
	StepTweetLikes Step = "tweet_likes"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
)

// Task is an outbox row for a cascade step that failed and must be retried.
type Task struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Step      Step      `gorm:"size:32;not null" json:"step"`
	TargetID  uuid.UUID `gorm:"type:char(36);not null" json:"targetId"`
	Status    Status    `gorm:"size:16;index;not null" json:"status"`
	Attempts  int       `gorm:"not null" json:"attempts"`
	LastError string    `gorm:"type:text" json:"lastError"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the table name for GORM.
func (Task) TableName() string {
	return "cascade_tasks"
}

// BeforeCreate assigns a time-ordered id when none is set.
func (t *Task) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = ident.New()
	}
	return nil
}

// StepResult is the outcome of one cascade step.
type StepResult struct {
	Step    Step  `json:"step"`
	Removed int64 `json:"removed"`
	// Err is set when the step failed and was queued for retry.
	Err error `json:"-"`
}

// Report summarizes the cascade run after a delete.
type Report struct {
	TargetID uuid.UUID    `json:"targetId"`
	Steps    []StepResult `json:"steps"`
}

// Failed returns the steps that did not complete.
func (r *Report) Failed() []Step {
	if r == nil {
		return nil
	}
	var out []Step
	for _, s := range r.Steps {
		if s.Err != nil {
			out = append(out, s.Step)
		}
	}
	return out
}
