// Package usecase removes records that reference a deleted video, comment or
// tweet. Steps run best effort: a failed step is logged and queued as a
// pending task instead of failing the delete that triggered it.
package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"vidtube_backend/internal/feature/cascade/domain/entity"
	like "vidtube_backend/internal/feature/like/domain/entity"
	"vidtube_backend/internal/shared/ratelimiter"
)

// CleanupStore deletes dependent rows. Each method reports the rows removed.
type CleanupStore interface {
	DeleteLikes(ctx context.Context, kind like.TargetKind, targetID uuid.UUID) (int64, error)
	// DeleteVideoComments removes the video's comments and the likes on them.
	DeleteVideoComments(ctx context.Context, videoID uuid.UUID) (int64, error)
	DeleteWatchEntries(ctx context.Context, videoID uuid.UUID) (int64, error)
	DeletePlaylistEntries(ctx context.Context, videoID uuid.UUID) (int64, error)
}

// TaskRepository is the outbox of failed steps.
type TaskRepository interface {
	Enqueue(ctx context.Context, t *entity.Task) error
	Pending(ctx context.Context, limit int) ([]entity.Task, error)
	MarkDone(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, lastErr string) error
}

// Cleaner runs cascade steps and retries the ones that failed.
type Cleaner struct {
	store   CleanupStore
	tasks   TaskRepository
	limiter ratelimiter.Limiter
}

func NewCleaner(store CleanupStore, tasks TaskRepository, limiter ratelimiter.Limiter) *Cleaner {
	return &Cleaner{store: store, tasks: tasks, limiter: limiter}
}

var videoSteps = []entity.Step{
	entity.StepVideoLikes,
	entity.StepVideoComments,
	entity.StepWatchHistory,
	entity.StepPlaylistVideos,
}

// VideoDeleted removes likes, comments, watch history entries and playlist
// entries of a deleted video.
func (c *Cleaner) VideoDeleted(ctx context.Context, videoID uuid.UUID) *entity.Report {
	return c.run(ctx, videoID, videoSteps)
}

// CommentDeleted removes the likes of a deleted comment.
func (c *Cleaner) CommentDeleted(ctx context.Context, commentID uuid.UUID) *entity.Report {
	return c.run(ctx, commentID, []entity.Step{entity.StepCommentLikes})
}

// TweetDeleted removes the likes of a deleted tweet.
func (c *Cleaner) TweetDeleted(ctx context.Context, tweetID uuid.UUID) *entity.Report {
	return c.run(ctx, tweetID, []entity.Step{entity.StepTweetLikes})
}

func (c *Cleaner) run(ctx context.Context, target uuid.UUID, steps []entity.Step) *entity.Report {
	report := &entity.Report{TargetID: target, Steps: make([]entity.StepResult, 0, len(steps))}
	for _, step := range steps {
		removed, err := c.exec(ctx, step, target)
		report.Steps = append(report.Steps, entity.StepResult{Step: step, Removed: removed, Err: err})
		if err == nil {
			continue
		}
		// 1つのステップが失敗しても残りのステップは続行する
		slog.Error("cascade step failed", "step", step, "target_id", target, "error", err)
		task := &entity.Task{Step: step, TargetID: target, Status: entity.StatusPending, Attempts: 1, LastError: err.Error()}
		if qerr := c.tasks.Enqueue(context.WithoutCancel(ctx), task); qerr != nil {
			slog.Error("failed to enqueue cascade task", "step", step, "target_id", target, "error", qerr)
		}
	}
	return report
}

func (c *Cleaner) exec(ctx context.Context, step entity.Step, target uuid.UUID) (int64, error) {
	switch step {
	case entity.StepVideoLikes:
		return c.store.DeleteLikes(ctx, like.TargetVideo, target)
	case entity.StepVideoComments:
		return c.store.DeleteVideoComments(ctx, target)
	case entity.StepWatchHistory:
		return c.store.DeleteWatchEntries(ctx, target)
	case entity.StepPlaylistVideos:
		return c.store.DeletePlaylistEntries(ctx, target)
	case entity.StepCommentLikes:
		return c.store.DeleteLikes(ctx, like.TargetComment, target)
	case entity.StepTweetLikes:
		return c.store.DeleteLikes(ctx, like.TargetTweet, target)
	}
	return 0, fmt.Errorf("unknown cascade step %q", step)
}

// RetryResult counts the outcome of one RetryPending pass.
type RetryResult struct {
	Done   int
	Failed int
}

// RetryPending re-runs up to batch pending tasks, pacing them with the limiter.
// Every step is a delete, so running it again is safe.
func (c *Cleaner) RetryPending(ctx context.Context, batch int) (RetryResult, error) {
	var res RetryResult
	tasks, err := c.tasks.Pending(ctx, batch)
	if err != nil {
		return res, fmt.Errorf("failed to load pending cascade tasks: %w", err)
	}
	for _, t := range tasks {
		if err := c.limiter.Wait(ctx); err != nil {
			return res, err
		}
		removed, err := c.exec(ctx, t.Step, t.TargetID)
		if err != nil {
			res.Failed++
			slog.Warn("cascade retry failed", "task_id", t.ID, "step", t.Step, "attempts", t.Attempts+1, "error", err)
			if merr := c.tasks.MarkFailed(ctx, t.ID, err.Error()); merr != nil {
				return res, merr
			}
			continue
		}
		res.Done++
		slog.Info("cascade retry succeeded", "task_id", t.ID, "step", t.Step, "removed", removed)
		if err := c.tasks.MarkDone(ctx, t.ID); err != nil {
			return res, err
		}
	}
	return res, nil
}
