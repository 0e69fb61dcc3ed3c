package job

import (
	"context"
	"log/slog"

	"github.com/maheshrc27/gbpflow/internal/queue"
)

// SweepJob is the cron-facing side of the pipeline. It only counts and
// enqueues; the asynq workers do the actual publishing and syncing.
type SweepJob struct {
	w *queue.Queue
	q queue.Enqueuer
}

func NewSweepJob(w *queue.Queue, q queue.Enqueuer) *SweepJob {
	return &SweepJob{w: w, q: q}
}

func (j *SweepJob) PublishScheduledPosts() {
	ctx := context.Background()

	count, err := j.w.PublishDuePosts(ctx)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	if count > 0 {
		slog.Info("queued scheduled posts for publishing", "count", count)
	}
}

func (j *SweepJob) SyncReviews() {
	if err := j.q.EnqueueReviewSyncAll(); err != nil {
		slog.Info(err.Error())
	}
}
