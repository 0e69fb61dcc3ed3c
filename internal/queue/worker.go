package queue

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/gbpflow/internal/models"
	"github.com/maheshrc27/gbpflow/internal/transfer"
)

func (q *Queue) HandlePublishPostTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	return finish(q.PublishPost(ctx, payload.PostID))
}

func (q *Queue) HandleGeneratePostTask(ctx context.Context, task *asynq.Task) error {
	var payload GeneratePostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	return finish(q.GenerateAIPost(ctx, payload.LocationID, payload.Topic, payload.PostType))
}

func (q *Queue) HandleSyncReviewsTask(ctx context.Context, task *asynq.Task) error {
	var payload SyncReviewsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	return finish(q.SyncLocationReviews(ctx, payload.LocationID))
}

func (q *Queue) HandleSyncAllTask(ctx context.Context, task *asynq.Task) error {
	count, err := q.SyncAllReviews(ctx)
	return finish(fmt.Sprintf("queued %d locations for review sync", count), err)
}

func (q *Queue) HandleReviewReplyTask(ctx context.Context, task *asynq.Task) error {
	var payload ReviewReplyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	return finish(q.GenerateAndReply(ctx, payload.ReviewID, payload.Tone))
}

// finish logs the job result and swallows terminal failures so asynq does not
// retry them. Non-terminal errors propagate and get retried.
func finish(result string, err error) error {
	if err != nil {
		if IsTerminal(err) {
			slog.Info(result, "reason", err.Error())
			return nil
		}
		slog.Error(result, "error", err.Error())
		return err
	}
	slog.Info(result)
	return nil
}

// PublishPost pushes one post to the business profile. Whatever happens after
// the post row was loaded, the post ends up PUBLISHED or FAILED; a re-publish
// of a FAILED post is an explicit re-queue, never automatic.
func (q *Queue) PublishPost(ctx context.Context, postID int64) (string, error) {
	post, err := q.pr.GetByID(ctx, postID)
	if err != nil {
		return fmt.Sprintf("error loading post %d", postID), err
	}
	if post == nil {
		return fmt.Sprintf("post %d not found", postID), ErrNotFound
	}

	location, err := q.lr.GetByID(ctx, post.LocationID)
	if err != nil {
		return fmt.Sprintf("error loading location for post %d", postID), err
	}
	if location == nil {
		return fmt.Sprintf("location not found for post %d", postID), ErrNotFound
	}

	user, found, err := q.ur.GetByID(ctx, location.UserID)
	if err != nil {
		return fmt.Sprintf("error loading user for post %d", postID), err
	}
	if !found || !user.HasGoogleCredentials() {
		if err := q.pr.UpdateStatus(ctx, models.PostStatusFailed, postID); err != nil {
			return fmt.Sprintf("error recording failure for post %d", postID), err
		}
		return fmt.Sprintf("user credentials not found for post %d", postID), ErrCredentialMissing
	}

	payload := &transfer.LocalPost{
		Summary:   post.Content,
		TopicType: post.PostType,
	}
	if post.MediaURL != "" {
		payload.Media = []transfer.LocalPostMedia{{MediaFormat: "PHOTO", SourceURL: post.MediaURL}}
	}

	created, err := q.gb.CreatePost(ctx, user, location.GoogleLocationID, payload)
	if err != nil || created == nil {
		if uerr := q.pr.UpdateStatus(ctx, models.PostStatusFailed, postID); uerr != nil {
			return fmt.Sprintf("error recording failure for post %d", postID), uerr
		}
		return fmt.Sprintf("failed to publish post %d", postID), ErrExternalCallFailed
	}

	if err := q.pr.MarkPublished(ctx, postID, created.Name, time.Now()); err != nil {
		return fmt.Sprintf("error recording publish for post %d", postID), err
	}

	return fmt.Sprintf("post %d published successfully", postID), nil
}

// PublishDuePosts is the sweep: it queues one publish job per post that is
// still SCHEDULED with a due scheduled_at, without touching the rows.
func (q *Queue) PublishDuePosts(ctx context.Context) (int, error) {
	posts, err := q.pr.GetDue(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	count := 0
	for _, post := range posts {
		if err := q.q.EnqueuePublishPost(post.ID); err != nil {
			slog.Error("failed to queue publish job", "post_id", post.ID, "error", err.Error())
			continue
		}
		count++
	}

	return count, nil
}

// GenerateAIPost creates a DRAFT post from generated content. Nothing is
// persisted when generation comes back empty.
func (q *Queue) GenerateAIPost(ctx context.Context, locationID int64, topic, postType string) (string, error) {
	location, err := q.lr.GetByID(ctx, locationID)
	if err != nil {
		return fmt.Sprintf("error loading location %d", locationID), err
	}
	if location == nil {
		return fmt.Sprintf("location %d not found", locationID), ErrNotFound
	}

	if postType == "" {
		postType = models.PostTypeUpdate
	}
	category := location.Category
	if category == "" {
		category = "business"
	}

	content, _ := q.ai.GeneratePostContent(ctx, location.Name, category, topic, postType)
	if content == "" {
		return fmt.Sprintf("failed to generate ai post for location %d", locationID), ErrGenerationFailed
	}

	post := &models.Post{
		LocationID:  locationID,
		PostType:    postType,
		Status:      models.PostStatusDraft,
		Content:     content,
		AIGenerated: true,
	}
	if _, err := q.pr.Create(ctx, nil, post); err != nil {
		return fmt.Sprintf("error saving ai post for location %d", locationID), err
	}

	return fmt.Sprintf("ai post generated for location %d", locationID), nil
}

// SyncAllReviews queues one sync job per location with auto-reply enabled.
// Locations that only want sync without auto-reply are not swept; see the
// product note in DESIGN.md before changing the gating.
func (q *Queue) SyncAllReviews(ctx context.Context) (int, error) {
	locations, err := q.lr.ListAutoReplyEnabled(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, location := range locations {
		if err := q.q.EnqueueReviewSync(location.ID); err != nil {
			slog.Error("failed to queue review sync", "location_id", location.ID, "error", err.Error())
			continue
		}
		count++
	}

	return count, nil
}

// SyncLocationReviews pulls the location's reviews, skips ones already known
// by external review id and inserts the rest in a single transaction. Reply
// jobs are dispatched only after the commit so they can see the new rows.
// Dedupe makes a retried sync safe after a mid-run failure.
func (q *Queue) SyncLocationReviews(ctx context.Context, locationID int64) (result string, err error) {
	location, err := q.lr.GetByID(ctx, locationID)
	if err != nil {
		return fmt.Sprintf("error loading location %d", locationID), err
	}
	if location == nil {
		return fmt.Sprintf("location %d not found", locationID), ErrNotFound
	}

	user, found, err := q.ur.GetByID(ctx, location.UserID)
	if err != nil {
		return fmt.Sprintf("error loading user for location %d", locationID), err
	}
	if !found || !user.HasGoogleCredentials() {
		return fmt.Sprintf("user credentials not found for location %d", locationID), ErrCredentialMissing
	}

	raws, err := q.gb.ListReviews(ctx, user, location.GoogleLocationID)
	if err != nil {
		return fmt.Sprintf("error fetching reviews for location %d", locationID), err
	}

	tx, err := q.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Sprintf("failed to start transaction for location %d", locationID), err
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		}
	}()

	var replyQueue []int64
	newCount := 0

	for _, raw := range raws {
		exists, err2 := q.rr.ExistsByGoogleID(ctx, raw.ReviewID)
		if err2 != nil {
			err = err2
			return fmt.Sprintf("error checking review %s", raw.ReviewID), err
		}
		if exists {
			continue
		}

		reviewerName := raw.Reviewer.DisplayName
		if reviewerName == "" {
			reviewerName = "Anonymous"
		}

		review := &models.Review{
			LocationID:           locationID,
			GoogleReviewID:       raw.ReviewID,
			ReviewerName:         reviewerName,
			ReviewerProfilePhoto: raw.Reviewer.ProfilePhotoURL,
			Rating:               raw.RatingValue(),
			Comment:              raw.Comment,
			ReviewCreatedAt:      parseReviewTime(raw.CreateTime),
		}

		reviewID, err2 := q.rr.Create(ctx, tx, review)
		if err2 != nil {
			err = err2
			return fmt.Sprintf("error saving review %s", raw.ReviewID), err
		}
		newCount++

		if location.AutoReplyEnabled && raw.Reply == nil {
			replyQueue = append(replyQueue, reviewID)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Sprintf("failed to commit review sync for location %d", locationID), err
	}

	for _, reviewID := range replyQueue {
		if err := q.q.EnqueueReviewReply(reviewID, DefaultReplyTone); err != nil {
			slog.Error("failed to queue review reply", "review_id", reviewID, "error", err.Error())
		}
	}

	return fmt.Sprintf("synced %d new reviews for location %d", newCount, locationID), nil
}

// parseReviewTime parses the external createTime, falling back to now when it
// is absent or malformed.
func parseReviewTime(createTime string) time.Time {
	if createTime == "" {
		return time.Now()
	}
	t, err := time.Parse(time.RFC3339, createTime)
	if err != nil {
		return time.Now()
	}
	return t
}

// GenerateAndReply writes an AI reply to a single review. The review row is
// only touched after the external reply call succeeded, so a later retry
// starts from a clean slate.
func (q *Queue) GenerateAndReply(ctx context.Context, reviewID int64, tone string) (string, error) {
	review, err := q.rr.GetByID(ctx, reviewID)
	if err != nil {
		return fmt.Sprintf("error loading review %d", reviewID), err
	}
	if review == nil {
		return fmt.Sprintf("review %d not found", reviewID), ErrNotFound
	}

	location, err := q.lr.GetByID(ctx, review.LocationID)
	if err != nil {
		return fmt.Sprintf("error loading location for review %d", reviewID), err
	}
	if location == nil {
		return fmt.Sprintf("location not found for review %d", reviewID), ErrNotFound
	}

	user, found, err := q.ur.GetByID(ctx, location.UserID)
	if err != nil {
		return fmt.Sprintf("error loading user for review %d", reviewID), err
	}
	if !found || !user.HasGoogleCredentials() {
		return fmt.Sprintf("user credentials not found for review %d", reviewID), ErrCredentialMissing
	}

	if tone == "" {
		tone = DefaultReplyTone
	}

	replyText, _ := q.ai.GenerateReviewReply(ctx, location.Name, review.ReviewerName, review.Rating, review.Comment, tone)
	if replyText == "" {
		return fmt.Sprintf("failed to generate reply for review %d", reviewID), ErrGenerationFailed
	}

	reply, err := q.gb.ReplyToReview(ctx, user, review.GoogleReviewID, replyText)
	if err != nil || reply == nil {
		return fmt.Sprintf("failed to post reply for review %d", reviewID), ErrExternalCallFailed
	}

	if err := q.rr.SetReply(ctx, reviewID, replyText, time.Now(), true); err != nil {
		return fmt.Sprintf("error saving reply for review %d", reviewID), err
	}

	return fmt.Sprintf("reply posted for review %d", reviewID), nil
}
