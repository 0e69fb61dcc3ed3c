package queue

import (
	"database/sql"
	"errors"

	"github.com/maheshrc27/gbpflow/internal/repository"
	"github.com/maheshrc27/gbpflow/internal/service"
)

const (
	TaskTypePublishPost  = "post:publish"
	TaskTypeGeneratePost = "post:generate"
	TaskTypeSyncReviews  = "review:sync"
	TaskTypeSyncAll      = "review:sync_all"
	TaskTypeReviewReply  = "review:reply"
)

const DefaultReplyTone = "professional"

type PublishPostPayload struct {
	PostID int64 `json:"post_id"`
}

type GeneratePostPayload struct {
	LocationID int64  `json:"location_id"`
	Topic      string `json:"topic"`
	PostType   string `json:"post_type"`
}

type SyncReviewsPayload struct {
	LocationID int64 `json:"location_id"`
}

type ReviewReplyPayload struct {
	ReviewID int64  `json:"review_id"`
	Tone     string `json:"tone"`
}

// Enqueuer decouples job triggering from job execution. Handlers, sweeps and
// the workers themselves dispatch through it; the asynq-backed Client is the
// production implementation.
type Enqueuer interface {
	EnqueuePublishPost(postID int64) error
	EnqueueGeneratePost(locationID int64, topic, postType string) error
	EnqueueReviewSync(locationID int64) error
	EnqueueReviewSyncAll() error
	EnqueueReviewReply(reviewID int64, tone string) error
}

// Failure taxonomy for pipeline jobs. Terminal errors are recorded and
// swallowed by the task handlers; anything else is handed back to asynq for
// a retry.
var (
	ErrNotFound           = errors.New("entity not found")
	ErrCredentialMissing  = errors.New("google credentials missing")
	ErrGenerationFailed   = errors.New("content generation failed")
	ErrExternalCallFailed = errors.New("external api call failed")
)

func IsTerminal(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrCredentialMissing) ||
		errors.Is(err, ErrGenerationFailed) ||
		errors.Is(err, ErrExternalCallFailed)
}

type Queue struct {
	db *sql.DB
	ur repository.UserRepository
	lr repository.LocationRepository
	pr repository.PostRepository
	rr repository.ReviewRepository
	gb service.GoogleBusinessService
	ai service.AIService
	q  Enqueuer
}

func NewQueue(
	db *sql.DB,
	ur repository.UserRepository,
	lr repository.LocationRepository,
	pr repository.PostRepository,
	rr repository.ReviewRepository,
	gb service.GoogleBusinessService,
	ai service.AIService,
	q Enqueuer) *Queue {
	return &Queue{
		db: db,
		ur: ur,
		lr: lr,
		pr: pr,
		rr: rr,
		gb: gb,
		ai: ai,
		q:  q,
	}
}
