package service

import (
	"context"
	"errors"
	"time"

	"github.com/maheshrc27/gbpflow/internal/models"
	"github.com/maheshrc27/gbpflow/internal/repository"
	"github.com/maheshrc27/gbpflow/internal/transfer"
)

var ErrReviewNotFound = errors.New("review not found")

type ReviewService interface {
	ListReviews(ctx context.Context, userID, locationID int64, page, limit int) ([]*models.Review, error)
	GetReview(ctx context.Context, userID, reviewID int64) (*models.Review, error)
	UpdateReview(ctx context.Context, userID, reviewID int64, t *transfer.ReviewUpdate) (*models.Review, error)
	Reply(ctx context.Context, userID, reviewID int64, replyText string) (*models.Review, error)
	GenerateReplyPreview(ctx context.Context, userID, reviewID int64, tone string) (string, error)
}

type reviewService struct {
	l  repository.LocationRepository
	r  repository.ReviewRepository
	u  repository.UserRepository
	gb GoogleBusinessService
	ai AIService
}

func NewReviewService(
	l repository.LocationRepository,
	r repository.ReviewRepository,
	u repository.UserRepository,
	gb GoogleBusinessService,
	ai AIService) ReviewService {
	return &reviewService{
		l:  l,
		r:  r,
		u:  u,
		gb: gb,
		ai: ai,
	}
}

func (s *reviewService) ListReviews(ctx context.Context, userID, locationID int64, page, limit int) ([]*models.Review, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	return s.r.ListByUserID(ctx, userID, locationID, (page-1)*limit, limit)
}

func (s *reviewService) GetReview(ctx context.Context, userID, reviewID int64) (*models.Review, error) {
	isOwner, err := s.r.CheckByUserID(ctx, reviewID, userID)
	if err != nil {
		return nil, err
	}
	if !isOwner {
		return nil, ErrReviewNotFound
	}

	review, err := s.r.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}

	return review, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, userID, reviewID int64, t *transfer.ReviewUpdate) (*models.Review, error) {
	review, err := s.GetReview(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}

	if t.ReplyText != nil {
		repliedAt := time.Now()
		if err := s.r.SetReply(ctx, reviewID, *t.ReplyText, repliedAt, false); err != nil {
			return nil, err
		}
		review.ReplyText = *t.ReplyText
		review.ReplyAt = &repliedAt
		review.AIGeneratedReply = false
	}

	return review, nil
}

// Reply posts a manual reply through the business profile, then records it.
func (s *reviewService) Reply(ctx context.Context, userID, reviewID int64, replyText string) (*models.Review, error) {
	if replyText == "" {
		return nil, errors.New("reply text is required")
	}

	review, err := s.GetReview(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}

	user, isExist, err := s.u.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !isExist || !user.HasGoogleCredentials() {
		return nil, errors.New("google account is not connected")
	}

	if _, err := s.gb.ReplyToReview(ctx, user, review.GoogleReviewID, replyText); err != nil {
		return nil, err
	}

	repliedAt := time.Now()
	if err := s.r.SetReply(ctx, reviewID, replyText, repliedAt, false); err != nil {
		return nil, err
	}

	review.ReplyText = replyText
	review.ReplyAt = &repliedAt
	review.AIGeneratedReply = false

	return review, nil
}

// GenerateReplyPreview returns AI copy for the caller to review before
// posting. Nothing is sent to Google and nothing is persisted.
func (s *reviewService) GenerateReplyPreview(ctx context.Context, userID, reviewID int64, tone string) (string, error) {
	review, err := s.GetReview(ctx, userID, reviewID)
	if err != nil {
		return "", err
	}

	location, err := s.l.GetByID(ctx, review.LocationID)
	if err != nil {
		return "", err
	}
	if location == nil {
		return "", ErrLocationNotFound
	}

	if tone == "" {
		tone = "professional"
	}

	replyText, err := s.ai.GenerateReviewReply(ctx, location.Name, review.ReviewerName, review.Rating, review.Comment, tone)
	if err != nil {
		return "", err
	}
	if replyText == "" {
		return "", errors.New("failed to generate reply")
	}

	return replyText, nil
}
