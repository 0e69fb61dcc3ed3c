package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/maheshrc27/gbpflow/internal/models"
)

type ReviewRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Review, error)
	ListByUserID(ctx context.Context, userID, locationID int64, offset, limit int) ([]*models.Review, error)
	ExistsByGoogleID(ctx context.Context, googleReviewID string) (bool, error)
	Create(ctx context.Context, tx *sql.Tx, review *models.Review) (int64, error)
	SetReply(ctx context.Context, reviewID int64, replyText string, repliedAt time.Time, aiGenerated bool) error
	CheckByUserID(ctx context.Context, reviewID, userID int64) (bool, error)
}

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

const reviewColumns = `id, location_id, google_review_id, reviewer_name, reviewer_profile_photo, rating, comment, reply_text, reply_at, ai_generated_reply, review_created_at, created_at, updated_at`

func (r *reviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var review models.Review
	err := row.Scan(&review.ID, &review.LocationID, &review.GoogleReviewID, &review.ReviewerName,
		&review.ReviewerProfilePhoto, &review.Rating, &review.Comment, &review.ReplyText,
		&review.ReplyAt, &review.AIGeneratedReply, &review.ReviewCreatedAt,
		&review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &review, nil
}

func (r *reviewRepository) ListByUserID(ctx context.Context, userID, locationID int64, offset, limit int) ([]*models.Review, error) {
	query := `
		SELECT r.id, r.location_id, r.google_review_id, r.reviewer_name, r.reviewer_profile_photo, r.rating, r.comment, r.reply_text, r.reply_at, r.ai_generated_reply, r.review_created_at, r.created_at, r.updated_at
		FROM reviews r
		JOIN locations l ON l.id = r.location_id
		WHERE l.user_id = $1 AND ($2 = 0 OR r.location_id = $2)
		ORDER BY r.review_created_at DESC
		OFFSET $3 LIMIT $4
	`
	rows, err := r.db.QueryContext(ctx, query, userID, locationID, offset, limit)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		var review models.Review
		err := rows.Scan(&review.ID, &review.LocationID, &review.GoogleReviewID, &review.ReviewerName,
			&review.ReviewerProfilePhoto, &review.Rating, &review.Comment, &review.ReplyText,
			&review.ReplyAt, &review.AIGeneratedReply, &review.ReviewCreatedAt,
			&review.CreatedAt, &review.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		reviews = append(reviews, &review)
	}
	return reviews, rows.Err()
}

func (r *reviewRepository) ExistsByGoogleID(ctx context.Context, googleReviewID string) (bool, error) {
	query := `SELECT 1 FROM reviews WHERE google_review_id = $1`

	var result int
	err := r.db.QueryRowContext(ctx, query, googleReviewID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

func (r *reviewRepository) Create(ctx context.Context, tx *sql.Tx, review *models.Review) (int64, error) {
	query := `
		INSERT INTO reviews (location_id, google_review_id, reviewer_name, reviewer_profile_photo, rating, comment, review_created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	var err error

	args := []interface{}{review.LocationID, review.GoogleReviewID, review.ReviewerName,
		review.ReviewerProfilePhoto, review.Rating, review.Comment, review.ReviewCreatedAt}

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, args...).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, args...).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

// SetReply writes all reply fields together so they are either all set or all
// unset, never a partial reply.
func (r *reviewRepository) SetReply(ctx context.Context, reviewID int64, replyText string, repliedAt time.Time, aiGenerated bool) error {
	query := `
		UPDATE reviews
		SET reply_text = $1,
			reply_at = $2,
			ai_generated_reply = $3,
			updated_at = $4
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query, replyText, repliedAt, aiGenerated, time.Now(), reviewID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *reviewRepository) CheckByUserID(ctx context.Context, reviewID, userID int64) (bool, error) {
	query := `
		SELECT 1 FROM reviews r
		JOIN locations l ON l.id = r.location_id
		WHERE r.id = $1 AND l.user_id = $2
	`

	var result int
	err := r.db.QueryRowContext(ctx, query, reviewID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}
