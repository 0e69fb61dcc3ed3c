package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/maheshrc27/gbpflow/internal/models"
)

type PostRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	ListByUserID(ctx context.Context, userID, locationID int64, offset, limit int) ([]*models.Post, error)
	GetDue(ctx context.Context, now time.Time) ([]*models.Post, error)
	Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error)
	Update(ctx context.Context, post *models.Post) error
	UpdateStatus(ctx context.Context, status string, postID int64) error
	MarkPublished(ctx context.Context, postID int64, googlePostID string, publishedAt time.Time) error
	CheckByUserID(ctx context.Context, postID, userID int64) (bool, error)
	Remove(ctx context.Context, id int64) error
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, location_id, google_post_id, post_type, status, title, content, media_url, scheduled_at, published_at, ai_generated, created_at, updated_at`

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var post models.Post
	err := row.Scan(&post.ID, &post.LocationID, &post.GooglePostID, &post.PostType, &post.Status,
		&post.Title, &post.Content, &post.MediaURL, &post.ScheduledAt, &post.PublishedAt,
		&post.AIGenerated, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &post, nil
}

func (r *postRepository) ListByUserID(ctx context.Context, userID, locationID int64, offset, limit int) ([]*models.Post, error) {
	query := `
		SELECT p.id, p.location_id, p.google_post_id, p.post_type, p.status, p.title, p.content, p.media_url, p.scheduled_at, p.published_at, p.ai_generated, p.created_at, p.updated_at
		FROM posts p
		JOIN locations l ON l.id = p.location_id
		WHERE l.user_id = $1 AND ($2 = 0 OR p.location_id = $2)
		ORDER BY p.id
		OFFSET $3 LIMIT $4
	`
	rows, err := r.db.QueryContext(ctx, query, userID, locationID, offset, limit)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	return collectPosts(rows)
}

// GetDue returns posts eligible for the publish sweep: still SCHEDULED with a
// scheduled_at at or before now.
func (r *postRepository) GetDue(ctx context.Context, now time.Time) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE status = $1 AND scheduled_at IS NOT NULL AND scheduled_at <= $2`
	rows, err := r.db.QueryContext(ctx, query, models.PostStatusScheduled, now)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	return collectPosts(rows)
}

func collectPosts(rows *sql.Rows) ([]*models.Post, error) {
	var posts []*models.Post
	for rows.Next() {
		var post models.Post
		err := rows.Scan(&post.ID, &post.LocationID, &post.GooglePostID, &post.PostType, &post.Status,
			&post.Title, &post.Content, &post.MediaURL, &post.ScheduledAt, &post.PublishedAt,
			&post.AIGenerated, &post.CreatedAt, &post.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, &post)
	}
	return posts, rows.Err()
}

func (r *postRepository) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error) {
	query := `
		INSERT INTO posts (location_id, post_type, status, title, content, media_url, scheduled_at, ai_generated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	var err error

	args := []interface{}{post.LocationID, post.PostType, post.Status, post.Title, post.Content,
		post.MediaURL, post.ScheduledAt, post.AIGenerated}

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

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET post_type = $1,
			status = $2,
			title = $3,
			content = $4,
			media_url = $5,
			scheduled_at = $6,
			updated_at = $7
		WHERE id = $8
	`
	_, err := r.db.ExecContext(ctx, query, post.PostType, post.Status, post.Title, post.Content,
		post.MediaURL, post.ScheduledAt, time.Now(), post.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) UpdateStatus(ctx context.Context, status string, postID int64) error {
	query := `
		UPDATE posts
		SET status = $1,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// MarkPublished records a successful publish in a single write so that
// status, published_at and the external post id always change together.
func (r *postRepository) MarkPublished(ctx context.Context, postID int64, googlePostID string, publishedAt time.Time) error {
	query := `
		UPDATE posts
		SET status = $1,
			google_post_id = $2,
			published_at = $3,
			updated_at = $4
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query, models.PostStatusPublished, googlePostID, publishedAt, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) CheckByUserID(ctx context.Context, postID, userID int64) (bool, error) {
	query := `
		SELECT 1 FROM posts p
		JOIN locations l ON l.id = p.location_id
		WHERE p.id = $1 AND l.user_id = $2
	`

	var result int
	err := r.db.QueryRowContext(ctx, query, postID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

func (r *postRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM posts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
