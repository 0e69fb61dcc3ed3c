package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/maheshrc27/gbpflow/internal/models"
)

type LocationRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Location, error)
	GetByGoogleID(ctx context.Context, googleLocationID string) (*models.Location, error)
	ListByUserID(ctx context.Context, userID int64, offset, limit int) ([]*models.Location, error)
	ListAutoReplyEnabled(ctx context.Context) ([]*models.Location, error)
	Create(ctx context.Context, tx *sql.Tx, location *models.Location) (int64, error)
	Update(ctx context.Context, location *models.Location) error
	CheckByUserID(ctx context.Context, locationID, userID int64) (bool, error)
	Remove(ctx context.Context, id int64) error
}

type locationRepository struct {
	db *sql.DB
}

func NewLocationRepository(db *sql.DB) LocationRepository {
	return &locationRepository{db: db}
}

const locationColumns = `id, user_id, google_location_id, name, address, phone, website, category, auto_reply_enabled, auto_post_enabled, created_at, updated_at`

func scanLocation(row *sql.Row) (*models.Location, error) {
	var l models.Location
	err := row.Scan(&l.ID, &l.UserID, &l.GoogleLocationID, &l.Name, &l.Address, &l.Phone,
		&l.Website, &l.Category, &l.AutoReplyEnabled, &l.AutoPostEnabled, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return &l, nil
}

func (r *locationRepository) GetByID(ctx context.Context, id int64) (*models.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = $1`
	return scanLocation(r.db.QueryRowContext(ctx, query, id))
}

func (r *locationRepository) GetByGoogleID(ctx context.Context, googleLocationID string) (*models.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE google_location_id = $1`
	return scanLocation(r.db.QueryRowContext(ctx, query, googleLocationID))
}

func (r *locationRepository) ListByUserID(ctx context.Context, userID int64, offset, limit int) ([]*models.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE user_id = $1 ORDER BY id OFFSET $2 LIMIT $3`
	rows, err := r.db.QueryContext(ctx, query, userID, offset, limit)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	return collectLocations(rows)
}

func (r *locationRepository) ListAutoReplyEnabled(ctx context.Context) ([]*models.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE auto_reply_enabled = TRUE`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	return collectLocations(rows)
}

func collectLocations(rows *sql.Rows) ([]*models.Location, error) {
	var locations []*models.Location
	for rows.Next() {
		var l models.Location
		err := rows.Scan(&l.ID, &l.UserID, &l.GoogleLocationID, &l.Name, &l.Address, &l.Phone,
			&l.Website, &l.Category, &l.AutoReplyEnabled, &l.AutoPostEnabled, &l.CreatedAt, &l.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		locations = append(locations, &l)
	}
	return locations, rows.Err()
}

func (r *locationRepository) Create(ctx context.Context, tx *sql.Tx, location *models.Location) (int64, error) {
	query := `
		INSERT INTO locations (user_id, google_location_id, name, address, phone, website, category, auto_reply_enabled, auto_post_enabled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	var id int64
	var err error

	args := []interface{}{location.UserID, location.GoogleLocationID, location.Name, location.Address,
		location.Phone, location.Website, location.Category, location.AutoReplyEnabled, location.AutoPostEnabled}

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

func (r *locationRepository) Update(ctx context.Context, location *models.Location) error {
	query := `
		UPDATE locations
		SET name = $1,
			address = $2,
			phone = $3,
			website = $4,
			category = $5,
			auto_reply_enabled = $6,
			auto_post_enabled = $7,
			updated_at = $8
		WHERE id = $9
	`
	_, err := r.db.ExecContext(ctx, query, location.Name, location.Address, location.Phone,
		location.Website, location.Category, location.AutoReplyEnabled, location.AutoPostEnabled,
		time.Now(), location.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *locationRepository) CheckByUserID(ctx context.Context, locationID, userID int64) (bool, error) {
	query := `SELECT 1 FROM locations WHERE id = $1 AND user_id = $2`

	var result int
	err := r.db.QueryRowContext(ctx, query, locationID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

func (r *locationRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM locations WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
