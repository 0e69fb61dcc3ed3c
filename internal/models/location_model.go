package models

import "time"

type Location struct {
	ID               int64     `db:"id" json:"id"`
	UserID           int64     `db:"user_id" json:"user_id"`
	GoogleLocationID string    `db:"google_location_id" json:"google_location_id"`
	Name             string    `db:"name" json:"name"`
	Address          string    `db:"address" json:"address"`
	Phone            string    `db:"phone" json:"phone"`
	Website          string    `db:"website" json:"website"`
	Category         string    `db:"category" json:"category"`
	AutoReplyEnabled bool      `db:"auto_reply_enabled" json:"auto_reply_enabled"`
	AutoPostEnabled  bool      `db:"auto_post_enabled" json:"auto_post_enabled"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}
