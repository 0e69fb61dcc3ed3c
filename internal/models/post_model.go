package models

import "time"

type Post struct {
	ID           int64      `db:"id" json:"id"`
	LocationID   int64      `db:"location_id" json:"location_id"`
	GooglePostID string     `db:"google_post_id" json:"google_post_id"`
	PostType     string     `db:"post_type" json:"post_type"`
	Status       string     `db:"status" json:"status"`
	Title        string     `db:"title" json:"title"`
	Content      string     `db:"content" json:"content"`
	MediaURL     string     `db:"media_url" json:"media_url"`
	ScheduledAt  *time.Time `db:"scheduled_at" json:"scheduled_at"`
	PublishedAt  *time.Time `db:"published_at" json:"published_at"`
	AIGenerated  bool       `db:"ai_generated" json:"ai_generated"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

const (
	PostStatusDraft     = "DRAFT"
	PostStatusScheduled = "SCHEDULED"
	PostStatusPublished = "PUBLISHED"
	PostStatusFailed    = "FAILED"
)

const (
	PostTypeUpdate = "UPDATE"
	PostTypeEvent  = "EVENT"
	PostTypeOffer  = "OFFER"
)

func IsValidPostType(t string) bool {
	return t == PostTypeUpdate || t == PostTypeEvent || t == PostTypeOffer
}
