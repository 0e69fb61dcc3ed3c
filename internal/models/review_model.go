package models

import "time"

type Review struct {
	ID                   int64      `db:"id" json:"id"`
	LocationID           int64      `db:"location_id" json:"location_id"`
	GoogleReviewID       string     `db:"google_review_id" json:"google_review_id"`
	ReviewerName         string     `db:"reviewer_name" json:"reviewer_name"`
	ReviewerProfilePhoto string     `db:"reviewer_profile_photo" json:"reviewer_profile_photo"`
	Rating               float64    `db:"rating" json:"rating"`
	Comment              string     `db:"comment" json:"comment"`
	ReplyText            string     `db:"reply_text" json:"reply_text"`
	ReplyAt              *time.Time `db:"reply_at" json:"reply_at"`
	AIGeneratedReply     bool       `db:"ai_generated_reply" json:"ai_generated_reply"`
	ReviewCreatedAt      time.Time  `db:"review_created_at" json:"review_created_at"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}
