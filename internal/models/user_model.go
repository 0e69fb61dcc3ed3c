package models

import "time"

type User struct {
	ID                 int64     `db:"id" json:"id"`
	Email              string    `db:"email" json:"email"`
	PasswordHash       string    `db:"password_hash" json:"-"`
	FullName           string    `db:"full_name" json:"full_name"`
	GoogleAccessToken  string    `db:"google_access_token" json:"-"`
	GoogleRefreshToken string    `db:"google_refresh_token" json:"-"`
	IsActive           bool      `db:"is_active" json:"is_active"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// HasGoogleCredentials reports whether the user has connected a Google
// Business account. Tokens are stored encrypted, so any non-empty value counts.
func (u *User) HasGoogleCredentials() bool {
	return u.GoogleAccessToken != ""
}
