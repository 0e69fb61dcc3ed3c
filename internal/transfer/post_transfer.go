package transfer

type PostCreation struct {
	LocationID  int64  `json:"location_id"`
	PostType    string `json:"post_type"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	MediaURL    string `json:"media_url"`
	ScheduledAt string `json:"scheduled_at"`
}

// PostUpdate is a partial update. Only non-nil fields are applied.
type PostUpdate struct {
	PostType    *string `json:"post_type"`
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	MediaURL    *string `json:"media_url"`
	ScheduledAt *string `json:"scheduled_at"`
}

type PostGeneration struct {
	LocationID int64  `json:"location_id"`
	Topic      string `json:"topic"`
	PostType   string `json:"post_type"`
}
