package transfer

// ReviewUpdate is a partial update, mainly for manual reply edits.
// Only non-nil fields are applied.
type ReviewUpdate struct {
	ReplyText *string `json:"reply_text"`
}

type ReviewReplyRequest struct {
	ReplyText string `json:"reply_text"`
}

type ReplyGeneration struct {
	Tone string `json:"tone"`
}

type ReviewSyncRequest struct {
	LocationID int64 `json:"location_id"`
}
