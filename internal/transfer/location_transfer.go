package transfer

type LocationCreation struct {
	GoogleLocationID string `json:"google_location_id"`
	Name             string `json:"name"`
	Address          string `json:"address"`
	Phone            string `json:"phone"`
	Website          string `json:"website"`
	Category         string `json:"category"`
	AutoReplyEnabled bool   `json:"auto_reply_enabled"`
	AutoPostEnabled  bool   `json:"auto_post_enabled"`
}

// LocationUpdate is a partial update. Only non-nil fields are applied.
type LocationUpdate struct {
	Name             *string `json:"name"`
	Address          *string `json:"address"`
	Phone            *string `json:"phone"`
	Website          *string `json:"website"`
	Category         *string `json:"category"`
	AutoReplyEnabled *bool   `json:"auto_reply_enabled"`
	AutoPostEnabled  *bool   `json:"auto_post_enabled"`
}
