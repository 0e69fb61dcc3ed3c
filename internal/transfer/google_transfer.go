package transfer

// Wire types for the Google Business Profile v4 endpoints that never made it
// into the discovery-based client (local posts and reviews).

type LocalPostMedia struct {
	MediaFormat string `json:"mediaFormat"`
	SourceURL   string `json:"sourceUrl"`
}

type LocalPost struct {
	Name      string           `json:"name,omitempty"`
	Summary   string           `json:"summary"`
	TopicType string           `json:"topicType"`
	Media     []LocalPostMedia `json:"media,omitempty"`
}

type GoogleReviewer struct {
	DisplayName     string `json:"displayName"`
	ProfilePhotoURL string `json:"profilePhotoUrl"`
}

type GoogleReviewReply struct {
	Comment    string `json:"comment"`
	UpdateTime string `json:"updateTime"`
}

type GoogleReview struct {
	ReviewID   string             `json:"reviewId"`
	Reviewer   GoogleReviewer     `json:"reviewer"`
	StarRating string             `json:"starRating"`
	Comment    string             `json:"comment"`
	CreateTime string             `json:"createTime"`
	Reply      *GoogleReviewReply `json:"reviewReply"`
}

type ListReviewsResponse struct {
	Reviews       []GoogleReview `json:"reviews"`
	NextPageToken string         `json:"nextPageToken"`
}

// RatingValue maps the v4 starRating enum to its numeric value.
// Unknown values map to 0, matching how the sync pipeline stores them.
func (r *GoogleReview) RatingValue() float64 {
	switch r.StarRating {
	case "ONE":
		return 1
	case "TWO":
		return 2
	case "THREE":
		return 3
	case "FOUR":
		return 4
	case "FIVE":
		return 5
	default:
		return 0
	}
}
