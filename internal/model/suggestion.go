package model

import "time"

// Suggestion statuses.
const (
	SuggestionPending  = "pending"
	SuggestionApproved = "approved"
	SuggestionRejected = "rejected"
)

// Suggestion is a community-submitted restaurant awaiting admin review.
type Suggestion struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	CategoryHint string    `json:"categoryHint,omitempty"`
	Lat          *float64  `json:"lat,omitempty"`
	Lng          *float64  `json:"lng,omitempty"`
	Rating       *float64  `json:"rating,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SuggestionRequest is the API request body for submitting a suggestion.
type SuggestionRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// RecategorizeRequest is the admin request to move a restaurant to a new category.
type RecategorizeRequest struct {
	Category string `json:"category"`
}

// BaseScoreRequest is the admin request to set a restaurant's base listing score.
type BaseScoreRequest struct {
	BaseScore int64 `json:"baseScore"`
}
