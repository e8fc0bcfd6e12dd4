package model

import "time"

// Restaurant is a listed restaurant eligible for votes.
type Restaurant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	BaseScore int64     `json:"baseScore"`
	Address   string    `json:"address,omitempty"`
	Lat       *float64  `json:"lat,omitempty"`
	Lng       *float64  `json:"lng,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"lastUpdated"`
}

// RankedRestaurant is a restaurant paired with its composed display total.
type RankedRestaurant struct {
	Restaurant
	Total int64 `json:"total"`
}

// BoardResponse is the API response for the grouped leaderboard.
type BoardResponse struct {
	Categories  map[string][]RankedRestaurant `json:"categories"`
	Live        bool                          `json:"live"`
	GeneratedAt string                        `json:"generatedAt"`
}

// TopResponse is the API response for the cross-category top-N board.
type TopResponse struct {
	Restaurants []RankedRestaurant `json:"restaurants"`
	Live        bool               `json:"live"`
	GeneratedAt string             `json:"generatedAt"`
}
