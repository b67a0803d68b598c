package models

import "time"

type Route struct {
	ID            int64     `json:"id"`
	FromCity      string    `json:"fromCity"`
	ToCity        string    `json:"toCity"`
	DistanceKM    float64   `json:"distanceKm"`
	DurationHours float64   `json:"durationHours"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// RouteInput is the create/update payload for admin route management.
type RouteInput struct {
	FromCity      string  `json:"fromCity"`
	ToCity        string  `json:"toCity"`
	DistanceKM    float64 `json:"distanceKm"`
	DurationHours float64 `json:"durationHours"`
}
