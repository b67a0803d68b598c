package models

import (
	"strings"
	"time"
)

// SeatInfo is one cell of a seat layout grid. Type "empty" marks an
// aisle/gap cell that can never be booked.
type SeatInfo struct {
	ID       string `json:"id"`
	Type     string `json:"type"`     // seat | sleeper | empty
	Position string `json:"position"` // left | right | middle
}

type SeatLayout struct {
	Rows        int          `json:"rows"`
	SeatsPerRow int          `json:"seatsPerRow"`
	Layout      [][]SeatInfo `json:"layout"`
}

// SeatIDs returns the set of bookable seat codes, uppercased.
func (l SeatLayout) SeatIDs() map[string]struct{} {
	out := map[string]struct{}{}
	for _, row := range l.Layout {
		for _, s := range row {
			if s.Type == "empty" {
				continue
			}
			id := strings.ToUpper(strings.TrimSpace(s.ID))
			if id != "" {
				out[id] = struct{}{}
			}
		}
	}
	return out
}

type Bus struct {
	ID           int64      `json:"id"`
	BusNumber    string     `json:"busNumber"`
	OperatorName string     `json:"operatorName"`
	BusType      string     `json:"busType"`
	TotalSeats   int        `json:"totalSeats"`
	SeatLayout   SeatLayout `json:"seatLayout"`
	Facilities   []string   `json:"facilities"`
	IsActive     bool       `json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type BusInput struct {
	BusNumber    string     `json:"busNumber"`
	OperatorName string     `json:"operatorName"`
	BusType      string     `json:"busType"`
	TotalSeats   int        `json:"totalSeats"`
	SeatLayout   SeatLayout `json:"seatLayout"`
	Facilities   []string   `json:"facilities"`
}
