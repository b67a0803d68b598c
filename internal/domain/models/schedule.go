package models

import "time"

// Schedule is one recurring bus-route-time combination.
type Schedule struct {
	ID            int64     `json:"id"`
	BusID         int64     `json:"busId"`
	RouteID       int64     `json:"routeId"`
	DepartureTime string    `json:"departureTime"` // HH:MM
	ArrivalTime   string    `json:"arrivalTime"`
	Price         float64   `json:"price"`
	DaysOfWeek    []int     `json:"daysOfWeek"` // 0=Minggu .. 6=Sabtu
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// RunsOn reports whether the schedule operates on the given weekday.
func (s Schedule) RunsOn(weekday int) bool {
	for _, d := range s.DaysOfWeek {
		if d == weekday {
			return true
		}
	}
	return false
}

// ScheduleDetail joins a schedule with its bus and route.
type ScheduleDetail struct {
	Schedule
	Bus   Bus   `json:"bus"`
	Route Route `json:"route"`
}

type ScheduleInput struct {
	BusID         int64   `json:"busId"`
	RouteID       int64   `json:"routeId"`
	DepartureTime string  `json:"departureTime"`
	ArrivalTime   string  `json:"arrivalTime"`
	Price         float64 `json:"price"`
	DaysOfWeek    []int   `json:"daysOfWeek"`
}

// SearchResult is one row of the public bus search response.
type SearchResult struct {
	ScheduleID     int64    `json:"scheduleId"`
	BusID          int64    `json:"busId"`
	RouteID        int64    `json:"routeId"`
	Operator       string   `json:"operator"`
	BusType        string   `json:"busType"`
	DepartureTime  string   `json:"departureTime"`
	ArrivalTime    string   `json:"arrivalTime"`
	Duration       string   `json:"duration"`
	Price          float64  `json:"price"`
	AvailableSeats int      `json:"availableSeats"`
	TotalSeats     int      `json:"totalSeats"`
	Facilities     []string `json:"facilities"`
}
