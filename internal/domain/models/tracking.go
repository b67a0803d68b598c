package models

import "time"

// BusLocation is the latest reported GPS fix for a (schedule, travel date).
type BusLocation struct {
	ScheduleID      int64     `json:"scheduleId"`
	TravelDate      string    `json:"travelDate"`
	CurrentLocation string    `json:"currentLocation"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	Speed           float64   `json:"speed"`
	Heading         float64   `json:"heading"`
	Status          string    `json:"status"`
	DelayMinutes    int       `json:"delayMinutes"`
	NextStop        string    `json:"nextStop"`
	CompletedStops  []string  `json:"completedStops"`
	UpcomingStops   []string  `json:"upcomingStops"`
	DriverContact   string    `json:"driverContact"`
	LastUpdated     time.Time `json:"lastUpdated"`
}

// TrackingInfo is the public lookup payload for a booking reference.
type TrackingInfo struct {
	BookingReference string       `json:"bookingReference"`
	BookingStatus    string       `json:"bookingStatus"`
	Seats            []string     `json:"seats"`
	Bus              TrackingBus  `json:"bus"`
	Route            TrackingLeg  `json:"route"`
	Tracking         *BusLocation `json:"tracking"`
}

type TrackingBus struct {
	BusNumber    string `json:"busNumber"`
	OperatorName string `json:"operatorName"`
	BusType      string `json:"busType"`
}

type TrackingLeg struct {
	From          string  `json:"from"`
	To            string  `json:"to"`
	DistanceKM    float64 `json:"distance"`
	DepartureTime string  `json:"departureTime"`
	ArrivalTime   string  `json:"arrivalTime"`
}
