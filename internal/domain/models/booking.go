package models

import "time"

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"

	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// PassengerDetail is one passenger bound to one seat.
type PassengerDetail struct {
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Gender     string `json:"gender"` // male | female | other
	SeatNumber string `json:"seatNumber"`
}

// Booking is one confirmed reservation. Seat assignment is immutable
// after creation; no amendment flow exists.
type Booking struct {
	ID               int64             `json:"id"`
	Reference        string            `json:"bookingReference"`
	UserID           int64             `json:"userId"`
	ScheduleID       int64             `json:"scheduleId"`
	BookingDate      string            `json:"bookingDate"` // YYYY-MM-DD (tanggal perjalanan)
	PassengerDetails []PassengerDetail `json:"passengerDetails"`
	Seats            []string          `json:"seats"`
	TotalAmount      float64           `json:"totalAmount"`
	BookingStatus    string            `json:"bookingStatus"`
	PaymentStatus    string            `json:"paymentStatus"`
	PaymentMethod    string            `json:"paymentMethod"`
	PaymentID        string            `json:"paymentId,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
}

// BookingDetail joins a booking with schedule, bus, route and owner info
// for listing endpoints.
type BookingDetail struct {
	Booking
	Schedule  Schedule `json:"schedule"`
	Bus       Bus      `json:"bus"`
	Route     Route    `json:"route"`
	UserName  string   `json:"userName,omitempty"`
	UserPhone string   `json:"userPhone,omitempty"`
}

// SeatAvailability is the summary row per (schedule, travel date).
// booking_seats stays authoritative; version bumps on every write.
type SeatAvailability struct {
	ScheduleID  int64    `json:"scheduleId"`
	TravelDate  string   `json:"travelDate"`
	BookedSeats []string `json:"bookedSeats"`
	Version     int64    `json:"version"`
}
