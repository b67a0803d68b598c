package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "busticket/internal/config"
	"busticket/internal/domain"
	"busticket/internal/domain/models"
	"busticket/internal/repositories"
	"busticket/internal/utils"
)

// TrackingService resolves a booking reference to live trip info.
// Lookup is public: possession of the reference is the credential.
type TrackingService struct {
	BookingRepo  repositories.BookingRepository
	TrackingRepo repositories.TrackingRepository
	DB           *sql.DB
	RequestID    string
}

func (s TrackingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s TrackingService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func (s TrackingService) tracking() repositories.TrackingRepository {
	if s.TrackingRepo.DB != nil {
		return s.TrackingRepo
	}
	return repositories.TrackingRepository{DB: s.db()}
}

// Track looks up a booking by reference and attaches the latest GPS fix
// when one exists. Tracking stays nil when the bus has not reported yet.
func (s TrackingService) Track(reference string) (models.TrackingInfo, error) {
	var out models.TrackingInfo

	reference = strings.ToUpper(strings.TrimSpace(reference))
	if reference == "" {
		return out, domain.ValidationError{Field: "reference", Msg: "wajib diisi"}
	}

	booking, err := s.bookings().GetByReference(reference)
	if errors.Is(err, sql.ErrNoRows) {
		return out, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return out, domain.InternalError{Err: err}
	}

	out.BookingReference = booking.Reference
	out.BookingStatus = booking.BookingStatus
	out.Seats = booking.Seats
	out.Bus = models.TrackingBus{
		BusNumber:    booking.Bus.BusNumber,
		OperatorName: booking.Bus.OperatorName,
		BusType:      booking.Bus.BusType,
	}
	out.Route = models.TrackingLeg{
		From:          booking.Route.FromCity,
		To:            booking.Route.ToCity,
		DistanceKM:    booking.Route.DistanceKM,
		DepartureTime: booking.Schedule.DepartureTime,
		ArrivalTime:   booking.Schedule.ArrivalTime,
	}

	loc, err := s.tracking().GetLocation(booking.ScheduleID, booking.BookingDate)
	if errors.Is(err, sql.ErrNoRows) {
		return out, nil
	}
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	out.Tracking = &loc
	return out, nil
}

// UpdateLocation upserts the GPS fix for a (schedule, travel date).
func (s TrackingService) UpdateLocation(loc models.BusLocation) error {
	if loc.ScheduleID <= 0 {
		return domain.ValidationError{Field: "scheduleId", Msg: "wajib diisi"}
	}
	if _, err := utils.ParseDate(loc.TravelDate); err != nil {
		return domain.ValidationError{Field: "travelDate", Msg: "format tanggal tidak valid (YYYY-MM-DD)"}
	}
	if loc.Latitude < -90 || loc.Latitude > 90 || loc.Longitude < -180 || loc.Longitude > 180 {
		return domain.ValidationError{Field: "coordinates", Msg: "koordinat tidak valid"}
	}
	if err := s.tracking().UpsertLocation(loc); err != nil {
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "tracking", "update_location",
		fmt.Sprintf("schedule_id=%d date=%s status=%s", loc.ScheduleID, loc.TravelDate, loc.Status))
	return nil
}
