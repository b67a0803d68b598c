package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	intconfig "busticket/internal/config"
	"busticket/internal/domain"
	"busticket/internal/domain/models"
	"busticket/internal/repositories"
	"busticket/internal/utils"
)

var allowedPaymentMethods = map[string]bool{
	"card":       true,
	"upi":        true,
	"netbanking": true,
	"wallet":     true,
}

// CreateBookingInput is the validated payload for one reservation attempt.
type CreateBookingInput struct {
	ScheduleID       int64
	BookingDate      string
	PassengerDetails []models.PassengerDetail
	Seats            []string
	TotalAmount      float64
	PaymentMethod    string
}

// AvailabilityResult feeds the public seat map endpoint. Version comes
// from the seat_availability summary row and changes on every booking
// for this trip, so clients can detect a stale seat map.
type AvailabilityResult struct {
	SeatLayout  models.SeatLayout `json:"seatLayout"`
	BookedSeats []string          `json:"bookedSeats"`
	TotalSeats  int               `json:"totalSeats"`
	Version     int64             `json:"version"`
}

// BookingService owns the seat reservation guard: all seat writes go
// through ReserveSeats, inside one transaction, with booking_seats'
// unique key as the final arbiter of seat races.
type BookingService struct {
	BookingRepo      repositories.BookingRepository
	SeatRepo         repositories.SeatRepository
	AvailabilityRepo repositories.AvailabilityRepository
	ScheduleRepo     repositories.ScheduleRepository
	DB               *sql.DB
	RequestID        string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func (s BookingService) seats() repositories.SeatRepository {
	if s.SeatRepo.DB != nil {
		return s.SeatRepo
	}
	return repositories.SeatRepository{DB: s.db()}
}

func (s BookingService) availability() repositories.AvailabilityRepository {
	if s.AvailabilityRepo.DB != nil {
		return s.AvailabilityRepo
	}
	return repositories.AvailabilityRepository{DB: s.db()}
}

func (s BookingService) schedules() repositories.ScheduleRepository {
	if s.ScheduleRepo.DB != nil {
		return s.ScheduleRepo
	}
	return repositories.ScheduleRepository{DB: s.db()}
}

// ReserveSeats books the requested seats for one (schedule, travel date)
// or fails without side effects. Two concurrent calls for overlapping
// seats can never both succeed: conflicts found early are reported from
// the locked read, and any seat grabbed between that read and our insert
// trips the unique key and rolls the whole transaction back.
func (s BookingService) ReserveSeats(userID int64, in CreateBookingInput) (models.BookingDetail, error) {
	var out models.BookingDetail

	if userID <= 0 {
		return out, domain.UnauthorizedError{}
	}
	if in.ScheduleID <= 0 {
		return out, domain.ValidationError{Field: "scheduleId", Msg: "wajib diisi"}
	}
	travelDay, err := utils.ParseDate(in.BookingDate)
	if err != nil {
		return out, domain.ValidationError{Field: "bookingDate", Msg: "format tanggal tidak valid (YYYY-MM-DD)"}
	}

	seats := utils.NormalizeSeats(in.Seats)
	if len(seats) == 0 {
		return out, domain.ValidationError{Field: "seats", Msg: "wajib pilih seat"}
	}
	if utils.HasDuplicates(seats) {
		return out, domain.ValidationError{Field: "seats", Msg: "seat tidak boleh duplikat"}
	}
	if len(in.PassengerDetails) != len(seats) {
		return out, domain.ValidationError{Field: "passengerDetails", Msg: "jumlah penumpang harus sama dengan jumlah seat"}
	}

	method := strings.ToLower(strings.TrimSpace(in.PaymentMethod))
	if method == "" || !allowedPaymentMethods[method] {
		return out, domain.ValidationError{Field: "paymentMethod", Msg: "metode pembayaran tidak didukung"}
	}

	schedule, err := s.schedules().GetDetail(in.ScheduleID)
	if errors.Is(err, sql.ErrNoRows) {
		return out, domain.NotFoundError{Resource: "schedule"}
	}
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	if !schedule.IsActive {
		return out, domain.NotFoundError{Resource: "schedule"}
	}
	if !schedule.RunsOn(int(travelDay.Weekday())) {
		return out, domain.ValidationError{Field: "bookingDate", Msg: "schedule tidak beroperasi pada tanggal tersebut"}
	}

	// Seat harus ada di layout bus (lihat catatan open question di DESIGN.md).
	if layoutIDs := schedule.Bus.SeatLayout.SeatIDs(); len(layoutIDs) > 0 {
		unknown := []string{}
		for _, seat := range seats {
			if _, ok := layoutIDs[seat]; !ok {
				unknown = append(unknown, seat)
			}
		}
		if len(unknown) > 0 {
			return out, domain.ValidationError{Field: "seats", Msg: "seat tidak dikenal: " + strings.Join(unknown, ", ")}
		}
	}

	bookedCount, err := s.seats().CountBooked(in.ScheduleID, in.BookingDate)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	if len(seats) > schedule.Bus.TotalSeats-bookedCount {
		return out, domain.ValidationError{Field: "seats", Msg: "jumlah seat melebihi sisa kapasitas"}
	}

	seatSet := map[string]bool{}
	for _, seat := range seats {
		seatSet[seat] = true
	}
	for _, p := range in.PassengerDetails {
		pseat := strings.ToUpper(strings.TrimSpace(p.SeatNumber))
		if pseat == "" || !seatSet[pseat] {
			return out, domain.ValidationError{Field: "passengerDetails", Msg: "seat penumpang harus sesuai seat yang dipilih"}
		}
		if strings.TrimSpace(p.Name) == "" {
			return out, domain.ValidationError{Field: "passengerDetails", Msg: "nama penumpang wajib diisi"}
		}
	}

	expected := schedule.Price * float64(len(seats))
	if !utils.AmountsEqual(in.TotalAmount, expected) {
		return out, domain.ValidationError{
			Field: "totalAmount",
			Msg:   fmt.Sprintf("total tidak sesuai harga (%s)", utils.FormatMoney(expected)),
		}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return out, domain.UnavailableError{Msg: "database tidak tersedia", Err: err}
	}
	defer tx.Rollback()

	taken, err := s.seats().LockConflictsTx(tx, in.ScheduleID, in.BookingDate, seats)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	if len(taken) > 0 {
		return out, domain.ConflictError{Resource: "seat", Seats: taken}
	}

	// Pembayaran disimulasikan langsung lunas; tidak ada state machine
	// pembayaran terpisah.
	booking := models.Booking{
		UserID:           userID,
		ScheduleID:       in.ScheduleID,
		BookingDate:      in.BookingDate,
		PassengerDetails: in.PassengerDetails,
		Seats:            seats,
		TotalAmount:      in.TotalAmount,
		BookingStatus:    models.BookingStatusConfirmed,
		PaymentStatus:    models.PaymentStatusCompleted,
		PaymentMethod:    method,
		PaymentID:        uuid.NewString(),
	}

	bookingID, reference, err := s.bookings().InsertTx(tx, booking)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}

	if err := s.seats().InsertSeatsTx(tx, bookingID, in.ScheduleID, in.BookingDate, seats); err != nil {
		if domain.IsConflict(err) {
			return out, err
		}
		return out, domain.InternalError{Err: err}
	}

	allBooked, err := s.seats().ListBookedTx(tx, in.ScheduleID, in.BookingDate)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	if err := s.availability().UpsertTx(tx, in.ScheduleID, in.BookingDate, allBooked); err != nil {
		return out, domain.InternalError{Err: err}
	}

	if err := tx.Commit(); err != nil {
		return out, domain.UnavailableError{Msg: "gagal commit booking", Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "reserve_seats",
		fmt.Sprintf("booking_id=%d reference=%s schedule_id=%d date=%s seats=%s",
			bookingID, reference, in.ScheduleID, in.BookingDate, strings.Join(seats, ",")))

	detail, err := s.bookings().GetByID(bookingID)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	return detail, nil
}

// GetAvailability serves the seat map: layout plus currently booked seats.
// Reads booking_seats directly so a just-committed reservation is visible.
func (s BookingService) GetAvailability(scheduleID int64, travelDate string) (AvailabilityResult, error) {
	var out AvailabilityResult

	if scheduleID <= 0 {
		return out, domain.ValidationError{Field: "scheduleId", Msg: "wajib diisi"}
	}
	if _, err := utils.ParseDate(travelDate); err != nil {
		return out, domain.ValidationError{Field: "date", Msg: "format tanggal tidak valid (YYYY-MM-DD)"}
	}

	schedule, err := s.schedules().GetDetail(scheduleID)
	if errors.Is(err, sql.ErrNoRows) {
		return out, domain.NotFoundError{Resource: "schedule"}
	}
	if err != nil {
		return out, domain.InternalError{Err: err}
	}

	booked, err := s.seats().ListBooked(scheduleID, travelDate)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	summary, err := s.availability().Get(scheduleID, travelDate)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}

	out.SeatLayout = schedule.Bus.SeatLayout
	out.BookedSeats = booked
	out.TotalSeats = schedule.Bus.TotalSeats
	out.Version = summary.Version
	return out, nil
}

// GetForUser fetches one booking, restricted to its owner unless admin.
func (s BookingService) GetForUser(bookingID int64, rc domain.RequestContext) (models.BookingDetail, error) {
	detail, err := s.bookings().GetByID(bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.BookingDetail{}, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return models.BookingDetail{}, domain.InternalError{Err: err}
	}
	if detail.UserID != rc.UserID && !rc.IsAdmin {
		return models.BookingDetail{}, domain.ForbiddenError{Msg: "booking milik user lain"}
	}
	return detail, nil
}

func (s BookingService) ListForUser(userID int64) ([]models.BookingDetail, error) {
	if userID <= 0 {
		return nil, domain.UnauthorizedError{}
	}
	out, err := s.bookings().ListByUser(userID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}
