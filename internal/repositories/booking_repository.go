package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "busticket/internal/config"
	intdb "busticket/internal/db"
	"busticket/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingDetailQuery = `
	SELECT bk.id, bk.booking_reference, bk.user_id, bk.schedule_id,
	       DATE_FORMAT(bk.booking_date, '%Y-%m-%d'),
	       bk.passenger_details, bk.seats, bk.total_amount,
	       bk.booking_status, bk.payment_status, COALESCE(bk.payment_method,''), COALESCE(bk.payment_id,''),
	       bk.created_at,
	       s.id, s.bus_id, s.route_id, s.departure_time, s.arrival_time, s.price,
	       s.days_of_week, s.is_active, s.created_at, s.updated_at,
	       b.id, b.bus_number, b.operator_name, b.bus_type, b.total_seats,
	       b.seat_layout, COALESCE(b.facilities, '[]'), b.is_active, b.created_at, b.updated_at,
	       r.id, r.from_city, r.to_city, r.distance_km, r.duration_hours, r.is_active, r.created_at, r.updated_at,
	       u.name, COALESCE(u.phone,'')
	FROM bookings bk
	JOIN bus_schedules s ON s.id = bk.schedule_id
	JOIN buses b  ON b.id = s.bus_id
	JOIN routes r ON r.id = s.route_id
	JOIN users u  ON u.id = bk.user_id`

func scanBookingDetail(row interface{ Scan(...any) error }) (models.BookingDetail, error) {
	var (
		d             models.BookingDetail
		passengersRaw []byte
		seatsRaw      []byte
		daysRaw       []byte
		layoutRaw     []byte
		facilitiesRaw []byte
	)
	err := row.Scan(
		&d.ID, &d.Reference, &d.UserID, &d.ScheduleID, &d.BookingDate,
		&passengersRaw, &seatsRaw, &d.TotalAmount,
		&d.BookingStatus, &d.PaymentStatus, &d.PaymentMethod, &d.PaymentID,
		&d.CreatedAt,
		&d.Schedule.ID, &d.Schedule.BusID, &d.Schedule.RouteID, &d.Schedule.DepartureTime, &d.Schedule.ArrivalTime, &d.Schedule.Price,
		&daysRaw, &d.Schedule.IsActive, &d.Schedule.CreatedAt, &d.Schedule.UpdatedAt,
		&d.Bus.ID, &d.Bus.BusNumber, &d.Bus.OperatorName, &d.Bus.BusType, &d.Bus.TotalSeats,
		&layoutRaw, &facilitiesRaw, &d.Bus.IsActive, &d.Bus.CreatedAt, &d.Bus.UpdatedAt,
		&d.Route.ID, &d.Route.FromCity, &d.Route.ToCity, &d.Route.DistanceKM, &d.Route.DurationHours,
		&d.Route.IsActive, &d.Route.CreatedAt, &d.Route.UpdatedAt,
		&d.UserName, &d.UserPhone,
	)
	if err != nil {
		return models.BookingDetail{}, err
	}
	if err := intdb.DecodeJSON(passengersRaw, &d.PassengerDetails); err != nil {
		return models.BookingDetail{}, fmt.Errorf("passenger_details rusak: %w", err)
	}
	if err := intdb.DecodeJSON(seatsRaw, &d.Seats); err != nil {
		return models.BookingDetail{}, fmt.Errorf("seats rusak: %w", err)
	}
	if err := intdb.DecodeJSON(daysRaw, &d.Schedule.DaysOfWeek); err != nil {
		return models.BookingDetail{}, fmt.Errorf("days_of_week rusak: %w", err)
	}
	if err := intdb.DecodeJSON(layoutRaw, &d.Bus.SeatLayout); err != nil {
		return models.BookingDetail{}, fmt.Errorf("seat_layout rusak: %w", err)
	}
	if err := intdb.DecodeJSON(facilitiesRaw, &d.Bus.Facilities); err != nil {
		return models.BookingDetail{}, fmt.Errorf("facilities rusak: %w", err)
	}
	return d, nil
}

// InsertTx writes the booking row inside the reservation transaction and
// stamps its reference (BK + zero-padded id) in the same statement batch.
func (r BookingRepository) InsertTx(tx *sql.Tx, b models.Booking) (int64, string, error) {
	passengers, err := intdb.EncodeJSON(b.PassengerDetails)
	if err != nil {
		return 0, "", err
	}
	seats, err := intdb.EncodeJSON(b.Seats)
	if err != nil {
		return 0, "", err
	}

	res, err := tx.Exec(`
		INSERT INTO bookings
			(user_id, schedule_id, booking_date, passenger_details, seats, total_amount,
			 booking_status, payment_status, payment_method, payment_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`, b.UserID, b.ScheduleID, b.BookingDate, passengers, seats, b.TotalAmount,
		b.BookingStatus, b.PaymentStatus, b.PaymentMethod, b.PaymentID)
	if err != nil {
		return 0, "", err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, "", err
	}

	reference := fmt.Sprintf("BK%06d", id)
	if _, err := tx.Exec(`UPDATE bookings SET booking_reference = ? WHERE id = ?`, reference, id); err != nil {
		return 0, "", err
	}
	return id, reference, nil
}

func (r BookingRepository) GetByID(id int64) (models.BookingDetail, error) {
	if id <= 0 {
		return models.BookingDetail{}, fmt.Errorf("id tidak valid")
	}
	return scanBookingDetail(r.db().QueryRow(bookingDetailQuery+` WHERE bk.id = ? LIMIT 1`, id))
}

func (r BookingRepository) GetByReference(reference string) (models.BookingDetail, error) {
	reference = strings.ToUpper(strings.TrimSpace(reference))
	if reference == "" {
		return models.BookingDetail{}, fmt.Errorf("reference kosong")
	}
	return scanBookingDetail(r.db().QueryRow(bookingDetailQuery+` WHERE bk.booking_reference = ? LIMIT 1`, reference))
}

func (r BookingRepository) listDetails(where string, args ...any) ([]models.BookingDetail, error) {
	rows, err := r.db().Query(bookingDetailQuery+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BookingDetail{}
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return out, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r BookingRepository) ListByUser(userID int64) ([]models.BookingDetail, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("user_id tidak valid")
	}
	return r.listDetails(` WHERE bk.user_id = ? ORDER BY bk.created_at DESC`, userID)
}

func (r BookingRepository) ListAll() ([]models.BookingDetail, error) {
	return r.listDetails(` ORDER BY bk.created_at DESC`)
}

func (r BookingRepository) ListRecent(limit int) ([]models.BookingDetail, error) {
	if limit <= 0 {
		limit = 10
	}
	return r.listDetails(` ORDER BY bk.created_at DESC LIMIT ?`, limit)
}

func (r BookingRepository) CountAll() (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM bookings`).Scan(&n)
	return n, err
}

// SumCompletedRevenue totals paid bookings for the admin dashboard.
func (r BookingRepository) SumCompletedRevenue() (float64, error) {
	var total float64
	err := r.db().QueryRow(`
		SELECT COALESCE(SUM(total_amount), 0)
		FROM bookings
		WHERE payment_status = ?
	`, models.PaymentStatusCompleted).Scan(&total)
	return total, err
}
