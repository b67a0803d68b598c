package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	intconfig "busticket/internal/config"
	"busticket/internal/domain"
)

// SeatRepository owns booking_seats, the authoritative per-seat table.
// The unique key (schedule_id, travel_date, seat_code) turns a lost seat
// race into a duplicate-key error instead of a read-then-write check.
type SeatRepository struct {
	DB *sql.DB
}

func (r SeatRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// ListBooked returns booked seat codes for (schedule, travel date).
func (r SeatRepository) ListBooked(scheduleID int64, travelDate string) ([]string, error) {
	if scheduleID <= 0 {
		return nil, fmt.Errorf("schedule_id tidak valid")
	}
	rows, err := r.db().Query(`
		SELECT seat_code
		FROM booking_seats
		WHERE schedule_id = ? AND travel_date = ?
		ORDER BY seat_code ASC
	`, scheduleID, travelDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var seat string
		if err := rows.Scan(&seat); err != nil {
			return out, err
		}
		out = append(out, strings.ToUpper(strings.TrimSpace(seat)))
	}
	return out, rows.Err()
}

func (r SeatRepository) CountBooked(scheduleID int64, travelDate string) (int, error) {
	var n int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM booking_seats WHERE schedule_id = ? AND travel_date = ?
	`, scheduleID, travelDate).Scan(&n)
	return n, err
}

// LockConflictsTx returns which of the requested seats are already booked,
// locking those rows for the rest of the transaction. Seats booked by a
// transaction that commits after this point are still caught by the unique
// key in InsertSeatsTx.
func (r SeatRepository) LockConflictsTx(tx *sql.Tx, scheduleID int64, travelDate string, seats []string) ([]string, error) {
	if len(seats) == 0 {
		return nil, nil
	}
	placeholders := make([]string, 0, len(seats))
	args := make([]any, 0, 2+len(seats))
	args = append(args, scheduleID, travelDate)
	for _, s := range seats {
		placeholders = append(placeholders, "?")
		args = append(args, s)
	}

	rows, err := tx.Query(`
		SELECT seat_code
		FROM booking_seats
		WHERE schedule_id = ? AND travel_date = ?
		  AND seat_code IN (`+strings.Join(placeholders, ",")+`)
		FOR UPDATE
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	taken := []string{}
	for rows.Next() {
		var seat string
		if err := rows.Scan(&seat); err != nil {
			return taken, err
		}
		taken = append(taken, strings.ToUpper(strings.TrimSpace(seat)))
	}
	return taken, rows.Err()
}

// InsertSeatsTx inserts one row per seat inside the reservation
// transaction. A duplicate key (1062) means another booking won the seat
// between our conflict check and this insert; it surfaces as ConflictError
// naming the losing seat.
func (r SeatRepository) InsertSeatsTx(tx *sql.Tx, bookingID, scheduleID int64, travelDate string, seats []string) error {
	for _, seat := range seats {
		_, err := tx.Exec(`
			INSERT INTO booking_seats (booking_id, schedule_id, travel_date, seat_code, created_at)
			VALUES (?, ?, ?, ?, NOW())
		`, bookingID, scheduleID, travelDate, seat)
		if err != nil {
			var me *mysql.MySQLError
			if errors.As(err, &me) && me.Number == 1062 {
				return domain.ConflictError{Resource: "seat", Seats: []string{seat}, Err: err}
			}
			return err
		}
	}
	return nil
}

// ListBookedTx rereads the full booked set inside the transaction, used to
// rebuild the seat_availability summary after inserts.
func (r SeatRepository) ListBookedTx(tx *sql.Tx, scheduleID int64, travelDate string) ([]string, error) {
	rows, err := tx.Query(`
		SELECT seat_code
		FROM booking_seats
		WHERE schedule_id = ? AND travel_date = ?
		ORDER BY seat_code ASC
	`, scheduleID, travelDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var seat string
		if err := rows.Scan(&seat); err != nil {
			return out, err
		}
		out = append(out, strings.ToUpper(strings.TrimSpace(seat)))
	}
	return out, rows.Err()
}
