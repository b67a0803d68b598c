package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	intconfig "busticket/internal/config"
	intdb "busticket/internal/db"
	"busticket/internal/domain/models"
)

// AvailabilityRepository maintains the seat_availability summary row.
// booking_seats stays the source of truth; this row exists so seat maps
// can be served with a single keyed read, and its version column records
// every rewrite.
type AvailabilityRepository struct {
	DB *sql.DB
}

func (r AvailabilityRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Get returns the summary row, or an empty set when none exists yet.
func (r AvailabilityRepository) Get(scheduleID int64, travelDate string) (models.SeatAvailability, error) {
	if scheduleID <= 0 {
		return models.SeatAvailability{}, fmt.Errorf("schedule_id tidak valid")
	}
	out := models.SeatAvailability{
		ScheduleID:  scheduleID,
		TravelDate:  travelDate,
		BookedSeats: []string{},
	}

	var raw []byte
	err := r.db().QueryRow(`
		SELECT booked_seats, version
		FROM seat_availability
		WHERE schedule_id = ? AND travel_date = ?
		LIMIT 1
	`, scheduleID, travelDate).Scan(&raw, &out.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return out, nil
	}
	if err != nil {
		return out, err
	}
	if err := intdb.DecodeJSON(raw, &out.BookedSeats); err != nil {
		return out, fmt.Errorf("booked_seats rusak: %w", err)
	}
	return out, nil
}

// UpsertTx rewrites the summary to the given set inside the reservation
// transaction, bumping version on update.
func (r AvailabilityRepository) UpsertTx(tx *sql.Tx, scheduleID int64, travelDate string, bookedSeats []string) error {
	raw, err := intdb.EncodeJSON(bookedSeats)
	if err != nil {
		return err
	}
	_, err = tx.Exec(`
		INSERT INTO seat_availability (schedule_id, travel_date, booked_seats, version, created_at, updated_at)
		VALUES (?, ?, ?, 1, NOW(), NOW())
		ON DUPLICATE KEY UPDATE booked_seats = VALUES(booked_seats), version = version + 1, updated_at = NOW()
	`, scheduleID, travelDate, raw)
	return err
}
