package repositories

import (
	"database/sql"
	"fmt"

	intconfig "busticket/internal/config"
	intdb "busticket/internal/db"
	"busticket/internal/domain/models"
)

type TrackingRepository struct {
	DB *sql.DB
}

func (r TrackingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetLocation returns the latest GPS fix for (schedule, travel date), or
// sql.ErrNoRows when the bus has not reported yet.
func (r TrackingRepository) GetLocation(scheduleID int64, travelDate string) (models.BusLocation, error) {
	if scheduleID <= 0 {
		return models.BusLocation{}, fmt.Errorf("schedule_id tidak valid")
	}

	var (
		loc          models.BusLocation
		completedRaw []byte
		upcomingRaw  []byte
	)
	err := r.db().QueryRow(`
		SELECT schedule_id, DATE_FORMAT(travel_date, '%Y-%m-%d'),
		       COALESCE(current_location,''), latitude, longitude, speed, heading,
		       COALESCE(status,''), delay_minutes, COALESCE(next_stop,''),
		       COALESCE(completed_stops,'[]'), COALESCE(upcoming_stops,'[]'),
		       COALESCE(driver_contact,''), updated_at
		FROM bus_locations
		WHERE schedule_id = ? AND travel_date = ?
		LIMIT 1
	`, scheduleID, travelDate).Scan(
		&loc.ScheduleID, &loc.TravelDate,
		&loc.CurrentLocation, &loc.Latitude, &loc.Longitude, &loc.Speed, &loc.Heading,
		&loc.Status, &loc.DelayMinutes, &loc.NextStop,
		&completedRaw, &upcomingRaw,
		&loc.DriverContact, &loc.LastUpdated,
	)
	if err != nil {
		return models.BusLocation{}, err
	}
	if err := intdb.DecodeJSON(completedRaw, &loc.CompletedStops); err != nil {
		return models.BusLocation{}, fmt.Errorf("completed_stops rusak: %w", err)
	}
	if err := intdb.DecodeJSON(upcomingRaw, &loc.UpcomingStops); err != nil {
		return models.BusLocation{}, fmt.Errorf("upcoming_stops rusak: %w", err)
	}
	return loc, nil
}

// UpsertLocation ingests a GPS report, one row per (schedule, travel date).
func (r TrackingRepository) UpsertLocation(loc models.BusLocation) error {
	if loc.ScheduleID <= 0 {
		return fmt.Errorf("schedule_id tidak valid")
	}
	completed, err := intdb.EncodeJSON(loc.CompletedStops)
	if err != nil {
		return err
	}
	upcoming, err := intdb.EncodeJSON(loc.UpcomingStops)
	if err != nil {
		return err
	}
	_, err = r.db().Exec(`
		INSERT INTO bus_locations
			(schedule_id, travel_date, current_location, latitude, longitude, speed, heading,
			 status, delay_minutes, next_stop, completed_stops, upcoming_stops, driver_contact, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE
			current_location = VALUES(current_location),
			latitude = VALUES(latitude),
			longitude = VALUES(longitude),
			speed = VALUES(speed),
			heading = VALUES(heading),
			status = VALUES(status),
			delay_minutes = VALUES(delay_minutes),
			next_stop = VALUES(next_stop),
			completed_stops = VALUES(completed_stops),
			upcoming_stops = VALUES(upcoming_stops),
			driver_contact = VALUES(driver_contact),
			updated_at = NOW()
	`, loc.ScheduleID, loc.TravelDate, loc.CurrentLocation, loc.Latitude, loc.Longitude, loc.Speed, loc.Heading,
		loc.Status, loc.DelayMinutes, loc.NextStop, completed, upcoming, loc.DriverContact)
	return err
}
