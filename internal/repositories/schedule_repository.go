package repositories

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	intconfig "busticket/internal/config"
	intdb "busticket/internal/db"
	"busticket/internal/domain/models"
)

type ScheduleRepository struct {
	DB *sql.DB
}

func (r ScheduleRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const scheduleDetailQuery = `
	SELECT s.id, s.bus_id, s.route_id, s.departure_time, s.arrival_time, s.price,
	       s.days_of_week, s.is_active, s.created_at, s.updated_at,
	       b.id, b.bus_number, b.operator_name, b.bus_type, b.total_seats,
	       b.seat_layout, COALESCE(b.facilities, '[]'), b.is_active, b.created_at, b.updated_at,
	       r.id, r.from_city, r.to_city, r.distance_km, r.duration_hours, r.is_active, r.created_at, r.updated_at
	FROM bus_schedules s
	JOIN buses b  ON b.id = s.bus_id
	JOIN routes r ON r.id = s.route_id`

func scanScheduleDetail(row interface{ Scan(...any) error }) (models.ScheduleDetail, error) {
	var (
		d             models.ScheduleDetail
		daysRaw       []byte
		layoutRaw     []byte
		facilitiesRaw []byte
	)
	err := row.Scan(
		&d.ID, &d.BusID, &d.RouteID, &d.DepartureTime, &d.ArrivalTime, &d.Price,
		&daysRaw, &d.IsActive, &d.CreatedAt, &d.UpdatedAt,
		&d.Bus.ID, &d.Bus.BusNumber, &d.Bus.OperatorName, &d.Bus.BusType, &d.Bus.TotalSeats,
		&layoutRaw, &facilitiesRaw, &d.Bus.IsActive, &d.Bus.CreatedAt, &d.Bus.UpdatedAt,
		&d.Route.ID, &d.Route.FromCity, &d.Route.ToCity, &d.Route.DistanceKM, &d.Route.DurationHours,
		&d.Route.IsActive, &d.Route.CreatedAt, &d.Route.UpdatedAt,
	)
	if err != nil {
		return models.ScheduleDetail{}, err
	}
	if err := intdb.DecodeJSON(daysRaw, &d.DaysOfWeek); err != nil {
		return models.ScheduleDetail{}, fmt.Errorf("days_of_week rusak: %w", err)
	}
	if err := intdb.DecodeJSON(layoutRaw, &d.Bus.SeatLayout); err != nil {
		return models.ScheduleDetail{}, fmt.Errorf("seat_layout rusak: %w", err)
	}
	if err := intdb.DecodeJSON(facilitiesRaw, &d.Bus.Facilities); err != nil {
		return models.ScheduleDetail{}, fmt.Errorf("facilities rusak: %w", err)
	}
	return d, nil
}

// GetDetail fetches a schedule joined with its bus and route.
func (r ScheduleRepository) GetDetail(id int64) (models.ScheduleDetail, error) {
	if id <= 0 {
		return models.ScheduleDetail{}, fmt.Errorf("id tidak valid")
	}
	return scanScheduleDetail(r.db().QueryRow(scheduleDetailQuery+` WHERE s.id = ? LIMIT 1`, id))
}

// Search lists active schedules between two cities operating on the weekday.
// City match is case-insensitive; weekday follows time.Weekday (0=Minggu).
func (r ScheduleRepository) Search(fromCity, toCity string, weekday int) ([]models.ScheduleDetail, error) {
	rows, err := r.db().Query(scheduleDetailQuery+`
		WHERE LOWER(r.from_city) = LOWER(?)
		  AND LOWER(r.to_city) = LOWER(?)
		  AND r.is_active = 1
		  AND s.is_active = 1
		  AND b.is_active = 1
		  AND JSON_CONTAINS(s.days_of_week, ?)
		ORDER BY s.departure_time ASC
	`, strings.TrimSpace(fromCity), strings.TrimSpace(toCity), strconv.Itoa(weekday))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ScheduleDetail{}
	for rows.Next() {
		d, err := scanScheduleDetail(rows)
		if err != nil {
			return out, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r ScheduleRepository) List() ([]models.ScheduleDetail, error) {
	rows, err := r.db().Query(scheduleDetailQuery + ` ORDER BY s.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ScheduleDetail{}
	for rows.Next() {
		d, err := scanScheduleDetail(rows)
		if err != nil {
			return out, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r ScheduleRepository) Create(in models.ScheduleInput) (int64, error) {
	days, err := intdb.EncodeJSON(in.DaysOfWeek)
	if err != nil {
		return 0, err
	}
	res, err := r.db().Exec(`
		INSERT INTO bus_schedules (bus_id, route_id, departure_time, arrival_time, price, days_of_week, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, 1, NOW(), NOW())
	`, in.BusID, in.RouteID, strings.TrimSpace(in.DepartureTime), strings.TrimSpace(in.ArrivalTime), in.Price, days)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r ScheduleRepository) Update(id int64, in models.ScheduleInput) error {
	if id <= 0 {
		return fmt.Errorf("id tidak valid")
	}
	days, err := intdb.EncodeJSON(in.DaysOfWeek)
	if err != nil {
		return err
	}
	_, err = r.db().Exec(`
		UPDATE bus_schedules
		SET bus_id = ?, route_id = ?, departure_time = ?, arrival_time = ?, price = ?, days_of_week = ?, updated_at = NOW()
		WHERE id = ?
	`, in.BusID, in.RouteID, strings.TrimSpace(in.DepartureTime), strings.TrimSpace(in.ArrivalTime), in.Price, days, id)
	return err
}

func (r ScheduleRepository) Deactivate(id int64) error {
	if id <= 0 {
		return fmt.Errorf("id tidak valid")
	}
	res, err := r.db().Exec(`UPDATE bus_schedules SET is_active = 0, updated_at = NOW() WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
