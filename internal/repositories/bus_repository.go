package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "busticket/internal/config"
	intdb "busticket/internal/db"
	"busticket/internal/domain/models"
)

type BusRepository struct {
	DB *sql.DB
}

func (r BusRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const busColumns = `id, bus_number, operator_name, bus_type, total_seats, seat_layout, COALESCE(facilities, '[]'), is_active, created_at, updated_at`

func scanBus(row interface{ Scan(...any) error }) (models.Bus, error) {
	var (
		b             models.Bus
		layoutRaw     []byte
		facilitiesRaw []byte
	)
	if err := row.Scan(&b.ID, &b.BusNumber, &b.OperatorName, &b.BusType, &b.TotalSeats,
		&layoutRaw, &facilitiesRaw, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return models.Bus{}, err
	}
	if err := intdb.DecodeJSON(layoutRaw, &b.SeatLayout); err != nil {
		return models.Bus{}, fmt.Errorf("seat_layout rusak: %w", err)
	}
	if err := intdb.DecodeJSON(facilitiesRaw, &b.Facilities); err != nil {
		return models.Bus{}, fmt.Errorf("facilities rusak: %w", err)
	}
	return b, nil
}

func (r BusRepository) GetByID(id int64) (models.Bus, error) {
	if id <= 0 {
		return models.Bus{}, fmt.Errorf("id tidak valid")
	}
	return scanBus(r.db().QueryRow(`SELECT `+busColumns+` FROM buses WHERE id = ? LIMIT 1`, id))
}

func (r BusRepository) List(onlyActive bool) ([]models.Bus, error) {
	q := `SELECT ` + busColumns + ` FROM buses`
	if onlyActive {
		q += ` WHERE is_active = 1`
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db().Query(q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Bus{}
	for rows.Next() {
		b, err := scanBus(rows)
		if err != nil {
			return out, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r BusRepository) Create(in models.BusInput) (int64, error) {
	layout, err := intdb.EncodeJSON(in.SeatLayout)
	if err != nil {
		return 0, err
	}
	facilities, err := intdb.EncodeJSON(in.Facilities)
	if err != nil {
		return 0, err
	}
	res, err := r.db().Exec(`
		INSERT INTO buses (bus_number, operator_name, bus_type, total_seats, seat_layout, facilities, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, 1, NOW(), NOW())
	`, strings.TrimSpace(in.BusNumber), strings.TrimSpace(in.OperatorName), strings.TrimSpace(in.BusType),
		in.TotalSeats, layout, facilities)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r BusRepository) Update(id int64, in models.BusInput) error {
	if id <= 0 {
		return fmt.Errorf("id tidak valid")
	}
	layout, err := intdb.EncodeJSON(in.SeatLayout)
	if err != nil {
		return err
	}
	facilities, err := intdb.EncodeJSON(in.Facilities)
	if err != nil {
		return err
	}
	_, err = r.db().Exec(`
		UPDATE buses
		SET bus_number = ?, operator_name = ?, bus_type = ?, total_seats = ?, seat_layout = ?, facilities = ?, updated_at = NOW()
		WHERE id = ?
	`, strings.TrimSpace(in.BusNumber), strings.TrimSpace(in.OperatorName), strings.TrimSpace(in.BusType),
		in.TotalSeats, layout, facilities, id)
	return err
}

func (r BusRepository) Deactivate(id int64) error {
	if id <= 0 {
		return fmt.Errorf("id tidak valid")
	}
	res, err := r.db().Exec(`UPDATE buses SET is_active = 0, updated_at = NOW() WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r BusRepository) CountActive() (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM buses WHERE is_active = 1`).Scan(&n)
	return n, err
}
