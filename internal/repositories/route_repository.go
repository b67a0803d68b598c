package repositories

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"

	intconfig "busticket/internal/config"
	"busticket/internal/domain/models"
)

type RouteRepository struct {
	DB *sql.DB
}

func (r RouteRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const routeColumns = `id, from_city, to_city, distance_km, duration_hours, is_active, created_at, updated_at`

func scanRoute(row interface{ Scan(...any) error }) (models.Route, error) {
	var rt models.Route
	err := row.Scan(&rt.ID, &rt.FromCity, &rt.ToCity, &rt.DistanceKM, &rt.DurationHours, &rt.IsActive, &rt.CreatedAt, &rt.UpdatedAt)
	return rt, err
}

func (r RouteRepository) GetByID(id int64) (models.Route, error) {
	if id <= 0 {
		return models.Route{}, fmt.Errorf("id tidak valid")
	}
	return scanRoute(r.db().QueryRow(`SELECT `+routeColumns+` FROM routes WHERE id = ? LIMIT 1`, id))
}

func (r RouteRepository) List(onlyActive bool) ([]models.Route, error) {
	q := `SELECT ` + routeColumns + ` FROM routes`
	if onlyActive {
		q += ` WHERE is_active = 1`
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db().Query(q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return out, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

// Cities returns every distinct city appearing on an active route, sorted.
func (r RouteRepository) Cities() ([]string, error) {
	rows, err := r.db().Query(`SELECT from_city, to_city FROM routes WHERE is_active = 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := map[string]bool{}
	for rows.Next() {
		var from, to string
		if err := rows.Scan(&from, &to); err != nil {
			return nil, err
		}
		if from = strings.TrimSpace(from); from != "" {
			set[from] = true
		}
		if to = strings.TrimSpace(to); to != "" {
			set[to] = true
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

func (r RouteRepository) Create(in models.RouteInput) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO routes (from_city, to_city, distance_km, duration_hours, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, 1, NOW(), NOW())
	`, strings.TrimSpace(in.FromCity), strings.TrimSpace(in.ToCity), in.DistanceKM, in.DurationHours)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r RouteRepository) Update(id int64, in models.RouteInput) error {
	if id <= 0 {
		return fmt.Errorf("id tidak valid")
	}
	_, err := r.db().Exec(`
		UPDATE routes
		SET from_city = ?, to_city = ?, distance_km = ?, duration_hours = ?, updated_at = NOW()
		WHERE id = ?
	`, strings.TrimSpace(in.FromCity), strings.TrimSpace(in.ToCity), in.DistanceKM, in.DurationHours, id)
	return err
}

// Deactivate soft-deletes; schedules referencing the route keep history.
func (r RouteRepository) Deactivate(id int64) error {
	if id <= 0 {
		return fmt.Errorf("id tidak valid")
	}
	res, err := r.db().Exec(`UPDATE routes SET is_active = 0, updated_at = NOW() WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r RouteRepository) CountActive() (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM routes WHERE is_active = 1`).Scan(&n)
	return n, err
}
