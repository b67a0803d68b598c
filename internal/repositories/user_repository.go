package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "busticket/internal/config"
	"busticket/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByEmail returns the user plus password hash for login checks.
func (r UserRepository) GetByEmail(email string) (models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return models.User{}, "", fmt.Errorf("email kosong")
	}

	var (
		u    models.User
		hash string
	)
	err := r.db().QueryRow(`
		SELECT id, name, email, COALESCE(phone,''), password_hash, is_admin, created_at
		FROM users
		WHERE email = ?
		LIMIT 1
	`, email).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &hash, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		return models.User{}, "", err
	}
	return u, hash, nil
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	if id <= 0 {
		return models.User{}, fmt.Errorf("id tidak valid")
	}
	var u models.User
	err := r.db().QueryRow(`
		SELECT id, name, email, COALESCE(phone,''), is_admin, created_at
		FROM users
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// IsAdmin re-checks the users row; the JWT claim alone is not trusted.
func (r UserRepository) IsAdmin(id int64) (bool, error) {
	if id <= 0 {
		return false, fmt.Errorf("id tidak valid")
	}
	var isAdmin bool
	err := r.db().QueryRow(`SELECT is_admin FROM users WHERE id = ? LIMIT 1`, id).Scan(&isAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return isAdmin, nil
}

func (r UserRepository) EmailTaken(email string) (bool, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, strings.ToLower(strings.TrimSpace(email))).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r UserRepository) Create(name, email, phone, passwordHash string) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO users (name, email, phone, password_hash, is_admin, created_at, updated_at)
		VALUES (?, ?, ?, ?, 0, NOW(), NOW())
	`, strings.TrimSpace(name), strings.ToLower(strings.TrimSpace(email)), strings.TrimSpace(phone), passwordHash)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
