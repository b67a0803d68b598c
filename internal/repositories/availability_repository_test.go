package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestAvailabilityGetEmptyWhenNoRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM seat_availability").
		WillReturnRows(sqlmock.NewRows([]string{"booked_seats", "version"}))

	repo := AvailabilityRepository{DB: db}
	out, err := repo.Get(1, "2026-09-01")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if len(out.BookedSeats) != 0 {
		t.Fatalf("booked = %v, want kosong", out.BookedSeats)
	}
	if out.Version != 0 {
		t.Fatalf("version = %d, want 0", out.Version)
	}
}

func TestAvailabilityGetDecodesRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM seat_availability").
		WillReturnRows(sqlmock.NewRows([]string{"booked_seats", "version"}).
			AddRow([]byte(`["U1A","U2B"]`), 5))

	repo := AvailabilityRepository{DB: db}
	out, err := repo.Get(1, "2026-09-01")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if len(out.BookedSeats) != 2 || out.BookedSeats[1] != "U2B" {
		t.Fatalf("booked = %v", out.BookedSeats)
	}
	if out.Version != 5 {
		t.Fatalf("version = %d, want 5", out.Version)
	}
}

func TestAvailabilityUpsertBumpsVersion(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("ON DUPLICATE KEY UPDATE booked_seats").
		WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectCommit()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin error: %v", err)
	}

	repo := AvailabilityRepository{DB: db}
	if err := repo.UpsertTx(tx, 1, "2026-09-01", []string{"U1A"}); err != nil {
		t.Fatalf("UpsertTx error: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
