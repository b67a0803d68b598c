package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"busticket/internal/domain"
)

func TestInsertSeatsTxMapsDuplicateKeyToConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO booking_seats").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO booking_seats").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'U1B'"})

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin error: %v", err)
	}
	defer tx.Rollback()

	repo := SeatRepository{DB: db}
	err = repo.InsertSeatsTx(tx, 7, 1, "2026-09-01", []string{"U1A", "U1B"})
	if !domain.IsConflict(err) {
		t.Fatalf("err = %v, want conflict", err)
	}
	seats := domain.ConflictSeats(err)
	if len(seats) != 1 || seats[0] != "U1B" {
		t.Fatalf("conflict seats = %v, want [U1B]", seats)
	}
}

func TestLockConflictsTxReturnsTakenSeats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(int64(1), "2026-09-01", "U1A", "U1B").
		WillReturnRows(sqlmock.NewRows([]string{"seat_code"}).AddRow("u1b"))

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin error: %v", err)
	}
	defer tx.Rollback()

	repo := SeatRepository{DB: db}
	taken, err := repo.LockConflictsTx(tx, 1, "2026-09-01", []string{"U1A", "U1B"})
	if err != nil {
		t.Fatalf("LockConflictsTx error: %v", err)
	}
	if len(taken) != 1 || taken[0] != "U1B" {
		t.Fatalf("taken = %v, want [U1B]", taken)
	}
}
