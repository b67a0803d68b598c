package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	intconfig "busticket/internal/config"
	"busticket/internal/domain"
	"busticket/internal/domain/models"
)

const testLayoutJSON = `{"rows":1,"seatsPerRow":4,"layout":[[` +
	`{"id":"U1A","type":"seat","position":"left"},` +
	`{"id":"U1B","type":"seat","position":"left"},` +
	`{"id":"","type":"empty","position":"middle"},` +
	`{"id":"U2A","type":"seat","position":"right"},` +
	`{"id":"U2B","type":"seat","position":"right"}]]}`

func scheduleDetailColumns() []string {
	return []string{
		"s_id", "bus_id", "route_id", "departure_time", "arrival_time", "price",
		"days_of_week", "s_active", "s_created", "s_updated",
		"b_id", "bus_number", "operator_name", "bus_type", "total_seats",
		"seat_layout", "facilities", "b_active", "b_created", "b_updated",
		"r_id", "from_city", "to_city", "distance_km", "duration_hours", "r_active", "r_created", "r_updated",
	}
}

func addScheduleDetailRow(rows *sqlmock.Rows, price float64, totalSeats int, active bool) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(
		1, 2, 3, "08:00", "16:00", price,
		[]byte(`[0,1,2,3,4,5,6]`), active, now, now,
		2, "B 7777 KS", "Sinar Baru", "AC Sleeper", totalSeats,
		[]byte(testLayoutJSON), []byte(`["wifi","toilet"]`), true, now, now,
		3, "Jakarta", "Bandung", 150, 3.5, true, now, now,
	)
}

func expectScheduleDetail(mock sqlmock.Sqlmock, price float64, totalSeats int, active bool) {
	mock.ExpectQuery("FROM bus_schedules s").
		WillReturnRows(addScheduleDetailRow(sqlmock.NewRows(scheduleDetailColumns()), price, totalSeats, active))
}

func bookingDetailRows(reference string, seatsJSON string) *sqlmock.Rows {
	now := time.Now()
	cols := []string{
		"bk_id", "booking_reference", "user_id", "schedule_id", "booking_date",
		"passenger_details", "seats", "total_amount",
		"booking_status", "payment_status", "payment_method", "payment_id", "bk_created",
		"s_id", "bus_id", "route_id", "departure_time", "arrival_time", "price",
		"days_of_week", "s_active", "s_created", "s_updated",
		"b_id", "bus_number", "operator_name", "bus_type", "total_seats",
		"seat_layout", "facilities", "b_active", "b_created", "b_updated",
		"r_id", "from_city", "to_city", "distance_km", "duration_hours", "r_active", "r_created", "r_updated",
		"user_name", "user_phone",
	}
	return sqlmock.NewRows(cols).AddRow(
		7, reference, 10, 1, "2026-09-01",
		[]byte(`[{"name":"Andi","age":30,"gender":"male","seatNumber":"U1A"}]`),
		[]byte(seatsJSON), 150000,
		models.BookingStatusConfirmed, models.PaymentStatusCompleted, "upi", "pay-1", now,
		1, 2, 3, "08:00", "16:00", 150000,
		[]byte(`[0,1,2,3,4,5,6]`), true, now, now,
		2, "B 7777 KS", "Sinar Baru", "AC Sleeper", 4,
		[]byte(testLayoutJSON), []byte(`["wifi","toilet"]`), true, now, now,
		3, "Jakarta", "Bandung", 150, 3.5, true, now, now,
		"Andi", "0800",
	)
}

func TestReserveSeatsSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	expectScheduleDetail(mock, 150000, 4, true)
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"seat_code"}))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("UPDATE bookings SET booking_reference").
		WithArgs("BK000007", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO booking_seats").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("ORDER BY seat_code").
		WillReturnRows(sqlmock.NewRows([]string{"seat_code"}).AddRow("U1A"))
	mock.ExpectExec("INSERT INTO seat_availability").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	mock.ExpectQuery("FROM bookings bk").
		WillReturnRows(bookingDetailRows("BK000007", `["U1A"]`))

	svc := BookingService{DB: db}
	detail, err := svc.ReserveSeats(10, CreateBookingInput{
		ScheduleID:  1,
		BookingDate: "2026-09-01",
		PassengerDetails: []models.PassengerDetail{
			{Name: "Andi", Age: 30, Gender: "male", SeatNumber: "U1A"},
		},
		Seats:         []string{"u1a"},
		TotalAmount:   150000,
		PaymentMethod: "upi",
	})
	if err != nil {
		t.Fatalf("ReserveSeats error: %v", err)
	}
	if detail.Reference != "BK000007" {
		t.Fatalf("reference = %q, want BK000007", detail.Reference)
	}
	if detail.BookingStatus != models.BookingStatusConfirmed {
		t.Fatalf("booking status = %q", detail.BookingStatus)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveSeatsConflictNamesSeats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	expectScheduleDetail(mock, 150000, 4, true)
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"seat_code"}).AddRow("U1B"))
	mock.ExpectRollback()

	svc := BookingService{DB: db}
	_, err = svc.ReserveSeats(10, CreateBookingInput{
		ScheduleID:  1,
		BookingDate: "2026-09-01",
		PassengerDetails: []models.PassengerDetail{
			{Name: "Andi", SeatNumber: "U1B"},
			{Name: "Budi", SeatNumber: "U2A"},
		},
		Seats:         []string{"U1B", "U2A"},
		TotalAmount:   300000,
		PaymentMethod: "card",
	})
	if !domain.IsConflict(err) {
		t.Fatalf("err = %v, want conflict", err)
	}
	seats := domain.ConflictSeats(err)
	if len(seats) != 1 || seats[0] != "U1B" {
		t.Fatalf("conflict seats = %v, want [U1B]", seats)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveSeatsDuplicateKeyRace(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	expectScheduleDetail(mock, 150000, 4, true)
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"seat_code"}))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(8, 1))
	mock.ExpectExec("UPDATE bookings SET booking_reference").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO booking_seats").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	svc := BookingService{DB: db}
	_, err = svc.ReserveSeats(10, CreateBookingInput{
		ScheduleID:  1,
		BookingDate: "2026-09-01",
		PassengerDetails: []models.PassengerDetail{
			{Name: "Andi", SeatNumber: "U2B"},
		},
		Seats:         []string{"U2B"},
		TotalAmount:   150000,
		PaymentMethod: "wallet",
	})
	if !domain.IsConflict(err) {
		t.Fatalf("err = %v, want conflict", err)
	}
	seats := domain.ConflictSeats(err)
	if len(seats) != 1 || seats[0] != "U2B" {
		t.Fatalf("conflict seats = %v, want [U2B]", seats)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveSeatsRejectsUnknownSeat(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	expectScheduleDetail(mock, 150000, 4, true)

	svc := BookingService{DB: db}
	_, err = svc.ReserveSeats(10, CreateBookingInput{
		ScheduleID:  1,
		BookingDate: "2026-09-01",
		PassengerDetails: []models.PassengerDetail{
			{Name: "Andi", SeatNumber: "Z9"},
		},
		Seats:         []string{"Z9"},
		TotalAmount:   150000,
		PaymentMethod: "upi",
	})
	if !domain.IsValidation(err) {
		t.Fatalf("err = %v, want validation", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveSeatsRejectsWhenCapacityExhausted(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	expectScheduleDetail(mock, 150000, 4, true)
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(3))

	svc := BookingService{DB: db}
	_, err = svc.ReserveSeats(10, CreateBookingInput{
		ScheduleID:  1,
		BookingDate: "2026-09-01",
		PassengerDetails: []models.PassengerDetail{
			{Name: "Andi", SeatNumber: "U1A"},
			{Name: "Budi", SeatNumber: "U1B"},
		},
		Seats:         []string{"U1A", "U1B"},
		TotalAmount:   300000,
		PaymentMethod: "card",
	})
	if !domain.IsValidation(err) {
		t.Fatalf("err = %v, want validation", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveSeatsValidatesBeforeAnyWrite(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	svc := BookingService{DB: db}

	cases := []struct {
		name string
		in   CreateBookingInput
	}{
		{"duplicate seats", CreateBookingInput{
			ScheduleID:  1,
			BookingDate: "2026-09-01",
			PassengerDetails: []models.PassengerDetail{
				{Name: "A", SeatNumber: "U1A"}, {Name: "B", SeatNumber: "U1A"},
			},
			Seats: []string{"U1A", "U1A"}, TotalAmount: 300000, PaymentMethod: "upi",
		}},
		{"empty seats", CreateBookingInput{
			ScheduleID: 1, BookingDate: "2026-09-01", TotalAmount: 0, PaymentMethod: "upi",
		}},
		{"passenger count mismatch", CreateBookingInput{
			ScheduleID:  1,
			BookingDate: "2026-09-01",
			PassengerDetails: []models.PassengerDetail{
				{Name: "A", SeatNumber: "U1A"},
			},
			Seats: []string{"U1A", "U1B"}, TotalAmount: 300000, PaymentMethod: "upi",
		}},
		{"bad date", CreateBookingInput{
			ScheduleID:  1,
			BookingDate: "01-09-2026",
			PassengerDetails: []models.PassengerDetail{
				{Name: "A", SeatNumber: "U1A"},
			},
			Seats: []string{"U1A"}, TotalAmount: 150000, PaymentMethod: "upi",
		}},
		{"bad payment method", CreateBookingInput{
			ScheduleID:  1,
			BookingDate: "2026-09-01",
			PassengerDetails: []models.PassengerDetail{
				{Name: "A", SeatNumber: "U1A"},
			},
			Seats: []string{"U1A"}, TotalAmount: 150000, PaymentMethod: "cash",
		}},
	}
	for _, tc := range cases {
		if _, err := svc.ReserveSeats(10, tc.in); !domain.IsValidation(err) {
			t.Fatalf("%s: err = %v, want validation", tc.name, err)
		}
	}

	// none of these may touch the database
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database access: %v", err)
	}
}

func TestReserveSeatsWrongTotalAmount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	expectScheduleDetail(mock, 150000, 4, true)
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))

	svc := BookingService{DB: db}
	_, err = svc.ReserveSeats(10, CreateBookingInput{
		ScheduleID:  1,
		BookingDate: "2026-09-01",
		PassengerDetails: []models.PassengerDetail{
			{Name: "A", SeatNumber: "U1A"}, {Name: "B", SeatNumber: "U1B"},
		},
		Seats:         []string{"U1A", "U1B"},
		TotalAmount:   150000, // harga 2 seat = 300000
		PaymentMethod: "card",
	})
	if !domain.IsValidation(err) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestGetAvailabilityReflectsBookedSeats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	expectScheduleDetail(mock, 150000, 4, true)
	mock.ExpectQuery("ORDER BY seat_code").
		WillReturnRows(sqlmock.NewRows([]string{"seat_code"}).AddRow("U1A").AddRow("U1B"))
	mock.ExpectQuery("FROM seat_availability").
		WillReturnRows(sqlmock.NewRows([]string{"booked_seats", "version"}).
			AddRow([]byte(`["U1A","U1B"]`), 2))

	svc := BookingService{DB: db}
	out, err := svc.GetAvailability(1, "2026-09-01")
	if err != nil {
		t.Fatalf("GetAvailability error: %v", err)
	}
	if out.TotalSeats != 4 {
		t.Fatalf("total seats = %d, want 4", out.TotalSeats)
	}
	if out.Version != 2 {
		t.Fatalf("version = %d, want 2", out.Version)
	}
	if len(out.BookedSeats) != 2 || out.BookedSeats[0] != "U1A" || out.BookedSeats[1] != "U1B" {
		t.Fatalf("booked seats = %v", out.BookedSeats)
	}
	if len(out.SeatLayout.Layout) == 0 {
		t.Fatalf("seat layout kosong")
	}
}

func TestGetForUserForbiddenForOtherUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	mock.ExpectQuery("FROM bookings bk").
		WillReturnRows(bookingDetailRows("BK000007", `["U1A"]`))

	svc := BookingService{DB: db}
	_, err = svc.GetForUser(7, domain.RequestContext{UserID: 99})
	if !domain.IsForbidden(err) {
		t.Fatalf("err = %v, want forbidden", err)
	}
}
