package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	intconfig "busticket/internal/config"
	"busticket/internal/domain"
	"busticket/internal/domain/models"
)

func TestTrackWithoutLocationLeavesTrackingNil(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("FROM bookings bk").
		WillReturnRows(bookingDetailRows("BK000007", `["U1A"]`))
	mock.ExpectQuery("FROM bus_locations").
		WillReturnError(sql.ErrNoRows)

	svc := TrackingService{DB: db}
	info, err := svc.Track("bk000007")
	if err != nil {
		t.Fatalf("Track error: %v", err)
	}
	if info.BookingReference != "BK000007" {
		t.Fatalf("reference = %q", info.BookingReference)
	}
	if info.Tracking != nil {
		t.Fatalf("tracking harus nil sebelum ada laporan GPS")
	}
	if info.Route.From != "Jakarta" || info.Route.To != "Bandung" {
		t.Fatalf("route = %+v", info.Route)
	}
}

func TestTrackWithLocation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("FROM bookings bk").
		WillReturnRows(bookingDetailRows("BK000007", `["U1A"]`))

	locCols := []string{
		"schedule_id", "travel_date", "current_location", "latitude", "longitude",
		"speed", "heading", "status", "delay_minutes", "next_stop",
		"completed_stops", "upcoming_stops", "driver_contact", "updated_at",
	}
	mock.ExpectQuery("FROM bus_locations").
		WillReturnRows(sqlmock.NewRows(locCols).AddRow(
			1, "2026-09-01", "Rest Area KM 57", -6.35, 107.2,
			72.5, 180.0, "on_time", 0, "Bandung",
			[]byte(`["Jakarta"]`), []byte(`["Bandung"]`), "0800123", time.Now(),
		))

	svc := TrackingService{DB: db}
	info, err := svc.Track("BK000007")
	if err != nil {
		t.Fatalf("Track error: %v", err)
	}
	if info.Tracking == nil {
		t.Fatalf("tracking kosong")
	}
	if info.Tracking.CurrentLocation != "Rest Area KM 57" {
		t.Fatalf("current location = %q", info.Tracking.CurrentLocation)
	}
}

func TestTrackUnknownReference(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	mock.ExpectQuery("FROM bookings bk").
		WillReturnError(sql.ErrNoRows)

	svc := TrackingService{DB: db}
	if _, err := svc.Track("BK999999"); !domain.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestUpdateLocationValidatesCoordinates(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	svc := TrackingService{DB: db}
	err = svc.UpdateLocation(models.BusLocation{
		ScheduleID: 1,
		TravelDate: "2026-09-01",
		Latitude:   123.0,
		Longitude:  10.0,
	})
	if !domain.IsValidation(err) {
		t.Fatalf("err = %v, want validation", err)
	}
}
