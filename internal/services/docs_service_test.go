package services

import (
	"bytes"
	"strings"
	"testing"

	"busticket/internal/domain/models"
)

func TestBuildETicketPDF(t *testing.T) {
	detail := models.BookingDetail{
		Booking: models.Booking{
			ID:          7,
			Reference:   "BK000007",
			BookingDate: "2026-09-01",
			Seats:       []string{"U1A", "U1B"},
			TotalAmount: 300000,
			PassengerDetails: []models.PassengerDetail{
				{Name: "Andi", Age: 30, Gender: "male", SeatNumber: "U1A"},
				{Name: "Budi", Age: 28, Gender: "male", SeatNumber: "U1B"},
			},
			BookingStatus: models.BookingStatusConfirmed,
			PaymentStatus: models.PaymentStatusCompleted,
		},
		Schedule: models.Schedule{DepartureTime: "08:00", ArrivalTime: "16:00"},
		Bus:      models.Bus{BusNumber: "B 7777 KS", OperatorName: "Sinar Baru", BusType: "AC Sleeper"},
		Route:    models.Route{FromCity: "Jakarta", ToCity: "Bandung"},
	}

	pdfBytes, filename, err := buildETicketPDF(detail)
	if err != nil {
		t.Fatalf("buildETicketPDF error: %v", err)
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Fatalf("output bukan PDF")
	}
	if !strings.Contains(filename, "BK000007") {
		t.Fatalf("filename = %q", filename)
	}
}

func TestSafeFilenamePart(t *testing.T) {
	got := safeFilenamePart("A/B C:D")
	if strings.ContainsAny(got, "/: ") {
		t.Fatalf("masih ada karakter terlarang: %q", got)
	}
	if safeFilenamePart("  ") != "NA" {
		t.Fatalf("kosong harus NA")
	}
}
