package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"busticket/internal/domain"
	"busticket/internal/domain/models"
	"busticket/internal/utils"
)

// DocsService menghasilkan PDF e-ticket per booking.
type DocsService struct {
	Bookings  BookingService
	RequestID string
}

// GenerateETicket renders the e-ticket for one booking. Access follows
// the same owner-or-admin rule as reading the booking itself.
func (s DocsService) GenerateETicket(bookingID int64, rc domain.RequestContext) ([]byte, string, error) {
	detail, err := s.Bookings.GetForUser(bookingID, rc)
	if err != nil {
		return nil, "", err
	}
	if detail.BookingStatus == models.BookingStatusCancelled {
		return nil, "", domain.ValidationError{Field: "booking", Msg: "booking sudah dibatalkan"}
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("booking_id=%d", bookingID))
	return buildETicketPDF(detail)
}

func buildETicketPDF(d models.BookingDetail) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Kode Booking   : %s", safe(d.Reference, "-")),
		fmt.Sprintf("Rute           : %s -> %s", safe(d.Route.FromCity, "-"), safe(d.Route.ToCity, "-")),
		fmt.Sprintf("Tanggal/Jam    : %s %s", safe(d.BookingDate, "-"), safe(timeHM(d.Schedule.DepartureTime), "-")),
		fmt.Sprintf("Bus            : %s (%s)", safe(d.Bus.OperatorName, "-"), safe(d.Bus.BusNumber, "-")),
		fmt.Sprintf("Kelas          : %s", safe(d.Bus.BusType, "-")),
		fmt.Sprintf("Seat           : %s", safe(strings.Join(d.Seats, ", "), "-")),
		fmt.Sprintf("Total          : %s", utils.FormatMoney(d.TotalAmount)),
		fmt.Sprintf("Status         : %s / %s", safe(d.BookingStatus, "-"), safe(d.PaymentStatus, "-")),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Penumpang:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for i, p := range d.PassengerDetails {
		row := fmt.Sprintf("%d) %s (%d, %s) - Seat %s",
			i+1, safe(p.Name, "-"), p.Age, safe(p.Gender, "-"), safe(p.SeatNumber, "-"))
		pdf.Cell(0, 6, row)
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Catatan: Harap tunjukkan e-ticket ini beserta identitas penumpang saat keberangkatan.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%s.pdf", safeFilenamePart(d.Reference))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func timeHM(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 5 {
		return v[:5]
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
