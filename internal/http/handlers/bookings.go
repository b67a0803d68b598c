package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"busticket/internal/domain/models"
	"busticket/internal/http/middleware"
	"busticket/internal/services"
)

type createBookingRequest struct {
	ScheduleID       int64                    `json:"scheduleId"`
	BookingDate      string                   `json:"bookingDate"`
	PassengerDetails []models.PassengerDetail `json:"passengerDetails"`
	Seats            []string                 `json:"seats"`
	TotalAmount      float64                  `json:"totalAmount"`
	PaymentMethod    string                   `json:"paymentMethod"`
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	rc := middleware.RequestContext(c)
	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	detail, err := svc.ReserveSeats(rc.UserID, services.CreateBookingInput{
		ScheduleID:       req.ScheduleID,
		BookingDate:      req.BookingDate,
		PassengerDetails: req.PassengerDetails,
		Seats:            req.Seats,
		TotalAmount:      req.TotalAmount,
		PaymentMethod:    req.PaymentMethod,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "booking berhasil",
		"booking": detail,
	})
}

// GET /api/bookings
func ListMyBookings(c *gin.Context) {
	rc := middleware.RequestContext(c)
	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	out, err := svc.ListForUser(rc.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if out == nil {
		out = []models.BookingDetail{}
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out, "count": len(out)})
}

// GET /api/bookings/:id
func GetBooking(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	rc := middleware.RequestContext(c)
	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	detail, err := svc.GetForUser(id, rc)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": detail})
}

// GET /api/bookings/:id/e-ticket
func GetBookingETicketPDF(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	rc := middleware.RequestContext(c)
	svc := services.DocsService{
		Bookings:  services.BookingService{RequestID: middleware.GetRequestID(c)},
		RequestID: middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.GenerateETicket(id, rc)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
