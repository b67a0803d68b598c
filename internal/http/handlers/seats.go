package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"busticket/internal/http/middleware"
	"busticket/internal/services"
)

// GET /api/buses/:scheduleId/seats?date=
func GetSeatAvailability(c *gin.Context) {
	scheduleID, ok := PathID(c, "scheduleId")
	if !ok {
		return
	}
	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	out, err := svc.GetAvailability(scheduleID, c.Query("date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if out.BookedSeats == nil {
		out.BookedSeats = []string{}
	}
	c.JSON(http.StatusOK, out)
}
