package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"busticket/internal/http/middleware"
	"busticket/internal/services"
)

// GET /api/track?reference=
func TrackBooking(c *gin.Context) {
	svc := services.TrackingService{RequestID: middleware.GetRequestID(c)}
	info, err := svc.Track(c.Query("reference"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}
