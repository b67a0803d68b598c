package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"busticket/internal/domain/models"
	"busticket/internal/http/middleware"
	"busticket/internal/repositories"
	"busticket/internal/services"
)

// GET /api/admin/bookings
func AdminListBookings(c *gin.Context) {
	bookings, err := (repositories.BookingRepository{}).ListAll()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal mengambil bookings", err)
		return
	}
	if bookings == nil {
		bookings = []models.BookingDetail{}
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}

// GET /api/admin/stats
func AdminStats(c *gin.Context) {
	svc := services.StatsService{RequestID: middleware.GetRequestID(c)}
	stats, err := svc.Overview()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
