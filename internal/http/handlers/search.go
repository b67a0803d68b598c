package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"busticket/internal/http/middleware"
	"busticket/internal/services"
)

// GET /api/cities
func ListCities(c *gin.Context) {
	svc := services.ScheduleService{RequestID: middleware.GetRequestID(c)}
	cities, err := svc.Cities()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cities": cities})
}

// GET /api/search?from=&to=&date=
func SearchBuses(c *gin.Context) {
	svc := services.ScheduleService{RequestID: middleware.GetRequestID(c)}
	results, err := svc.Search(c.Query("from"), c.Query("to"), c.Query("date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"buses": results,
		"count": len(results),
	})
}
