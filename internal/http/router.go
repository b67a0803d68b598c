package api

import (
	"log"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	intconfig "busticket/internal/config"
	h "busticket/internal/http/handlers"
	"busticket/internal/http/middleware"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	_ = env

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Katalog publik
		api.GET("/cities", h.ListCities)
		api.GET("/search", h.SearchBuses)
		api.GET("/buses/:scheduleId/seats", h.GetSeatAvailability)

		// Tracking publik (reference sebagai kredensial)
		api.GET("/track", h.TrackBooking)

		// Profil user login
		api.GET("/me", middleware.Auth(), h.GetProfile)

		// Bookings (butuh login)
		bookings := api.Group("/bookings", middleware.Auth())
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListMyBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.GET("/:id/e-ticket", h.GetBookingETicketPDF)

		// Admin
		admin := api.Group("/admin", middleware.Auth(), middleware.RequireAdmin())
		{
			admin.GET("/routes", h.AdminListRoutes)
			admin.POST("/routes", h.AdminCreateRoute)
			admin.PUT("/routes/:id", h.AdminUpdateRoute)
			admin.DELETE("/routes/:id", h.AdminDeleteRoute)

			admin.GET("/buses", h.AdminListBuses)
			admin.POST("/buses", h.AdminCreateBus)
			admin.PUT("/buses/:id", h.AdminUpdateBus)
			admin.DELETE("/buses/:id", h.AdminDeleteBus)

			admin.GET("/schedules", h.AdminListSchedules)
			admin.POST("/schedules", h.AdminCreateSchedule)
			admin.PUT("/schedules/:id", h.AdminUpdateSchedule)
			admin.DELETE("/schedules/:id", h.AdminDeleteSchedule)
			admin.PUT("/schedules/:id/location", h.AdminUpdateScheduleLocation)

			admin.GET("/bookings", h.AdminListBookings)
			admin.GET("/stats", h.AdminStats)
		}
	}

	return r
}
