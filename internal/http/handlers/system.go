package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	intconfig "busticket/internal/config"
	intdb "busticket/internal/db"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "busticket backend berjalan"})
}

// DBCheck verifies connectivity and that the core tables exist, including
// the version column seat map writes depend on.
func DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database belum terhubung: " + err.Error()})
		return
	}
	var count int
	if err := intconfig.DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal query ke database: " + err.Error()})
		return
	}

	tables := gin.H{}
	for _, tbl := range []string{"routes", "buses", "bus_schedules", "bookings", "booking_seats", "seat_availability", "bus_locations"} {
		tables[tbl] = intdb.HasTable(intconfig.DB, tbl)
	}
	tables["seat_availability_version"] = intdb.HasColumn(intconfig.DB, "seat_availability", "version")

	c.JSON(http.StatusOK, gin.H{
		"message":     "koneksi database OK",
		"users_in_db": count,
		"tables":      tables,
	})
}
