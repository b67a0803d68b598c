package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"busticket/internal/domain/models"
	"busticket/internal/repositories"
	"busticket/internal/utils"
)

func validateRouteInput(in *models.RouteInput) string {
	in.FromCity = utils.NormalizeSpace(in.FromCity)
	in.ToCity = utils.NormalizeSpace(in.ToCity)
	switch {
	case in.FromCity == "":
		return "fromCity wajib diisi"
	case in.ToCity == "":
		return "toCity wajib diisi"
	case strings.EqualFold(in.FromCity, in.ToCity):
		return "kota asal dan tujuan tidak boleh sama"
	case in.DistanceKM <= 0:
		return "distanceKm harus lebih dari 0"
	case in.DurationHours <= 0:
		return "durationHours harus lebih dari 0"
	}
	return ""
}

// GET /api/admin/routes
func AdminListRoutes(c *gin.Context) {
	routes, err := (repositories.RouteRepository{}).List(false)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal mengambil routes", err)
		return
	}
	if routes == nil {
		routes = []models.Route{}
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes, "count": len(routes)})
}

// POST /api/admin/routes
func AdminCreateRoute(c *gin.Context) {
	var in models.RouteInput
	if !BindJSONOrError(c, &in) {
		return
	}
	if msg := validateRouteInput(&in); msg != "" {
		RespondError(c, http.StatusBadRequest, msg, nil)
		return
	}
	repo := repositories.RouteRepository{}
	id, err := repo.Create(in)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal menyimpan route", err)
		return
	}
	route, err := repo.GetByID(id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal membaca route", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "route dibuat", "route": route})
}

// PUT /api/admin/routes/:id
func AdminUpdateRoute(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var in models.RouteInput
	if !BindJSONOrError(c, &in) {
		return
	}
	if msg := validateRouteInput(&in); msg != "" {
		RespondError(c, http.StatusBadRequest, msg, nil)
		return
	}
	repo := repositories.RouteRepository{}
	if err := repo.Update(id, in); err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal memperbarui route", err)
		return
	}
	route, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "route tidak ditemukan", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "gagal membaca route", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "route diperbarui", "route": route})
}

// DELETE /api/admin/routes/:id (soft delete)
func AdminDeleteRoute(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	if err := (repositories.RouteRepository{}).Deactivate(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "route tidak ditemukan", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "gagal menonaktifkan route", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "route dinonaktifkan"})
}
