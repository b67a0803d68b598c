package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"busticket/internal/domain/models"
	"busticket/internal/repositories"
)

func validateBusInput(in *models.BusInput) string {
	in.BusNumber = strings.TrimSpace(in.BusNumber)
	in.OperatorName = strings.TrimSpace(in.OperatorName)
	in.BusType = strings.TrimSpace(in.BusType)
	switch {
	case in.BusNumber == "":
		return "busNumber wajib diisi"
	case in.OperatorName == "":
		return "operatorName wajib diisi"
	case in.TotalSeats <= 0:
		return "totalSeats harus lebih dari 0"
	}
	if ids := in.SeatLayout.SeatIDs(); len(ids) > 0 && len(ids) != in.TotalSeats {
		return "jumlah seat pada layout tidak sama dengan totalSeats"
	}
	return ""
}

// GET /api/admin/buses
func AdminListBuses(c *gin.Context) {
	buses, err := (repositories.BusRepository{}).List(false)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal mengambil buses", err)
		return
	}
	if buses == nil {
		buses = []models.Bus{}
	}
	c.JSON(http.StatusOK, gin.H{"buses": buses, "count": len(buses)})
}

// POST /api/admin/buses
func AdminCreateBus(c *gin.Context) {
	var in models.BusInput
	if !BindJSONOrError(c, &in) {
		return
	}
	if msg := validateBusInput(&in); msg != "" {
		RespondError(c, http.StatusBadRequest, msg, nil)
		return
	}
	repo := repositories.BusRepository{}
	id, err := repo.Create(in)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal menyimpan bus", err)
		return
	}
	bus, err := repo.GetByID(id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal membaca bus", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "bus dibuat", "bus": bus})
}

// PUT /api/admin/buses/:id
func AdminUpdateBus(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var in models.BusInput
	if !BindJSONOrError(c, &in) {
		return
	}
	if msg := validateBusInput(&in); msg != "" {
		RespondError(c, http.StatusBadRequest, msg, nil)
		return
	}
	repo := repositories.BusRepository{}
	if err := repo.Update(id, in); err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal memperbarui bus", err)
		return
	}
	bus, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "bus tidak ditemukan", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "gagal membaca bus", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bus diperbarui", "bus": bus})
}

// DELETE /api/admin/buses/:id (soft delete)
func AdminDeleteBus(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	if err := (repositories.BusRepository{}).Deactivate(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "bus tidak ditemukan", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "gagal menonaktifkan bus", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bus dinonaktifkan"})
}
