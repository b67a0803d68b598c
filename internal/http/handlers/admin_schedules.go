package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"busticket/internal/domain/models"
	"busticket/internal/http/middleware"
	"busticket/internal/repositories"
	"busticket/internal/services"
	"busticket/internal/utils"
)

func validateScheduleInput(in *models.ScheduleInput) string {
	switch {
	case in.BusID <= 0:
		return "busId wajib diisi"
	case in.RouteID <= 0:
		return "routeId wajib diisi"
	case !utils.ValidHHMM(in.DepartureTime):
		return "departureTime harus format HH:MM"
	case !utils.ValidHHMM(in.ArrivalTime):
		return "arrivalTime harus format HH:MM"
	case in.Price <= 0:
		return "price harus lebih dari 0"
	case len(in.DaysOfWeek) == 0:
		return "daysOfWeek wajib diisi"
	}
	for _, d := range in.DaysOfWeek {
		if d < 0 || d > 6 {
			return "daysOfWeek harus 0 sampai 6"
		}
	}
	return ""
}

func scheduleRefsExist(in models.ScheduleInput) (string, error) {
	if _, err := (repositories.BusRepository{}).GetByID(in.BusID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "bus tidak ditemukan", nil
		}
		return "", err
	}
	if _, err := (repositories.RouteRepository{}).GetByID(in.RouteID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "route tidak ditemukan", nil
		}
		return "", err
	}
	return "", nil
}

// GET /api/admin/schedules
func AdminListSchedules(c *gin.Context) {
	schedules, err := (repositories.ScheduleRepository{}).List()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal mengambil schedules", err)
		return
	}
	if schedules == nil {
		schedules = []models.ScheduleDetail{}
	}
	c.JSON(http.StatusOK, gin.H{"schedules": schedules, "count": len(schedules)})
}

// POST /api/admin/schedules
func AdminCreateSchedule(c *gin.Context) {
	var in models.ScheduleInput
	if !BindJSONOrError(c, &in) {
		return
	}
	if msg := validateScheduleInput(&in); msg != "" {
		RespondError(c, http.StatusBadRequest, msg, nil)
		return
	}
	if msg, err := scheduleRefsExist(in); err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal cek referensi schedule", err)
		return
	} else if msg != "" {
		RespondError(c, http.StatusBadRequest, msg, nil)
		return
	}

	repo := repositories.ScheduleRepository{}
	id, err := repo.Create(in)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal menyimpan schedule", err)
		return
	}
	detail, err := repo.GetDetail(id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal membaca schedule", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "schedule dibuat", "schedule": detail})
}

// PUT /api/admin/schedules/:id
func AdminUpdateSchedule(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var in models.ScheduleInput
	if !BindJSONOrError(c, &in) {
		return
	}
	if msg := validateScheduleInput(&in); msg != "" {
		RespondError(c, http.StatusBadRequest, msg, nil)
		return
	}
	if msg, err := scheduleRefsExist(in); err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal cek referensi schedule", err)
		return
	} else if msg != "" {
		RespondError(c, http.StatusBadRequest, msg, nil)
		return
	}

	repo := repositories.ScheduleRepository{}
	if err := repo.Update(id, in); err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal memperbarui schedule", err)
		return
	}
	detail, err := repo.GetDetail(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "schedule tidak ditemukan", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "gagal membaca schedule", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "schedule diperbarui", "schedule": detail})
}

// DELETE /api/admin/schedules/:id (soft delete)
func AdminDeleteSchedule(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	if err := (repositories.ScheduleRepository{}).Deactivate(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "schedule tidak ditemukan", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "gagal menonaktifkan schedule", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "schedule dinonaktifkan"})
}

type updateLocationRequest struct {
	TravelDate      string   `json:"travelDate"`
	CurrentLocation string   `json:"currentLocation"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	Speed           float64  `json:"speed"`
	Heading         float64  `json:"heading"`
	Status          string   `json:"status"`
	DelayMinutes    int      `json:"delayMinutes"`
	NextStop        string   `json:"nextStop"`
	CompletedStops  []string `json:"completedStops"`
	UpcomingStops   []string `json:"upcomingStops"`
	DriverContact   string   `json:"driverContact"`
}

// PUT /api/admin/schedules/:id/location
func AdminUpdateScheduleLocation(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var req updateLocationRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.TrackingService{RequestID: middleware.GetRequestID(c)}
	err := svc.UpdateLocation(models.BusLocation{
		ScheduleID:      id,
		TravelDate:      req.TravelDate,
		CurrentLocation: req.CurrentLocation,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		Speed:           req.Speed,
		Heading:         req.Heading,
		Status:          req.Status,
		DelayMinutes:    req.DelayMinutes,
		NextStop:        req.NextStop,
		CompletedStops:  req.CompletedStops,
		UpcomingStops:   req.UpcomingStops,
		DriverContact:   req.DriverContact,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "lokasi diperbarui"})
}
