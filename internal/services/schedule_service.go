package services

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "busticket/internal/config"
	"busticket/internal/domain"
	"busticket/internal/domain/models"
	"busticket/internal/repositories"
	"busticket/internal/utils"
)

// ScheduleService answers the public search and seat count questions.
type ScheduleService struct {
	ScheduleRepo repositories.ScheduleRepository
	SeatRepo     repositories.SeatRepository
	RouteRepo    repositories.RouteRepository
	DB           *sql.DB
	RequestID    string
}

func (s ScheduleService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s ScheduleService) schedules() repositories.ScheduleRepository {
	if s.ScheduleRepo.DB != nil {
		return s.ScheduleRepo
	}
	return repositories.ScheduleRepository{DB: s.db()}
}

func (s ScheduleService) seats() repositories.SeatRepository {
	if s.SeatRepo.DB != nil {
		return s.SeatRepo
	}
	return repositories.SeatRepository{DB: s.db()}
}

func (s ScheduleService) routes() repositories.RouteRepository {
	if s.RouteRepo.DB != nil {
		return s.RouteRepo
	}
	return repositories.RouteRepository{DB: s.db()}
}

// Cities lists distinct route endpoints for the search form.
func (s ScheduleService) Cities() ([]string, error) {
	cities, err := s.routes().Cities()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return cities, nil
}

// Search finds active schedules between two cities for one travel date,
// with per-trip remaining seat counts. Schedules that do not run on the
// date's weekday are excluded in the query.
func (s ScheduleService) Search(fromCity, toCity, travelDate string) ([]models.SearchResult, error) {
	fromCity = utils.NormalizeSpace(fromCity)
	toCity = utils.NormalizeSpace(toCity)
	if fromCity == "" {
		return nil, domain.ValidationError{Field: "from", Msg: "wajib diisi"}
	}
	if toCity == "" {
		return nil, domain.ValidationError{Field: "to", Msg: "wajib diisi"}
	}
	if strings.EqualFold(fromCity, toCity) {
		return nil, domain.ValidationError{Field: "to", Msg: "kota asal dan tujuan tidak boleh sama"}
	}
	day, err := utils.ParseDate(travelDate)
	if err != nil {
		return nil, domain.ValidationError{Field: "date", Msg: "format tanggal tidak valid (YYYY-MM-DD)"}
	}

	details, err := s.schedules().Search(fromCity, toCity, int(day.Weekday()))
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}

	out := make([]models.SearchResult, 0, len(details))
	for _, d := range details {
		booked, err := s.seats().CountBooked(d.ID, travelDate)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		available := d.Bus.TotalSeats - booked
		if available < 0 {
			available = 0
		}
		out = append(out, models.SearchResult{
			ScheduleID:     d.ID,
			BusID:          d.Bus.ID,
			RouteID:        d.Route.ID,
			Operator:       d.Bus.OperatorName,
			BusType:        d.Bus.BusType,
			DepartureTime:  d.DepartureTime,
			ArrivalTime:    d.ArrivalTime,
			Duration:       formatDuration(d.Route.DurationHours),
			Price:          d.Price,
			AvailableSeats: available,
			TotalSeats:     d.Bus.TotalSeats,
			Facilities:     d.Bus.Facilities,
		})
	}
	utils.LogEvent(s.RequestID, "schedule", "search",
		fmt.Sprintf("from=%s to=%s date=%s results=%d", fromCity, toCity, travelDate, len(out)))
	return out, nil
}

func formatDuration(hours float64) string {
	if hours <= 0 {
		return "-"
	}
	h := int(hours)
	m := int((hours - float64(h)) * 60)
	if m == 0 {
		return fmt.Sprintf("%dj", h)
	}
	return fmt.Sprintf("%dj %dm", h, m)
}
