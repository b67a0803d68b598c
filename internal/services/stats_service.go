package services

import (
	"database/sql"

	intconfig "busticket/internal/config"
	"busticket/internal/domain"
	"busticket/internal/domain/models"
	"busticket/internal/repositories"
)

// DashboardStats is the admin overview payload.
type DashboardStats struct {
	TotalBookings  int                    `json:"totalBookings"`
	TotalRevenue   float64                `json:"totalRevenue"`
	ActiveRoutes   int                    `json:"activeRoutes"`
	ActiveBuses    int                    `json:"activeBuses"`
	RecentBookings []models.BookingDetail `json:"recentBookings"`
}

type StatsService struct {
	BookingRepo repositories.BookingRepository
	RouteRepo   repositories.RouteRepository
	BusRepo     repositories.BusRepository
	DB          *sql.DB
	RequestID   string
}

func (s StatsService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s StatsService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func (s StatsService) routesRepo() repositories.RouteRepository {
	if s.RouteRepo.DB != nil {
		return s.RouteRepo
	}
	return repositories.RouteRepository{DB: s.db()}
}

func (s StatsService) busesRepo() repositories.BusRepository {
	if s.BusRepo.DB != nil {
		return s.BusRepo
	}
	return repositories.BusRepository{DB: s.db()}
}

// Overview assembles the admin dashboard numbers in one call.
func (s StatsService) Overview() (DashboardStats, error) {
	var out DashboardStats
	var err error

	if out.TotalBookings, err = s.bookings().CountAll(); err != nil {
		return out, domain.InternalError{Err: err}
	}
	if out.TotalRevenue, err = s.bookings().SumCompletedRevenue(); err != nil {
		return out, domain.InternalError{Err: err}
	}
	if out.ActiveRoutes, err = s.routesRepo().CountActive(); err != nil {
		return out, domain.InternalError{Err: err}
	}
	if out.ActiveBuses, err = s.busesRepo().CountActive(); err != nil {
		return out, domain.InternalError{Err: err}
	}
	if out.RecentBookings, err = s.bookings().ListRecent(10); err != nil {
		return out, domain.InternalError{Err: err}
	}
	if out.RecentBookings == nil {
		out.RecentBookings = []models.BookingDetail{}
	}
	return out, nil
}
