package reservations

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-RestaurantService/internal/service/reservations/models"
)

const (
	recentLimit   = 10
	dashboardDays = 7
)

// Service сервис админки для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	cache           AvailabilityCache // nil - кеш выключен
	config          domain.RestaurantConfig
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	cache AvailabilityCache,
	config domain.RestaurantConfig,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		cache:           cache,
		config:          config,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// List получает бронирования с фильтрами по статусу, имени гостя и дате
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("List: status=%q, search=%q, date=%q", req.Status, req.Search, req.Date)

	filter, err := req.ToDomainFilter(s.config.Location)
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	reservations, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d reservations", len(reservations))
	return models.FromDomainReservationList(reservations), nil
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	reservation, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainReservation(reservation), nil
}

// UpdateStatus меняет статус бронирования (pending, confirmed, cancelled, completed)
func (s *Service) UpdateStatus(ctx context.Context, id int64, adminID string, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("UpdateStatus: reservation id=%d, status=%s by admin=%s", id, req.Status, adminID)

	status, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%q", req.Status)
		return nil, ErrInvalidStatus
	}

	if err := s.reservationRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	updated, err := s.get(ctx, "UpdateStatus", id)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, updated)

	s.logger.Info("UpdateStatus: reservation id=%d is now %s", id, status)
	return models.FromDomainReservation(updated), nil
}

// Update применяет правку администратора. Правила вместимости и сроков намеренно не применяются
func (s *Service) Update(ctx context.Context, id int64, adminID string, req *models.UpdateRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Update: reservation id=%d by admin=%s", id, adminID)

	upd, err := req.ToDomainUpdate(s.config.Location)
	if err != nil {
		s.logger.Warn("Update: invalid input for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	before, err := s.get(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	updated, err := s.reservationRepo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Update: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Update: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, before)
	s.invalidate(ctx, updated)

	s.logger.Info("Update: successfully updated reservation id=%d", id)
	return models.FromDomainReservation(updated), nil
}

// Dashboard сводка на сегодня, график за последние 7 дней и последние заявки
func (s *Service) Dashboard(ctx context.Context) (*models.DashboardResponse, error) {
	today := domain.DateOnly(s.timeProvider.Now().In(s.config.Location))
	from := today.AddDate(0, 0, -(dashboardDays - 1))

	counts, err := s.reservationRepo.CountByDateRange(ctx, from, today)
	if err != nil {
		s.logger.Error("Dashboard: failed to count reservations: %v", err)
		return nil, fmt.Errorf("%w: Dashboard - count reservations: %v", ErrInternal, err)
	}

	guests, err := s.reservationRepo.SumActiveGuestsByDate(ctx, today)
	if err != nil {
		s.logger.Error("Dashboard: failed to sum guests: %v", err)
		return nil, fmt.Errorf("%w: Dashboard - sum guests: %v", ErrInternal, err)
	}

	recent, err := s.reservationRepo.ListRecent(ctx, recentLimit)
	if err != nil {
		s.logger.Error("Dashboard: failed to list recent reservations: %v", err)
		return nil, fmt.Errorf("%w: Dashboard - list recent: %v", ErrInternal, err)
	}

	days := make([]models.DayCount, 0, dashboardDays)
	for d := from; !d.After(today); d = d.AddDate(0, 0, 1) {
		key := d.Format(domain.DateFormat)
		days = append(days, models.DayCount{Date: key, Count: counts[key]})
	}

	return &models.DashboardResponse{
		TodayReservations: counts[today.Format(domain.DateFormat)],
		TodayGuests:       guests,
		Capacity:          s.config.Capacity,
		FillRate:          FillRate(guests, s.config.Capacity),
		LastSevenDays:     days,
		Recent:            models.FromDomainReservationList(recent).Reservations,
	}, nil
}

// FillRate процент заполнения зала, округленный до десятых
func FillRate(guests, capacity int) float64 {
	if guests <= 0 || capacity <= 0 {
		return 0
	}
	return math.Round(float64(guests)/float64(capacity)*1000) / 10
}

func (s *Service) get(ctx context.Context, method string, id int64) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", method, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return reservation, nil
}

func (s *Service) invalidate(ctx context.Context, r *domain.Reservation) {
	if s.cache == nil || r == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, r.Date); err != nil {
		s.logger.Warn("invalidate: failed to drop availability cache for %s: %v", r.Date.Format(domain.DateFormat), err)
	}
}
