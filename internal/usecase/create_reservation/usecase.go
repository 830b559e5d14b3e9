package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

// UseCase use case для создания бронирования из публичной формы
type UseCase struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	notifier        Notifier          // nil - уведомления выключены
	cache           AvailabilityCache // nil - кеш выключен
	metrics         Metrics
	config          domain.RestaurantConfig
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	notifier Notifier,
	cache AvailabilityCache,
	metrics Metrics,
	config domain.RestaurantConfig,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		notifier:        notifier,
		cache:           cache,
		metrics:         metrics,
		config:          config,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка вместимости и вставка идут в одной READ COMMITTED транзакции под блокировкой даты:
// чтение после блокировки видит все бронирования, закоммиченные предыдущим владельцем.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: date=%s, time=%s, guests=%s", req.Date, req.Time, req.Guests)

	// 1. Проверки без обращения к хранилищу
	now := uc.timeProvider.Now()
	parsed, err := ParseRequest(req, uc.config, now)
	if err != nil {
		uc.reject(err)
		return nil, err
	}

	var created *domain.Reservation

	// 2. Блокировка даты, перечитывание бронирований, проверка вместимости, вставка
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.reservationRepo.LockDate(txCtx, parsed.Date); err != nil {
			uc.logger.Error("CreateReservation: failed to lock date %s: %v", parsed.Date.Format(domain.DateFormat), err)
			return fmt.Errorf("%w: failed to lock date: %w", ErrInternal, err)
		}

		existing, err := uc.reservationRepo.GetActiveByDate(txCtx, parsed.Date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
		}

		if err := CheckCapacity(parsed, existing, uc.config); err != nil {
			return err
		}

		created, err = uc.reservationRepo.Create(txCtx, parsed.Draft())
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if _, ok := domain.AsRejection(err); ok {
			uc.reject(err)
			return nil, err
		}
		uc.observe(outcomeError)
		if !errors.Is(err, ErrInternal) {
			uc.logger.Error("CreateReservation: transaction failed: %v", err)
			err = fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d for %s at %s",
		created.ID, created.Date.Format(domain.DateFormat), created.StartTime)
	uc.observe(outcomeAccepted)

	// 3. Побочные эффекты после коммита; бронирование уже подтверждено
	uc.invalidateCache(ctx, created)
	uc.notify(ctx, created)

	return toResponse(created), nil
}

func (uc *UseCase) reject(err error) {
	r, ok := domain.AsRejection(err)
	if !ok {
		return
	}
	uc.logger.Info("CreateReservation: rejected: %s", r.Error())
	uc.observe(string(r.Code))
}

func (uc *UseCase) invalidateCache(ctx context.Context, r *domain.Reservation) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, r.Date); err != nil {
		uc.logger.Warn("CreateReservation: failed to invalidate availability cache for %s: %v",
			r.Date.Format(domain.DateFormat), err)
	}
}

func (uc *UseCase) notify(ctx context.Context, r *domain.Reservation) {
	if uc.notifier == nil {
		return
	}
	if err := uc.notifier.PublishReservationConfirmed(ctx, r); err != nil {
		uc.logger.Error("CreateReservation: failed to publish confirmation for reservation id=%d: %v", r.ID, err)
		if uc.metrics != nil {
			uc.metrics.ObserveNotificationFailure(notificationKind)
		}
	}
}

func (uc *UseCase) observe(outcome string) {
	if uc.metrics != nil {
		uc.metrics.ObserveReservation(outcome)
	}
}

func toResponse(r *domain.Reservation) *Response {
	return &Response{
		ID:              r.ID,
		Date:            r.Date,
		StartTime:       r.StartTime,
		Guests:          r.Guests,
		Status:          string(r.Status),
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Email:           r.Email,
		Phone:           r.Phone,
		SpecialRequests: r.SpecialRequests,
		CreatedAt:       r.CreatedAt,
	}
}
