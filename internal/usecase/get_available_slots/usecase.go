package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	cache           AvailabilityCache // nil - кеш выключен
	metrics         Metrics
	config          domain.RestaurantConfig
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	cache AvailabilityCache,
	metrics Metrics,
	config domain.RestaurantConfig,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		cache:           cache,
		metrics:         metrics,
		config:          config,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, guests=%s",
		req.Date.Format(domain.DateFormat), req.Party)

	// 1. Валидация входных данных
	if req.Date.IsZero() {
		uc.observe(sourceRejected)
		return nil, domain.Reject(domain.CodeInvalidFormat, "date is required")
	}

	// 2. Выходной день и размер компании проверяем до обращения к хранилищу
	if err := checkDay(req.Date, req.Party, uc.config); err != nil {
		uc.logger.Info("GetAvailableSlots: rejected: %v", err)
		uc.observe(sourceRejected)
		return nil, err
	}

	// 3. Пробуем кеш. Поколение читаем до обращения к хранилищу
	slots, generation, cacheable := uc.fromCache(ctx, req)
	if slots != nil {
		uc.observe(sourceCache)
		return toResponse(req, slots), nil
	}

	// 4. Получаем активные бронирования на дату
	reservations, err := uc.reservationRepo.GetActiveByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 5. Считаем слоты
	slots, err = ComputeAvailableSlots(req.Date, req.Party, reservations, uc.config)
	if err != nil {
		uc.observe(sourceRejected)
		return nil, err
	}

	// 6. Кладем в кеш; ошибка кеша не ломает ответ
	if cacheable {
		stored, err := uc.cache.Set(ctx, req.Date, req.Party.Guests, generation, slots)
		if err != nil {
			uc.logger.Warn("GetAvailableSlots: failed to cache slots: %v", err)
		} else if !stored {
			uc.logger.Info("GetAvailableSlots: date=%s invalidated during computation, result not cached",
				req.Date.Format(domain.DateFormat))
		}
	}

	uc.observe(sourceComputed)
	uc.logger.Info("GetAvailableSlots: date=%s, %d reservations, %d lunch and %d dinner slots available",
		req.Date.Format(domain.DateFormat), len(reservations), len(slots.Lunch), len(slots.Dinner))

	return toResponse(req, slots), nil
}

// fromCache возвращает слоты из кеша и поколение даты.
// cacheable=false, если кеш выключен или недоступен: без поколения результат не кешируем
func (uc *UseCase) fromCache(ctx context.Context, req *Request) (slots *domain.DaySlots, generation int64, cacheable bool) {
	if uc.cache == nil {
		return nil, 0, false
	}

	slots, generation, err := uc.cache.Get(ctx, req.Date, req.Party.Guests)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: cache read failed: %v", err)
		return nil, 0, false
	}
	return slots, generation, true
}

func (uc *UseCase) observe(source string) {
	if uc.metrics != nil {
		uc.metrics.ObserveAvailability(source)
	}
}

func toResponse(req *Request, slots *domain.DaySlots) *Response {
	return &Response{
		Date:   req.Date,
		Guests: req.Party.Guests,
		Lunch:  slots.Lunch,
		Dinner: slots.Dinner,
	}
}
