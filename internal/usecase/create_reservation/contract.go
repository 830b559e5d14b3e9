package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// LockDate берет транзакционную блокировку на дату до конца транзакции
	LockDate(ctx context.Context, date time.Time) error
	GetActiveByDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error)
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
}

// TransactionManager интерфейс для управления транзакциями.
// Транзакция, откатанная postgres из-за конфликта, повторяется вместе с fn
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier публикует событие подтвержденного бронирования
type Notifier interface {
	PublishReservationConfirmed(ctx context.Context, reservation *domain.Reservation) error
}

// AvailabilityCache сбрасывает кеш слотов на дату
type AvailabilityCache interface {
	Invalidate(ctx context.Context, date time.Time) error
}

// Metrics счетчики исходов бронирования
type Metrics interface {
	ObserveReservation(outcome string)
	ObserveNotificationFailure(kind string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
