package send_reminders

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByDateAndStatus(ctx context.Context, date time.Time, status domain.ReservationStatus) ([]*domain.Reservation, error)
}

// Notifier публикует напоминание о бронировании
type Notifier interface {
	PublishReservationReminder(ctx context.Context, reservation *domain.Reservation) error
}

// Metrics счетчики напоминаний
type Metrics interface {
	ObserveReminder(result string)
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
