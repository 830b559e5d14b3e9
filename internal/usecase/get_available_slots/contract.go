package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// GetActiveByDate возвращает бронирования на дату, кроме отмененных
	GetActiveByDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error)
}

// AvailabilityCache кеш рассчитанных слотов. Промах - (nil, generation, nil).
// Set принимает поколение, прочитанное в Get, и пропускает запись, если дату успели сбросить
type AvailabilityCache interface {
	Get(ctx context.Context, date time.Time, guests int) (*domain.DaySlots, int64, error)
	Set(ctx context.Context, date time.Time, guests int, generation int64, slots *domain.DaySlots) (bool, error)
}

// Metrics счетчики запросов доступности
type Metrics interface {
	ObserveAvailability(source string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
