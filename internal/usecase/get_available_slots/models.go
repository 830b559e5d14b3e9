package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

// Источник результата для метрик
const (
	sourceCache    = "cache"
	sourceComputed = "computed"
	sourceRejected = "rejected"
)

// Request модель запроса доступных слотов
type Request struct {
	Date  time.Time        // Дата в часовом поясе ресторана (без времени)
	Party domain.PartySize // Размер компании
}

// Response модель ответа со слотами, сгруппированными по приему пищи
type Response struct {
	Date   time.Time
	Guests int
	Lunch  []types.TimeString // Пустой список - обед полностью занят
	Dinner []types.TimeString
}
