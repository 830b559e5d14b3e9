package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

// Исходы для метрик помимо кодов отказа
const (
	outcomeAccepted = "accepted"
	outcomeError    = "error"

	notificationKind = "confirmed"
)

// Request сырые поля формы бронирования
type Request struct {
	Date            string // YYYY-MM-DD
	Time            string // HH:MM
	Guests          string // "1".."12" или "13+"
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	SpecialRequests *string // Опционально
}

// ParsedRequest строго типизированный запрос, прошедший проверки без обращения к данным
type ParsedRequest struct {
	Date            time.Time // Полночь в часовом поясе ресторана
	StartTime       types.TimeString
	Guests          int
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	SpecialRequests *string
}

// StartsAt момент прихода гостей
func (p *ParsedRequest) StartsAt() time.Time {
	return p.StartTime.On(p.Date)
}

// Draft готовая к сохранению запись. Публичный путь сразу подтверждает бронирование
func (p *ParsedRequest) Draft() *domain.Reservation {
	return &domain.Reservation{
		Date:            p.Date,
		StartTime:       p.StartTime,
		Guests:          p.Guests,
		Status:          domain.StatusConfirmed,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Email:           p.Email,
		Phone:           p.Phone,
		SpecialRequests: p.SpecialRequests,
	}
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	Date            time.Time
	StartTime       types.TimeString
	Guests          int
	Status          string
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	SpecialRequests *string
	CreatedAt       time.Time
}
