package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	createReservation "github.com/m04kA/SMC-RestaurantService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model. Поля приходят из формы как есть
type CreateReservationRequest struct {
	Date            string  `json:"date"`   // "2025-10-15"
	Time            string  `json:"time"`   // "19:30"
	Guests          string  `json:"guests"` // "4" или "13+"
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	SpecialRequests *string `json:"specialRequests,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64     `json:"id"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	Guests          int       `json:"guests"`
	Status          string    `json:"status"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	SpecialRequests *string   `json:"specialRequests,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case. Проверки выполняет use case
func (r *CreateReservationRequest) ToUseCaseRequest() *createReservation.Request {
	return &createReservation.Request{
		Date:            r.Date,
		Time:            r.Time,
		Guests:          r.Guests,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Email:           r.Email,
		Phone:           r.Phone,
		SpecialRequests: r.SpecialRequests,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		Date:            resp.Date.Format(domain.DateFormat),
		Time:            resp.StartTime.String(),
		Guests:          resp.Guests,
		Status:          resp.Status,
		FirstName:       resp.FirstName,
		LastName:        resp.LastName,
		Email:           resp.Email,
		Phone:           resp.Phone,
		SpecialRequests: resp.SpecialRequests,
		CreatedAt:       resp.CreatedAt,
	}
}
