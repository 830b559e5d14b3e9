package notification

import (
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

const (
	EventReservationConfirmed = "reservation.confirmed"
	EventReservationReminder  = "reservation.reminder"
)

// ReservationEvent сообщение для сервиса рассылки писем
type ReservationEvent struct {
	Type            string    `json:"type"`
	ReservationID   int64     `json:"reservation_id"`
	RestaurantName  string    `json:"restaurant_name"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	Guests          int       `json:"guests"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	SpecialRequests *string   `json:"special_requests,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}

func newEvent(eventType, restaurant string, r *domain.Reservation, now time.Time) ReservationEvent {
	return ReservationEvent{
		Type:            eventType,
		ReservationID:   r.ID,
		RestaurantName:  restaurant,
		Date:            r.Date.Format(domain.DateFormat),
		Time:            r.StartTime.String(),
		Guests:          r.Guests,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Email:           r.Email,
		Phone:           r.Phone,
		SpecialRequests: r.SpecialRequests,
		OccurredAt:      now.UTC(),
	}
}
