package models

import (
	"errors"
	"strings"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")

	// ErrInvalidDate возвращается при дате не в формате YYYY-MM-DD
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrInvalidTime возвращается при времени не в формате HH:MM
	ErrInvalidTime = errors.New("invalid time, expected HH:MM")

	// ErrInvalidGuests возвращается при количестве гостей меньше 1
	ErrInvalidGuests = errors.New("guests must be positive")
)

// Request модели

// ListRequest фильтры списка бронирований. Пустые строки означают "без фильтра"
type ListRequest struct {
	Status string `json:"status,omitempty"`
	Search string `json:"search,omitempty"`
	Date   string `json:"date,omitempty"`
	Limit  uint64 `json:"limit,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListRequest) ToDomainFilter(loc *time.Location) (domain.ReservationFilter, error) {
	filter := domain.ReservationFilter{Limit: r.Limit}

	if s := strings.TrimSpace(r.Status); s != "" {
		status, err := ToDomainStatus(s)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if s := strings.TrimSpace(r.Search); s != "" {
		filter.Search = &s
	}

	if s := strings.TrimSpace(r.Date); s != "" {
		date, err := ParseDate(s, loc)
		if err != nil {
			return filter, err
		}
		filter.Date = &date
	}

	return filter, nil
}

// UpdateStatusRequest запрос на изменение статуса
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateRequest административная правка бронирования.
// Вместимость и сроки не перепроверяются
type UpdateRequest struct {
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	Guests        int     `json:"guests"`
	Status        string  `json:"status"`
	InternalNotes *string `json:"internalNotes,omitempty"`
}

// ToDomainUpdate проверяет форматы и конвертирует request в domain правку
func (r *UpdateRequest) ToDomainUpdate(loc *time.Location) (domain.ReservationUpdate, error) {
	date, err := ParseDate(r.Date, loc)
	if err != nil {
		return domain.ReservationUpdate{}, err
	}

	start, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return domain.ReservationUpdate{}, ErrInvalidTime
	}

	if r.Guests < 1 {
		return domain.ReservationUpdate{}, ErrInvalidGuests
	}

	status, err := ToDomainStatus(r.Status)
	if err != nil {
		return domain.ReservationUpdate{}, err
	}

	var notes *string
	if r.InternalNotes != nil {
		trimmed := strings.TrimSpace(*r.InternalNotes)
		notes = &trimmed
	}

	return domain.ReservationUpdate{
		Date:          date,
		StartTime:     start,
		Guests:        r.Guests,
		Status:        status,
		InternalNotes: notes,
	}, nil
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              int64      `json:"id"`
	Date            string     `json:"date"` // "2030-05-14"
	Time            string     `json:"time"` // "19:30"
	Guests          int        `json:"guests"`
	Status          string     `json:"status"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	SpecialRequests *string    `json:"specialRequests,omitempty"`
	InternalNotes   *string    `json:"internalNotes,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// DayCount количество бронирований за день
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DashboardResponse сводка для главной страницы админки
type DashboardResponse struct {
	TodayReservations int                   `json:"todayReservations"` // любого статуса
	TodayGuests       int                   `json:"todayGuests"`       // без отмененных
	Capacity          int                   `json:"capacity"`
	FillRate          float64               `json:"fillRate"` // проценты, округление до 0.1
	LastSevenDays     []DayCount            `json:"lastSevenDays"`
	Recent            []ReservationResponse `json:"recent"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	return &ReservationResponse{
		ID:              r.ID,
		Date:            r.Date.Format(domain.DateFormat),
		Time:            r.StartTime.String(),
		Guests:          r.Guests,
		Status:          string(r.Status),
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Email:           r.Email,
		Phone:           r.Phone,
		SpecialRequests: r.SpecialRequests,
		InternalNotes:   r.InternalNotes,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		if item := FromDomainReservation(r); item != nil {
			resp.Reservations = append(resp.Reservations, *item)
		}
	}

	return resp
}

// ToDomainStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(strings.ToLower(strings.TrimSpace(status)))
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ParseDate разбирает YYYY-MM-DD в часовом поясе ресторана
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	date, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(raw), loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}
