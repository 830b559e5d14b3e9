package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-RestaurantService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date   string   `json:"date"` // "2025-10-15"
	Guests int      `json:"guests"`
	Lunch  []string `json:"lunch"` // Пустой список - обед полностью занят
	Dinner []string `json:"dinner"`
}

// ToUseCaseRequest разбирает query параметры. Дата читается в часовом поясе ресторана
func ToUseCaseRequest(rawDate, rawGuests string, loc *time.Location) (*getAvailableSlots.Request, error) {
	if rawDate == "" {
		return nil, domain.ErrMissingFields
	}

	date, err := time.ParseInLocation(domain.DateFormat, rawDate, loc)
	if err != nil {
		return nil, domain.Reject(domain.CodeInvalidFormat, "date must be YYYY-MM-DD, got %q", rawDate)
	}

	party, err := domain.ParsePartySize(rawGuests)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		Date:  date,
		Party: party,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	return &AvailableSlotsResponse{
		Date:   resp.Date.Format(domain.DateFormat),
		Guests: resp.Guests,
		Lunch:  toStrings(resp.Lunch),
		Dinner: toStrings(resp.Dinner),
	}
}

func toStrings(slots []types.TimeString) []string {
	result := make([]string, 0, len(slots))
	for _, s := range slots {
		result = append(result, s.String())
	}
	return result
}
