package get_available_slots

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

// ComputeAvailableSlots возвращает слоты на дату, в которые помещается компания.
//
// existing - бронирования ровно на эту дату без отмененных; повторно не фильтруются.
// Слот доступен, если capacity - сумма гостей пересекающихся бронирований >= guests.
// Пустые списки - не ошибка, а "все занято".
func ComputeAvailableSlots(
	date time.Time,
	party domain.PartySize,
	existing []*domain.Reservation,
	cfg domain.RestaurantConfig,
) (*domain.DaySlots, error) {
	if err := checkDay(date, party, cfg); err != nil {
		return nil, err
	}

	result := &domain.DaySlots{
		Lunch:  []types.TimeString{},
		Dinner: []types.TimeString{},
	}

	for _, w := range cfg.Windows() {
		for _, slot := range generateTimeSlots(w.Window, cfg.SlotGranularityMinutes) {
			overlapping := domain.OverlappingGuests(slot.On(date), cfg.TableDuration(), existing)
			if cfg.Capacity-overlapping >= party.Guests {
				result.Append(w.Meal, slot)
			}
		}
	}

	return result, nil
}

// checkDay отсекает выходной день и размер компании до обращения к данным
func checkDay(date time.Time, party domain.PartySize, cfg domain.RestaurantConfig) error {
	if cfg.IsClosedOn(date) {
		return domain.Reject(domain.CodeClosedDay,
			"the restaurant is closed on %ss", strings.ToLower(cfg.ClosedWeekday.String()))
	}
	return party.Check(cfg.MaxPartySize)
}

// generateTimeSlots генерирует слоты от начала до конца окна включительно с шагом step минут
func generateTimeSlots(window domain.MealWindow, step int) []types.TimeString {
	if step <= 0 {
		return nil
	}

	start := window.Start.Minutes()
	end := window.End.Minutes()

	slots := make([]types.TimeString, 0, (end-start)/step+1)
	for m := start; m <= end; m += step {
		slot, err := window.Start.AddMinutes(m - start)
		if err != nil {
			break
		}
		slots = append(slots, slot)
	}
	return slots
}
