package domain

import "github.com/m04kA/SMC-RestaurantService/pkg/types"

// DaySlots bookable slot start times of one day, grouped by meal in chronological order.
// An empty list means the meal is fully booked.
type DaySlots struct {
	Lunch  []types.TimeString
	Dinner []types.TimeString
}

// IsEmpty returns true if nothing can be booked that day
func (s *DaySlots) IsEmpty() bool {
	return len(s.Lunch) == 0 && len(s.Dinner) == 0
}

// Total returns the number of bookable slots
func (s *DaySlots) Total() int {
	return len(s.Lunch) + len(s.Dinner)
}

// Append adds a slot to the meal bucket
func (s *DaySlots) Append(meal Meal, t types.TimeString) {
	switch meal {
	case MealLunch:
		s.Lunch = append(s.Lunch, t)
	case MealDinner:
		s.Dinner = append(s.Dinner, t)
	}
}
