package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

// Meal identifies a service period
type Meal string

const (
	MealLunch  Meal = "lunch"
	MealDinner Meal = "dinner"
)

// MealPeriod binds a meal to its window
type MealPeriod struct {
	Meal   Meal
	Window MealWindow
}

// MealWindow is the range of bookable slot start times, both ends inclusive
type MealWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// Contains returns true if t lies within [Start, End]
func (w MealWindow) Contains(t types.TimeString) bool {
	return !t.IsBefore(w.Start) && !t.IsAfter(w.End)
}

// RestaurantConfig is the read-only business configuration of the restaurant.
// It is loaded once at startup and treated as constant per request.
type RestaurantConfig struct {
	Name                   string
	Capacity               int // simultaneous guest-seats
	TableDurationMinutes   int
	MinLeadHours           int
	MaxAdvanceDays         int
	ClosedWeekday          time.Weekday
	Lunch                  MealWindow
	Dinner                 MealWindow
	SlotGranularityMinutes int
	MaxPartySize           int // largest party bookable online
	Location               *time.Location
}

// DefaultRestaurantConfig returns the configuration used when nothing is overridden
func DefaultRestaurantConfig() RestaurantConfig {
	return RestaurantConfig{
		Name:                   DefaultRestaurantName,
		Capacity:               DefaultCapacity,
		TableDurationMinutes:   DefaultTableDurationMinutes,
		MinLeadHours:           DefaultMinLeadHours,
		MaxAdvanceDays:         DefaultMaxAdvanceDays,
		ClosedWeekday:          DefaultClosedWeekday,
		Lunch:                  MealWindow{Start: DefaultLunchStart, End: DefaultLunchEnd},
		Dinner:                 MealWindow{Start: DefaultDinnerStart, End: DefaultDinnerEnd},
		SlotGranularityMinutes: DefaultSlotGranularityMinutes,
		MaxPartySize:           DefaultMaxPartySize,
		Location:               time.UTC,
	}
}

// TableDuration returns how long a party holds its seats
func (c RestaurantConfig) TableDuration() time.Duration {
	return time.Duration(c.TableDurationMinutes) * time.Minute
}

// MinLead returns the minimum gap between submission and arrival
func (c RestaurantConfig) MinLead() time.Duration {
	return time.Duration(c.MinLeadHours) * time.Hour
}

// IsClosedOn returns true if the restaurant does not serve on that date
func (c RestaurantConfig) IsClosedOn(date time.Time) bool {
	return date.Weekday() == c.ClosedWeekday
}

// Windows returns the meal windows in chronological order
func (c RestaurantConfig) Windows() []MealPeriod {
	return []MealPeriod{
		{Meal: MealLunch, Window: c.Lunch},
		{Meal: MealDinner, Window: c.Dinner},
	}
}

// Validate checks business bounds of the configuration
func (c RestaurantConfig) Validate() error {
	if c.Capacity < MinCapacity || c.Capacity > MaxCapacity {
		return fmt.Errorf("capacity must be between %d and %d, got %d", MinCapacity, MaxCapacity, c.Capacity)
	}
	if c.TableDurationMinutes < MinTableDurationMinutes || c.TableDurationMinutes > MaxTableDurationMinutes {
		return fmt.Errorf("table duration must be between %d and %d minutes, got %d",
			MinTableDurationMinutes, MaxTableDurationMinutes, c.TableDurationMinutes)
	}
	if c.MinLeadHours < 0 {
		return fmt.Errorf("min lead hours must not be negative, got %d", c.MinLeadHours)
	}
	if c.MaxAdvanceDays < 1 || c.MaxAdvanceDays > MaxAdvanceDaysLimit {
		return fmt.Errorf("max advance days must be between 1 and %d, got %d", MaxAdvanceDaysLimit, c.MaxAdvanceDays)
	}
	if c.SlotGranularityMinutes < MinSlotGranularityMinutes || c.SlotGranularityMinutes > 24*60 {
		return fmt.Errorf("slot granularity must be at least %d minutes, got %d",
			MinSlotGranularityMinutes, c.SlotGranularityMinutes)
	}
	if c.MaxPartySize < 1 {
		return fmt.Errorf("max party size must be positive, got %d", c.MaxPartySize)
	}
	for _, w := range c.Windows() {
		if err := w.Window.Start.Validate(); err != nil {
			return fmt.Errorf("%s window start: %w", w.Meal, err)
		}
		if err := w.Window.End.Validate(); err != nil {
			return fmt.Errorf("%s window end: %w", w.Meal, err)
		}
		if w.Window.End.IsBefore(w.Window.Start) {
			return fmt.Errorf("%s window ends before it starts", w.Meal)
		}
	}
	if c.Location == nil {
		return fmt.Errorf("location is required")
	}
	return nil
}
