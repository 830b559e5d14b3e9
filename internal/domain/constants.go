package domain

import (
	"time"

	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

// Default configuration values
const (
	DefaultRestaurantName         = "Le Lagon"
	DefaultCapacity               = 50
	DefaultTableDurationMinutes   = 120
	DefaultMinLeadHours           = 2
	DefaultMaxAdvanceDays         = 60
	DefaultClosedWeekday          = time.Monday
	DefaultSlotGranularityMinutes = 30
	DefaultMaxPartySize           = 12
)

// Default meal windows (slot start times, inclusive)
var (
	DefaultLunchStart  = types.TimeString("12:00")
	DefaultLunchEnd    = types.TimeString("14:00")
	DefaultDinnerStart = types.TimeString("19:00")
	DefaultDinnerEnd   = types.TimeString("22:00")
)

// Business validation constants
const (
	MinCapacity               = 1
	MaxCapacity               = 1000
	MinTableDurationMinutes   = 15
	MaxTableDurationMinutes   = 480 // 8 hours
	MaxAdvanceDaysLimit       = 365
	MinSlotGranularityMinutes = 5
	MaxSpecialRequestsLength  = 1000
	MaxInternalNotesLength    = 1000
	MaxNameLength             = 100
	MaxEmailLength            = 120
	MaxPhoneLength            = 20
)

// OverflowPartySize is the guest selector value meaning "more than MaxPartySize".
// Such parties must contact the restaurant directly.
const OverflowPartySize = "13+"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DateOnly truncates t to midnight in its own location
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
