package domain

import (
	"time"

	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

// AllStatuses lists every status an administrator may set
var AllStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
}

// IsValid returns true if the status is one of the known statuses
func (s ReservationStatus) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Reservation represents a table request for the restaurant
type Reservation struct {
	ID        int64
	Date      time.Time // calendar date, time part is ignored
	StartTime types.TimeString
	Guests    int
	Status    ReservationStatus

	// Contact info is opaque to the availability engine
	FirstName string
	LastName  string
	Email     string
	Phone     string

	SpecialRequests *string
	InternalNotes   *string

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// ConsumesCapacity returns true if the reservation occupies seats.
// Only cancelled reservations free their seats.
func (r *Reservation) ConsumesCapacity() bool {
	return r.Status != StatusCancelled
}

// StartsAt returns the instant the party arrives, in the location of Date
func (r *Reservation) StartsAt() time.Time {
	return r.StartTime.On(r.Date)
}

// StartsAtIn returns the arrival instant reading Date's calendar day in loc.
// Dates scanned from the database come back in UTC.
func (r *Reservation) StartsAtIn(loc *time.Location) time.Time {
	y, m, d := r.Date.Date()
	return r.StartTime.On(time.Date(y, m, d, 0, 0, 0, 0, loc))
}

// Occupancy returns the half-open interval [start, start+duration) the party holds its seats
func (r *Reservation) Occupancy(loc *time.Location, tableDuration time.Duration) (time.Time, time.Time) {
	start := r.StartsAtIn(loc)
	return start, start.Add(tableDuration)
}

// FullName returns "First Last"
func (r *Reservation) FullName() string {
	return r.FirstName + " " + r.LastName
}

// ReservationFilter filter for the admin reservation list
type ReservationFilter struct {
	Status *ReservationStatus // nil - any status
	Search *string            // case-insensitive match on first or last name
	Date   *time.Time         // exact date
	Limit  uint64             // 0 - no limit
}

// ReservationUpdate administrative edit of an existing reservation.
// Edits are applied as-is: capacity and lead-time rules are not re-checked.
type ReservationUpdate struct {
	Date          time.Time
	StartTime     types.TimeString
	Guests        int
	Status        ReservationStatus
	InternalNotes *string
}
