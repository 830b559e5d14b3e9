package domain

import "time"

// IntervalsOverlap reports whether [aStart, aEnd) and [bStart, bEnd) share an instant.
// Back-to-back intervals do not overlap.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !(!aEnd.After(bStart) || !aStart.Before(bEnd))
}

// OverlappingGuests sums guests of reservations whose occupancy overlaps
// [start, start+tableDuration). Reservations are read in start's location
// and are not filtered by status: callers pass only capacity-consuming ones.
func OverlappingGuests(start time.Time, tableDuration time.Duration, reservations []*Reservation) int {
	end := start.Add(tableDuration)

	total := 0
	for _, r := range reservations {
		resStart, resEnd := r.Occupancy(start.Location(), tableDuration)
		if IntervalsOverlap(start, end, resStart, resEnd) {
			total += r.Guests
		}
	}
	return total
}
