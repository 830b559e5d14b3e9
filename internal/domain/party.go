package domain

import (
	"strconv"
	"strings"
)

// PartySize is the parsed guest selector value
type PartySize struct {
	Guests   int
	Overflow bool // "more than the largest selectable bucket"
}

// Party returns a regular party size
func Party(guests int) PartySize {
	return PartySize{Guests: guests}
}

// OverflowParty returns the "more than N" selector value
func OverflowParty() PartySize {
	return PartySize{Overflow: true}
}

// ParsePartySize parses the raw guest selector. Only OverflowPartySize is the
// overflow choice; any other non-numeric value is InvalidFormat.
func ParsePartySize(raw string) (PartySize, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return PartySize{}, ErrMissingFields
	}
	if raw == OverflowPartySize {
		return OverflowParty(), nil
	}

	guests, err := strconv.Atoi(raw)
	if err != nil {
		return PartySize{}, Reject(CodeInvalidFormat, "guests must be a whole number, got %q", raw)
	}
	return Party(guests), nil
}

// Check enforces the online booking bounds: 1..maxPartySize guests
func (p PartySize) Check(maxPartySize int) error {
	if p.Overflow || p.Guests > maxPartySize {
		return Reject(CodePartySizeTooLarge,
			"parties of more than %d guests must contact the restaurant directly", maxPartySize)
	}
	if p.Guests < 1 {
		return Reject(CodeInvalidFormat, "guests must be at least 1, got %d", p.Guests)
	}
	return nil
}

// String returns the selector representation
func (p PartySize) String() string {
	if p.Overflow {
		return OverflowPartySize
	}
	return strconv.Itoa(p.Guests)
}
