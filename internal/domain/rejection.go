package domain

import (
	"errors"
	"fmt"
)

// RejectionCode machine-readable reason a request was refused
type RejectionCode string

const (
	CodeMissingFields     RejectionCode = "MISSING_FIELDS"
	CodeInvalidFormat     RejectionCode = "INVALID_FORMAT"
	CodeClosedDay         RejectionCode = "CLOSED_DAY"
	CodePartySizeTooLarge RejectionCode = "PARTY_SIZE_TOO_LARGE"
	CodeTooSoon           RejectionCode = "TOO_SOON"
	CodeTooFarAhead       RejectionCode = "TOO_FAR_AHEAD"
	CodeNoCapacity        RejectionCode = "NO_CAPACITY"
)

// Rejection is an expected, user-facing validation outcome.
// Two rejections match under errors.Is when their codes are equal.
type Rejection struct {
	Code    RejectionCode
	Message string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Code, r.Message)
}

// Is matches any rejection carrying the same code
func (r *Rejection) Is(target error) bool {
	t, ok := target.(*Rejection)
	if !ok {
		return false
	}
	return t.Code == r.Code
}

// Reject builds a rejection with a formatted message
func Reject(code RejectionCode, format string, v ...interface{}) *Rejection {
	return &Rejection{Code: code, Message: fmt.Sprintf(format, v...)}
}

// AsRejection extracts a rejection from an error chain
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// Sentinels for errors.Is matching. Messages are generic defaults.
var (
	ErrMissingFields     = &Rejection{Code: CodeMissingFields, Message: "please fill in all required fields"}
	ErrInvalidFormat     = &Rejection{Code: CodeInvalidFormat, Message: "invalid date or time format"}
	ErrClosedDay         = &Rejection{Code: CodeClosedDay, Message: "the restaurant is closed on this day"}
	ErrPartySizeTooLarge = &Rejection{Code: CodePartySizeTooLarge, Message: "large parties must contact the restaurant directly"}
	ErrTooSoon           = &Rejection{Code: CodeTooSoon, Message: "reservations must be made further in advance"}
	ErrTooFarAhead       = &Rejection{Code: CodeTooFarAhead, Message: "reservations cannot be made that far ahead"}
	ErrNoCapacity        = &Rejection{Code: CodeNoCapacity, Message: "no table is available for this slot"}
)
