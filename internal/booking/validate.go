// Package booking holds the pure reservation-slot logic shared by the
// HTTP layer and usable by any client: input validation and the
// upcoming/past view partition.  Nothing in this package touches the
// database or the network.
package booking

import (
	"errors"
	"regexp"
	"time"
)

// Validation failures are sentinel errors so callers can branch with
// errors.Is while the message itself is safe to show to end users.
var (
	ErrMissingFields    = errors.New("missing required fields")
	ErrInvalidDate      = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTime      = errors.New("invalid time format, use HH:MM or HH:MM:SS")
	ErrInvalidPartySize = errors.New("people count must be a positive integer")
)

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9])?$`)
)

// Input carries the raw slot fields as received from a client.
// PeopleCount is a pointer so that an absent field can be told apart
// from an explicit zero: absent means ErrMissingFields, zero means
// ErrInvalidPartySize.
type Input struct {
	Date        string
	Time        string
	PeopleCount *int
}

// Slot is a validated, normalized reservation slot.  Time always
// carries seconds (HH:MM:SS), which is the canonical stored form.
type Slot struct {
	Date        string
	Time        string
	PeopleCount int
}

// Validate checks raw slot input and returns its normalized form or the
// first matching sentinel error.  The same rules run on create and on
// update, and any client-side pre-check is advisory only: this function
// is the authoritative gate on the server.
//
// The date must be a real calendar date, not just four-two-two digits;
// the regexp alone would let 2025-02-30 through.
func Validate(in Input) (Slot, error) {
	if in.Date == "" || in.Time == "" || in.PeopleCount == nil {
		return Slot{}, ErrMissingFields
	}
	if !dateRe.MatchString(in.Date) {
		return Slot{}, ErrInvalidDate
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return Slot{}, ErrInvalidDate
	}
	if !timeRe.MatchString(in.Time) {
		return Slot{}, ErrInvalidTime
	}
	if *in.PeopleCount < 1 {
		return Slot{}, ErrInvalidPartySize
	}
	t := in.Time
	if len(t) == 5 { // HH:MM -> HH:MM:00
		t += ":00"
	}
	return Slot{Date: in.Date, Time: t, PeopleCount: *in.PeopleCount}, nil
}
