// Package repository defines error types reused across repositories.
// These sentinel values let handlers distinguish failure scenarios
// without inspecting driver error strings.
package repository

import "errors"

// ErrRestaurantNotFound is returned when a referenced restaurant does
// not exist in the catalog. Handlers should translate this into an
// HTTP 404 response.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// ErrDuplicateReservation is returned when the same user already holds
// a reservation for the same restaurant, date and time. The uniqueness
// rule is enforced by a UNIQUE key on the reservations table, so this
// error also covers the race where two identical requests pass the
// application-level pre-check together. Handlers should translate this
// into an HTTP 400 response.
var ErrDuplicateReservation = errors.New("duplicate reservation for this time slot")

// ErrNotFoundOrUnauthorized is returned when an update or delete
// matched no row. It deliberately does not say whether the reservation
// is missing or belongs to another user, so a caller cannot probe for
// the existence of other users' reservation IDs. Handlers should
// translate this into an HTTP 404 response.
var ErrNotFoundOrUnauthorized = errors.New("reservation not found or unauthorized")

// ErrEmailExists is returned when registration collides with an
// existing account. Handlers should translate this into an HTTP 409
// response.
var ErrEmailExists = errors.New("email already exists")
