// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a table reservation is
// successfully created. It carries enough information for downstream
// consumers to log or notify without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID  uint64 `json:"reservation_id"`
	UserID         uint64 `json:"user_id"`
	RestaurantID   uint64 `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	PeopleCount    int    `json:"people_count"`
	ConfirmedAt    string `json:"confirmed_at"`
}
