package model

// Reservation records a user's table booking at a restaurant for a
// specific date and time slot.  Date and Time are kept as strings in
// their canonical wire form (YYYY-MM-DD and HH:MM:SS) because that is
// how the DATE and TIME columns round-trip through the driver and how
// clients consume them.
//
// Fields:
//  ID           – primary key identifier, assigned by the store on insert.
//  UserID       – user who owns the reservation; sole holder of mutation rights.
//  RestaurantID – restaurant the table is booked at.
//  Date         – calendar date of the booking (YYYY-MM-DD).
//  Time         – time of day of the booking (HH:MM:SS).
//  PeopleCount  – party size, always >= 1.
type Reservation struct {
	ID           uint64 // reservations.reservation_id
	UserID       uint64 // reservations.user_id
	RestaurantID uint64 // reservations.restaurant_id
	Date         string // reservations.date
	Time         string // reservations.time
	PeopleCount  int    // reservations.people_count
}

// UserReservation is one entry of GET /user/reservations: a reservation
// decorated with its restaurant's display name so clients do not need a
// second catalog lookup.  Produced by the repository join against the
// restaurants table.
type UserReservation struct {
	RestaurantName string `json:"restaurant_name"`
	RestaurantID   uint64 `json:"restaurant_id"`
	ReservationID  uint64 `json:"reservation_id"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	PeopleCount    int    `json:"people_count"`
}
