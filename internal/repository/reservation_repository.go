package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Evang2/restaurant-app/internal/model"
)

// ReservationRepo provides CRUD operations for table reservations.
// Dates and times are stored in DATE and TIME columns and travel as
// strings in their canonical forms (YYYY-MM-DD, HH:MM:SS); callers are
// expected to pass values already normalized by the booking validator.
//
// The table carries UNIQUE (user_id, restaurant_id, date, time) named
// uq_reservation_slot, which is the authoritative guard against
// double-booking. ExistsForSlot is only a fast path for a friendlier
// error message.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// isDuplicateKey reports whether err is a MySQL 1062 duplicate-entry
// violation of the slot uniqueness key.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}

// ExistsForSlot reports whether the user already holds a reservation
// for the exact (restaurant, date, time) slot.
func (r *ReservationRepo) ExistsForSlot(ctx context.Context, userID, restaurantID uint64, date, timeOfDay string) (bool, error) {
	const q = `SELECT 1 FROM reservations
	           WHERE user_id = ? AND restaurant_id = ? AND date = ? AND time = ?
	           LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, userID, restaurantID, date, timeOfDay).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create inserts a new reservation and populates the generated ID on
// the provided record. A duplicate-key violation is mapped to
// ErrDuplicateReservation so the create path stays correct even when
// two identical requests race past the pre-check.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations (user_id, restaurant_id, date, time, people_count)
	           VALUES (?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		res.UserID, res.RestaurantID, res.Date, res.Time, res.PeopleCount)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateReservation
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	return nil
}

// ListByUser returns all reservations of the given user decorated with
// their restaurant's name, ordered by (date, time) ascending. Dates and
// times are formatted in the canonical wire form so rows round-trip
// identically regardless of column type quirks. An empty result is an
// empty slice, never nil.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.UserReservation, error) {
	const q = `SELECT rest.name AS restaurant_name,
	                  rest.restaurant_id,
	                  res.reservation_id,
	                  DATE_FORMAT(res.date, '%Y-%m-%d') AS date,
	                  TIME_FORMAT(res.time, '%H:%i:%s') AS time,
	                  res.people_count
	           FROM reservations res
	           JOIN restaurants rest ON rest.restaurant_id = res.restaurant_id
	           WHERE res.user_id = ?
	           ORDER BY res.date, res.time`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.UserReservation, 0)
	for rows.Next() {
		var m model.UserReservation
		if err := rows.Scan(&m.RestaurantName, &m.RestaurantID, &m.ReservationID,
			&m.Date, &m.Time, &m.PeopleCount); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the slot fields of a reservation. The WHERE clause
// restricts on both the reservation ID and the owning user, so a
// non-owner sees exactly the same ErrNotFoundOrUnauthorized as a caller
// using a nonexistent ID. Moving onto a slot the user already booked
// trips the uniqueness key and returns ErrDuplicateReservation.
func (r *ReservationRepo) Update(ctx context.Context, reservationID, userID uint64, date, timeOfDay string, peopleCount int) error {
	const q = `UPDATE reservations
	           SET date = ?, time = ?, people_count = ?
	           WHERE reservation_id = ? AND user_id = ?`
	result, err := r.db.ExecContext(ctx, q, date, timeOfDay, peopleCount, reservationID, userID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateReservation
		}
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	// The connection is opened with clientFoundRows, so n counts matched
	// rows: a no-op edit of one's own reservation is not mistaken for a
	// missing one.
	if n == 0 {
		return ErrNotFoundOrUnauthorized
	}
	return nil
}

// Delete removes a reservation owned by the given user. Hard delete:
// there is no tombstone. Zero affected rows means not found or not
// owned, reported indistinguishably.
func (r *ReservationRepo) Delete(ctx context.Context, reservationID, userID uint64) error {
	const q = `DELETE FROM reservations WHERE reservation_id = ? AND user_id = ?`
	result, err := r.db.ExecContext(ctx, q, reservationID, userID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFoundOrUnauthorized
	}
	return nil
}
