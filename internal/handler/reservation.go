package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Evang2/restaurant-app/internal/booking"
	"github.com/Evang2/restaurant-app/internal/model"
	"github.com/Evang2/restaurant-app/internal/queue"
	"github.com/Evang2/restaurant-app/internal/repository"
)

// restaurantDirectory is the lookup the reservation flow needs to
// verify a booking target exists.
type restaurantDirectory interface {
	GetByID(ctx context.Context, id uint64) (model.Restaurant, error)
}

// reservationStore covers the reservation persistence used by the
// lifecycle endpoints.
type reservationStore interface {
	ExistsForSlot(ctx context.Context, userID, restaurantID uint64, date, timeOfDay string) (bool, error)
	Create(ctx context.Context, res *model.Reservation) error
	ListByUser(ctx context.Context, userID uint64) ([]model.UserReservation, error)
	Update(ctx context.Context, reservationID, userID uint64, date, timeOfDay string, peopleCount int) error
	Delete(ctx context.Context, reservationID, userID uint64) error
}

// ReservationHandler implements the reservation lifecycle endpoints.
// JWT middleware must run first: handlers read the authenticated user
// ID from context and trust it. Every store call runs under a short
// request-scoped timeout so no operation can hold a pool connection
// past its deadline.
type ReservationHandler struct {
	Restaurants  restaurantDirectory
	Reservations reservationStore

	// Publish, when non-nil, is invoked after a successful create.
	// Failures are logged and ignored: the event stream is best-effort.
	Publish func(ctx context.Context, ev queue.ReservationConfirmedEvent) error
}

// NewReservationHandler constructs a ReservationHandler. Publish may be
// nil to disable event publishing.
func NewReservationHandler(restaurants restaurantDirectory, reservations reservationStore,
	publish func(ctx context.Context, ev queue.ReservationConfirmedEvent) error) *ReservationHandler {
	if restaurants == nil || reservations == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{Restaurants: restaurants, Reservations: reservations, Publish: publish}
}

type createReservationReq struct {
	RestaurantID uint64 `json:"restaurant_id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	PeopleCount  *int   `json:"people_count"`
}

type updateReservationReq struct {
	ReservationID uint64 `json:"reservation_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	PeopleCount   *int   `json:"people_count"`
}

// Create handles POST /reservations. The validator runs first, then the
// restaurant lookup, then the duplicate-slot pre-check; the UNIQUE key
// on the reservations table backs the pre-check up under races.
func (h *ReservationHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.RestaurantID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": booking.ErrMissingFields.Error()})
	}
	slot, err := booking.Validate(booking.Input{Date: req.Date, Time: req.Time, PeopleCount: req.PeopleCount})
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	restaurant, err := h.Restaurants.GetByID(ctx, req.RestaurantID)
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		c.Logger().Errorf("restaurant lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	exists, err := h.Reservations.ExistsForSlot(ctx, userID, req.RestaurantID, slot.Date, slot.Time)
	if err != nil {
		c.Logger().Errorf("reservation slot check failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if exists {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "you already have a reservation for this time slot"})
	}

	res := model.Reservation{
		UserID:       userID,
		RestaurantID: req.RestaurantID,
		Date:         slot.Date,
		Time:         slot.Time,
		PeopleCount:  slot.PeopleCount,
	}
	if err := h.Reservations.Create(ctx, &res); err != nil {
		if errors.Is(err, repository.ErrDuplicateReservation) {
			// Lost the race between pre-check and insert; the UNIQUE key caught it.
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "you already have a reservation for this time slot"})
		}
		c.Logger().Errorf("reservation insert failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
	}

	if h.Publish != nil {
		ev := queue.ReservationConfirmedEvent{
			ReservationID:  res.ID,
			UserID:         res.UserID,
			RestaurantID:   res.RestaurantID,
			RestaurantName: restaurant.Name,
			Date:           res.Date,
			Time:           res.Time,
			PeopleCount:    res.PeopleCount,
			ConfirmedAt:    time.Now().UTC().Format(time.RFC3339),
		}
		if err := h.Publish(ctx, ev); err != nil {
			c.Logger().Warnf("reservation event publish failed: %v", err)
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Reservation created successfully"})
}

// List handles GET /user/reservations. Each reservation is decorated
// with its restaurant's name and the result is ordered by (date, time)
// ascending; clients derive their own upcoming/past views from it with
// booking.Partition. The response is always a JSON array.
func (h *ReservationHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reservations, err := h.Reservations.ListByUser(ctx, userID)
	if err != nil {
		c.Logger().Errorf("list reservations failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve reservations"})
	}
	return c.JSON(http.StatusOK, reservations)
}

// Update handles PUT /reservations/update. The same validator as
// Create runs on the new slot. A miss on (reservation_id, user_id) is
// reported as 404 without revealing whether the reservation exists.
func (h *ReservationHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.ReservationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": booking.ErrMissingFields.Error()})
	}
	slot, err := booking.Validate(booking.Input{Date: req.Date, Time: req.Time, PeopleCount: req.PeopleCount})
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err = h.Reservations.Update(ctx, req.ReservationID, userID, slot.Date, slot.Time, slot.PeopleCount)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"message": "Reservation updated successfully"})
	case errors.Is(err, repository.ErrNotFoundOrUnauthorized):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found or unauthorized"})
	case errors.Is(err, repository.ErrDuplicateReservation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "you already have a reservation for this time slot"})
	default:
		c.Logger().Errorf("reservation update failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update reservation"})
	}
}

// Delete handles DELETE /reservations/:reservation_id. Hard delete,
// owner only; the not-found and not-owned cases are indistinguishable
// by design.
func (h *ReservationHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reservationID, err := strconv.ParseUint(c.Param("reservation_id"), 10, 64)
	if err != nil || reservationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err = h.Reservations.Delete(ctx, reservationID, userID)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"message": "Reservation deleted successfully"})
	case errors.Is(err, repository.ErrNotFoundOrUnauthorized):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found or unauthorized"})
	default:
		c.Logger().Errorf("reservation delete failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete reservation"})
	}
}
