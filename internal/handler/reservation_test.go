package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Evang2/restaurant-app/internal/model"
	"github.com/Evang2/restaurant-app/internal/queue"
	"github.com/Evang2/restaurant-app/internal/repository"
)

// dirStub is an in-memory restaurantDirectory.
type dirStub struct {
	byID map[uint64]model.Restaurant
}

func (d *dirStub) GetByID(_ context.Context, id uint64) (model.Restaurant, error) {
	r, ok := d.byID[id]
	if !ok {
		return model.Restaurant{}, repository.ErrRestaurantNotFound
	}
	return r, nil
}

// storeStub is an in-memory reservationStore mirroring the repository's
// contract: slot uniqueness per (user, restaurant, date, time) and
// owner-scoped update/delete that cannot tell missing from not-owned.
type storeStub struct {
	nextID uint64
	items  map[uint64]model.Reservation
}

func newStoreStub() *storeStub {
	return &storeStub{nextID: 1, items: make(map[uint64]model.Reservation)}
}

func (s *storeStub) ExistsForSlot(_ context.Context, userID, restaurantID uint64, date, timeOfDay string) (bool, error) {
	for _, r := range s.items {
		if r.UserID == userID && r.RestaurantID == restaurantID && r.Date == date && r.Time == timeOfDay {
			return true, nil
		}
	}
	return false, nil
}

func (s *storeStub) Create(_ context.Context, res *model.Reservation) error {
	res.ID = s.nextID
	s.nextID++
	s.items[res.ID] = *res
	return nil
}

func (s *storeStub) ListByUser(_ context.Context, userID uint64) ([]model.UserReservation, error) {
	out := make([]model.UserReservation, 0)
	for _, r := range s.items {
		if r.UserID != userID {
			continue
		}
		out = append(out, model.UserReservation{
			RestaurantID:  r.RestaurantID,
			ReservationID: r.ID,
			Date:          r.Date,
			Time:          r.Time,
			PeopleCount:   r.PeopleCount,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (s *storeStub) Update(_ context.Context, reservationID, userID uint64, date, timeOfDay string, peopleCount int) error {
	r, ok := s.items[reservationID]
	if !ok || r.UserID != userID {
		return repository.ErrNotFoundOrUnauthorized
	}
	for id, other := range s.items {
		if id == reservationID {
			continue
		}
		if other.UserID == userID && other.RestaurantID == r.RestaurantID && other.Date == date && other.Time == timeOfDay {
			return repository.ErrDuplicateReservation
		}
	}
	r.Date, r.Time, r.PeopleCount = date, timeOfDay, peopleCount
	s.items[reservationID] = r
	return nil
}

func (s *storeStub) Delete(_ context.Context, reservationID, userID uint64) error {
	r, ok := s.items[reservationID]
	if !ok || r.UserID != userID {
		return repository.ErrNotFoundOrUnauthorized
	}
	delete(s.items, reservationID)
	return nil
}

func newReservationFixture() (*ReservationHandler, *storeStub) {
	dir := &dirStub{byID: map[uint64]model.Restaurant{
		1: {ID: 1, Name: "Trattoria Nonna", Location: "Via Roma 1"},
		2: {ID: 2, Name: "Sakura House", Location: "Cherry St 9"},
	}}
	store := newStoreStub()
	return NewReservationHandler(dir, store, nil), store
}

func jsonCtx(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func errField(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestCreateReservationNormalizesTime(t *testing.T) {
	e := echo.New()
	h, store := newReservationFixture()

	c, rec := jsonCtx(e, http.MethodPost, "/reservations",
		`{"restaurant_id":1,"date":"2025-07-10","time":"19:00","people_count":4}`)
	c.Set("user_id", uint64(7))

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, store.items, 1)
	stored := store.items[1]
	assert.Equal(t, uint64(7), stored.UserID)
	assert.Equal(t, "2025-07-10", stored.Date)
	assert.Equal(t, "19:00:00", stored.Time) // seconds appended
	assert.Equal(t, 4, stored.PeopleCount)
}

func TestCreateReservationPublishesEvent(t *testing.T) {
	e := echo.New()
	h, _ := newReservationFixture()

	var got queue.ReservationConfirmedEvent
	h.Publish = func(_ context.Context, ev queue.ReservationConfirmedEvent) error {
		got = ev
		return nil
	}

	c, rec := jsonCtx(e, http.MethodPost, "/reservations",
		`{"restaurant_id":2,"date":"2025-07-10","time":"18:30:00","people_count":2}`)
	c.Set("user_id", uint64(7))

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, uint64(1), got.ReservationID)
	assert.Equal(t, "Sakura House", got.RestaurantName)
	assert.Equal(t, "18:30:00", got.Time)
}

func TestCreateReservationValidation(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"missing date", `{"restaurant_id":1,"time":"19:00","people_count":2}`, "missing required fields"},
		{"missing time", `{"restaurant_id":1,"date":"2025-07-10","people_count":2}`, "missing required fields"},
		{"missing people count", `{"restaurant_id":1,"date":"2025-07-10","time":"19:00"}`, "missing required fields"},
		{"missing restaurant", `{"date":"2025-07-10","time":"19:00","people_count":2}`, "missing required fields"},
		{"bad date shape", `{"restaurant_id":1,"date":"07/10/2025","time":"19:00","people_count":2}`, "invalid date format, use YYYY-MM-DD"},
		{"impossible date", `{"restaurant_id":1,"date":"2025-02-30","time":"19:00","people_count":2}`, "invalid date format, use YYYY-MM-DD"},
		{"bad time", `{"restaurant_id":1,"date":"2025-07-10","time":"25:00","people_count":2}`, "invalid time format, use HH:MM or HH:MM:SS"},
		{"zero party", `{"restaurant_id":1,"date":"2025-07-10","time":"19:00","people_count":0}`, "people count must be a positive integer"},
		{"negative party", `{"restaurant_id":1,"date":"2025-07-10","time":"19:00","people_count":-3}`, "people count must be a positive integer"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			h, store := newReservationFixture()

			c, rec := jsonCtx(e, http.MethodPost, "/reservations", tc.body)
			c.Set("user_id", uint64(7))

			require.NoError(t, h.Create(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.wantErr, errField(t, rec))
			assert.Empty(t, store.items, "nothing may be stored on a validation failure")
		})
	}
}

func TestCreateReservationUnknownRestaurant(t *testing.T) {
	e := echo.New()
	h, store := newReservationFixture()

	c, rec := jsonCtx(e, http.MethodPost, "/reservations",
		`{"restaurant_id":99,"date":"2025-07-10","time":"19:00","people_count":2}`)
	c.Set("user_id", uint64(7))

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, store.items)
}

func TestCreateReservationDuplicateSlot(t *testing.T) {
	e := echo.New()
	h, store := newReservationFixture()

	first, rec1 := jsonCtx(e, http.MethodPost, "/reservations",
		`{"restaurant_id":1,"date":"2025-07-10","time":"19:00","people_count":2}`)
	first.Set("user_id", uint64(7))
	require.NoError(t, h.Create(first))
	require.Equal(t, http.StatusCreated, rec1.Code)

	// identical slot again, HH:MM:SS spelling must still collide
	second, rec2 := jsonCtx(e, http.MethodPost, "/reservations",
		`{"restaurant_id":1,"date":"2025-07-10","time":"19:00:00","people_count":5}`)
	second.Set("user_id", uint64(7))
	require.NoError(t, h.Create(second))
	assert.Equal(t, http.StatusBadRequest, rec2.Code)
	assert.Len(t, store.items, 1)

	// another user may book the very same slot
	other, rec3 := jsonCtx(e, http.MethodPost, "/reservations",
		`{"restaurant_id":1,"date":"2025-07-10","time":"19:00","people_count":2}`)
	other.Set("user_id", uint64(8))
	require.NoError(t, h.Create(other))
	assert.Equal(t, http.StatusCreated, rec3.Code)
	assert.Len(t, store.items, 2)
}

func TestListReservationsAlwaysArray(t *testing.T) {
	e := echo.New()
	h, store := newReservationFixture()

	c, rec := jsonCtx(e, http.MethodGet, "/user/reservations", "")
	c.Set("user_id", uint64(7))
	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))

	store.items[1] = model.Reservation{ID: 1, UserID: 7, RestaurantID: 1, Date: "2025-07-10", Time: "19:00:00", PeopleCount: 2}
	store.items[2] = model.Reservation{ID: 2, UserID: 7, RestaurantID: 2, Date: "2025-06-01", Time: "12:00:00", PeopleCount: 4}
	store.items[3] = model.Reservation{ID: 3, UserID: 8, RestaurantID: 1, Date: "2025-07-10", Time: "19:00:00", PeopleCount: 2}
	store.nextID = 4

	c2, rec2 := jsonCtx(e, http.MethodGet, "/user/reservations", "")
	c2.Set("user_id", uint64(7))
	require.NoError(t, h.List(c2))
	assert.Equal(t, http.StatusOK, rec2.Code)

	var out []model.UserReservation
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &out))
	require.Len(t, out, 2, "only the caller's reservations")
	assert.Equal(t, uint64(2), out[0].ReservationID, "ordered by date then time")
	assert.Equal(t, uint64(1), out[1].ReservationID)
}

func TestUpdateReservation(t *testing.T) {
	e := echo.New()
	h, store := newReservationFixture()
	store.items[5] = model.Reservation{ID: 5, UserID: 7, RestaurantID: 1, Date: "2025-07-10", Time: "19:00:00", PeopleCount: 2}
	store.nextID = 6

	c, rec := jsonCtx(e, http.MethodPut, "/reservations/update",
		`{"reservation_id":5,"date":"2025-07-11","time":"20:30","people_count":6}`)
	c.Set("user_id", uint64(7))

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	got := store.items[5]
	assert.Equal(t, "2025-07-11", got.Date)
	assert.Equal(t, "20:30:00", got.Time)
	assert.Equal(t, 6, got.PeopleCount)
}

func TestUpdateReservationZeroPartyRejected(t *testing.T) {
	e := echo.New()
	h, store := newReservationFixture()
	store.items[5] = model.Reservation{ID: 5, UserID: 7, RestaurantID: 1, Date: "2025-07-10", Time: "19:00:00", PeopleCount: 2}
	store.nextID = 6

	c, rec := jsonCtx(e, http.MethodPut, "/reservations/update",
		`{"reservation_id":5,"date":"2025-07-10","time":"19:00","people_count":0}`)
	c.Set("user_id", uint64(7))

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "people count must be a positive integer", errField(t, rec))
	assert.Equal(t, 2, store.items[5].PeopleCount, "record must be untouched")
}

func TestUpdateAndDeleteHideOwnership(t *testing.T) {
	e := echo.New()
	h, store := newReservationFixture()
	store.items[5] = model.Reservation{ID: 5, UserID: 8, RestaurantID: 1, Date: "2025-07-10", Time: "19:00:00", PeopleCount: 2}
	store.nextID = 6

	// Not-owned and nonexistent must produce byte-identical responses,
	// otherwise a caller could probe which reservation IDs exist.
	notOwned, recA := jsonCtx(e, http.MethodPut, "/reservations/update",
		`{"reservation_id":5,"date":"2025-07-11","time":"20:00","people_count":3}`)
	notOwned.Set("user_id", uint64(7))
	require.NoError(t, h.Update(notOwned))

	missing, recB := jsonCtx(e, http.MethodPut, "/reservations/update",
		`{"reservation_id":999,"date":"2025-07-11","time":"20:00","people_count":3}`)
	missing.Set("user_id", uint64(7))
	require.NoError(t, h.Update(missing))

	assert.Equal(t, http.StatusNotFound, recA.Code)
	assert.Equal(t, recA.Code, recB.Code)
	assert.Equal(t, recA.Body.String(), recB.Body.String())

	delNotOwned, recC := jsonCtx(e, http.MethodDelete, "/reservations/5", "")
	delNotOwned.SetParamNames("reservation_id")
	delNotOwned.SetParamValues("5")
	delNotOwned.Set("user_id", uint64(7))
	require.NoError(t, h.Delete(delNotOwned))

	delMissing, recD := jsonCtx(e, http.MethodDelete, "/reservations/999", "")
	delMissing.SetParamNames("reservation_id")
	delMissing.SetParamValues("999")
	delMissing.Set("user_id", uint64(7))
	require.NoError(t, h.Delete(delMissing))

	assert.Equal(t, http.StatusNotFound, recC.Code)
	assert.Equal(t, recC.Body.String(), recD.Body.String())
	assert.Contains(t, store.items, uint64(5), "foreign reservation must survive")
}

func TestDeleteReservationByOwner(t *testing.T) {
	e := echo.New()
	h, store := newReservationFixture()
	store.items[5] = model.Reservation{ID: 5, UserID: 7, RestaurantID: 1, Date: "2025-07-10", Time: "19:00:00", PeopleCount: 2}
	store.nextID = 6

	c, rec := jsonCtx(e, http.MethodDelete, "/reservations/5", "")
	c.SetParamNames("reservation_id")
	c.SetParamValues("5")
	c.Set("user_id", uint64(7))

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.items)
}

func TestReservationEndpointsRequireUser(t *testing.T) {
	e := echo.New()
	h, _ := newReservationFixture()

	c, rec := jsonCtx(e, http.MethodPost, "/reservations",
		`{"restaurant_id":1,"date":"2025-07-10","time":"19:00","people_count":2}`)
	// no user_id set
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
