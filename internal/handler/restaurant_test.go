package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Evang2/restaurant-app/internal/model"
	"github.com/Evang2/restaurant-app/internal/repository"
)

// catalogStub is an in-memory restaurantCatalog.
type catalogStub struct {
	all []model.Restaurant
}

func (s *catalogStub) GetByID(_ context.Context, id uint64) (model.Restaurant, error) {
	for _, r := range s.all {
		if r.ID == id {
			return r, nil
		}
	}
	return model.Restaurant{}, repository.ErrRestaurantNotFound
}

func (s *catalogStub) ListAll(_ context.Context) ([]model.Restaurant, error) {
	return append([]model.Restaurant{}, s.all...), nil
}

func (s *catalogStub) Search(_ context.Context, query string) ([]model.Restaurant, error) {
	q := strings.ToLower(query)
	out := make([]model.Restaurant, 0)
	for _, r := range s.all {
		if strings.Contains(strings.ToLower(r.Name), q) || strings.Contains(strings.ToLower(r.Location), q) {
			out = append(out, r)
		}
	}
	return out, nil
}

func newCatalogFixture() *RestaurantHandler {
	return NewRestaurantHandler(&catalogStub{all: []model.Restaurant{
		{ID: 1, Name: "Sakura House", Location: "Cherry St 9", Description: "sushi"},
		{ID: 2, Name: "Trattoria Nonna", Location: "Via Roma 1", Description: "pasta"},
	}})
}

func TestListRestaurants(t *testing.T) {
	e := echo.New()
	h := newCatalogFixture()

	c, rec := jsonCtx(e, http.MethodGet, "/restaurants", "")
	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var out []model.Restaurant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Len(t, out, 2)
}

func TestSearchRestaurants(t *testing.T) {
	e := echo.New()
	h := newCatalogFixture()

	c, rec := jsonCtx(e, http.MethodGet, "/restaurants/search?query=roma", "")
	require.NoError(t, h.Search(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var out []model.Restaurant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "Trattoria Nonna", out[0].Name)
}

func TestSearchRestaurantsRequiresQuery(t *testing.T) {
	e := echo.New()
	h := newCatalogFixture()

	c, rec := jsonCtx(e, http.MethodGet, "/restaurants/search", "")
	require.NoError(t, h.Search(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "query parameter is required", errField(t, rec))
}

func TestGetRestaurantByID(t *testing.T) {
	e := echo.New()
	h := newCatalogFixture()

	c, rec := jsonCtx(e, http.MethodGet, "/restaurants/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.GetByID(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var out model.Restaurant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "Sakura House", out.Name)

	missing, rec2 := jsonCtx(e, http.MethodGet, "/restaurants/42", "")
	missing.SetParamNames("id")
	missing.SetParamValues("42")
	require.NoError(t, h.GetByID(missing))
	assert.Equal(t, http.StatusNotFound, rec2.Code)

	garbage, rec3 := jsonCtx(e, http.MethodGet, "/restaurants/abc", "")
	garbage.SetParamNames("id")
	garbage.SetParamValues("abc")
	require.NoError(t, h.GetByID(garbage))
	assert.Equal(t, http.StatusBadRequest, rec3.Code)
}
