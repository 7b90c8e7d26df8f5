package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Evang2/restaurant-app/internal/model"
	"github.com/Evang2/restaurant-app/internal/repository"
)

// restaurantCatalog is the read-only slice of the repository the public
// browse endpoints need.
type restaurantCatalog interface {
	GetByID(ctx context.Context, id uint64) (model.Restaurant, error)
	ListAll(ctx context.Context) ([]model.Restaurant, error)
	Search(ctx context.Context, query string) ([]model.Restaurant, error)
}

// RestaurantHandler serves the public restaurant catalog. No
// authentication is applied: guests browse and search before deciding
// to register.
type RestaurantHandler struct {
	Catalog restaurantCatalog
}

// NewRestaurantHandler constructs a RestaurantHandler.
func NewRestaurantHandler(catalog restaurantCatalog) *RestaurantHandler {
	if catalog == nil {
		panic("nil catalog passed to NewRestaurantHandler")
	}
	return &RestaurantHandler{Catalog: catalog}
}

// List handles GET /restaurants and returns the full catalog.
func (h *RestaurantHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	restaurants, err := h.Catalog.ListAll(ctx)
	if err != nil {
		c.Logger().Errorf("list restaurants failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch restaurants"})
	}
	return c.JSON(http.StatusOK, restaurants)
}

// Search handles GET /restaurants/search?query=. It matches the query
// as a case-insensitive substring of a restaurant's name or location.
func (h *RestaurantHandler) Search(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("query"))
	if query == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "query parameter is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	restaurants, err := h.Catalog.Search(ctx, query)
	if err != nil {
		c.Logger().Errorf("search restaurants failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to search restaurants"})
	}
	return c.JSON(http.StatusOK, restaurants)
}

// GetByID handles GET /restaurants/:id.
func (h *RestaurantHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	restaurant, err := h.Catalog.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		c.Logger().Errorf("get restaurant failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch restaurant"})
	}
	return c.JSON(http.StatusOK, restaurant)
}
