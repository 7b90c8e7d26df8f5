// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/Evang2/restaurant-app/internal/config"
	"github.com/Evang2/restaurant-app/internal/handler"
	"github.com/Evang2/restaurant-app/internal/middleware"
)

// Register attaches every route of the API to the Echo instance.
//
// The token-bucket limiter runs on everything. The public catalog
// additionally sits behind the Redis response cache: it is read-mostly
// and identical for every caller. Reservation endpoints require a valid
// bearer token and are never cached, since every response is
// user-specific. rdb may be nil, in which case both the limiter and the
// cache quietly disable themselves.
func Register(e *echo.Echo, cfg config.Config, a *handler.AuthHandler, rest *handler.RestaurantHandler, resv *handler.ReservationHandler, rdb *redis.Client) {
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	e.GET("/healthz", handler.Health)

	// Public catalog, no authentication: guests browse before registering.
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	e.GET("/restaurants", rest.List, cache)
	e.GET("/restaurants/search", rest.Search, cache)
	e.GET("/restaurants/:id", rest.GetByID)

	// Session management.
	auth := e.Group("/auth")
	auth.POST("/register", a.Register)
	auth.POST("/login", a.Login)
	auth.POST("/refresh", a.Refresh)
	auth.POST("/logout", a.Logout)

	// Reservation lifecycle, owner-scoped via the bearer token subject.
	priv := e.Group("", middleware.JWTAuth(cfg.JWTSecret))
	priv.POST("/reservations", resv.Create)
	priv.GET("/user/reservations", resv.List)
	priv.PUT("/reservations/update", resv.Update)
	priv.DELETE("/reservations/:reservation_id", resv.Delete)
}
