package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/Evang2/restaurant-app/internal/config"
	"github.com/Evang2/restaurant-app/internal/database"
	"github.com/Evang2/restaurant-app/internal/handler"
	"github.com/Evang2/restaurant-app/internal/queue"
	"github.com/Evang2/restaurant-app/internal/repository"
	"github.com/Evang2/restaurant-app/internal/router"
	queue_publisher "github.com/Evang2/restaurant-app/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// nil when Redis is unreachable; limiter and cache degrade to no-ops
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and response cache disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	restaurants := repository.NewRestaurantRepo(db)
	reservations := repository.NewReservationRepo(db)

	authHandler := handler.NewAuthHandler(cfg, users, tokens)
	restaurantHandler := handler.NewRestaurantHandler(restaurants)
	reservationHandler := handler.NewReservationHandler(restaurants, reservations,
		queue_publisher.PublishReservationConfirmed)

	// Consumer runs for the lifetime of the process, reconnecting on its own.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.Register(e, cfg, authHandler, restaurantHandler, reservationHandler, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
