package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/sportspark/sportspark-api/internal/config"
	"github.com/sportspark/sportspark-api/internal/database"
	"github.com/sportspark/sportspark-api/internal/handler"
	"github.com/sportspark/sportspark-api/internal/middleware"
	"github.com/sportspark/sportspark-api/internal/queue"
	"github.com/sportspark/sportspark-api/internal/repository"
	"github.com/sportspark/sportspark-api/internal/router"
	queue_publisher "github.com/sportspark/sportspark-api/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set env vars directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	events := repository.NewEventRepo(db)
	regs := repository.NewRegistrationRepo(db)

	h := router.Handlers{
		Auth:         handler.NewAuthHandler(cfg, users),
		Registration: handler.NewRegistrationHandler(users, events, regs, queue_publisher.NewPublisher()),
		Dashboard:    handler.NewDashboardHandler(events, regs),
		Organizer:    handler.NewOrganizerHandler(events),
		Public:       handler.NewPublicHandler(events),
	}

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	// Redis is optional: when it is unreachable the rate limiter and the
	// response cache silently disable themselves.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and response cache disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e, h, cfg.JWTSecret, cache)

	// Background consumer appends registration confirmations to
	// logs/registration.log; it reconnects on its own.
	go func() {
		if err := queue.StartRegistrationConsumer(); err != nil {
			log.Printf("registration consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
