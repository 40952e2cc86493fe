package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/minjae/escape-room-booking/internal/config"     // Internal config loader
	"github.com/minjae/escape-room-booking/internal/database"   // MySQL connection
	"github.com/minjae/escape-room-booking/internal/handler"    // HTTP handlers
	"github.com/minjae/escape-room-booking/internal/middleware" // Cache and rate-limit middleware
	"github.com/minjae/escape-room-booking/internal/queue"      // Background event consumer
	"github.com/minjae/escape-room-booking/internal/repository" // Data access layer
	"github.com/minjae/escape-room-booking/internal/router"     // Route registration
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	e := echo.New() // Create Echo instance

	// Redis backs both the response cache and the token-bucket rate
	// limiter.  A nil client (Redis unreachable) disables both; the API
	// keeps serving without them.  The rate limiter covers everything;
	// the response cache is mounted on the public catalogue routes only,
	// since authenticated responses differ per account.
	rdb := config.NewRedisClient()
	var publicMW []echo.MiddlewareFunc
	if rdb != nil {
		e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
		publicMW = append(publicMW, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	} else {
		log.Printf("redis unavailable; cache and rate limiting disabled")
	}

	// Repositories
	accounts := repository.NewAccountRepo(db)
	tokens := repository.NewTokenRepo(db)
	branches := repository.NewBranchRepo(db)
	themes := repository.NewThemeRepo(db)
	reservations := repository.NewReservationRepo(db)
	payments := repository.NewPaymentRepo(db)
	reviews := repository.NewReviewRepo(db)
	schedules := repository.NewScheduleRepo(db)
	notices := repository.NewNoticeRepo(db)
	issues := repository.NewIssueRepo(db)
	assignments := repository.NewAssignmentRepo(db)

	// Handlers
	auth := handler.NewAuthHandler(cfg, accounts, tokens)
	browse := handler.NewBrowseHandler(themes, branches, reviews, notices)
	booking := handler.NewReservationHandler(reservations, themes, branches, payments, reviews)
	review := handler.NewReviewHandler(reviews, reservations)
	manager := handler.NewManagerHandler(reservations, themes, branches, payments, issues, schedules, notices, assignments)

	// Routes
	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterPublic(e, browse, publicMW...)
	router.RegisterCustomer(e, booking, review, cfg.JWTSecret)
	router.RegisterManager(e, manager, cfg.JWTSecret)

	// Background consumer appends confirmed-reservation events to the
	// audit log.  It reconnects forever; a broker outage never stops the
	// API.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
