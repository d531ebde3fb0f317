package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/office-seat-booking/internal/config"
	"github.com/iliyamo/office-seat-booking/internal/database"
	"github.com/iliyamo/office-seat-booking/internal/handler"
	"github.com/iliyamo/office-seat-booking/internal/middleware"
	"github.com/iliyamo/office-seat-booking/internal/queue"
	"github.com/iliyamo/office-seat-booking/internal/repository"
	"github.com/iliyamo/office-seat-booking/internal/router"
	"github.com/iliyamo/office-seat-booking/internal/service"
	"github.com/iliyamo/office-seat-booking/internal/utils"
)

func main() {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}
	if err := database.SeedReferenceData(ctx, db); err != nil {
		log.Fatalf("seed: %v", err)
	}

	seatRepo := repository.NewSeatRepo(db)
	userRepo := repository.NewUserRepo(db)
	bookingRepo := repository.NewBookingRepo(db)

	svc := service.NewBookingService(seatRepo, userRepo, bookingRepo, queue.PublishBookingEvent, service.Policy{
		HorizonDays:     cfg.Booking.HorizonDays,
		WeekdaysOnly:    cfg.Booking.WeekdaysOnly,
		BatchRotation:   cfg.Booking.BatchRotation,
		RotationBase:    cfg.Booking.RotationBase,
		FloaterRules:    cfg.Booking.FloaterRules,
		FloaterOpenHour: cfg.Booking.FloaterOpenHour,
	})

	adminHash, err := utils.HashPassword(cfg.AdminPassword, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("admin credentials: %v", err)
	}

	api := handler.NewAPIHandler(svc)
	auth := handler.NewAuthHandler(cfg.AdminEmail, adminHash, cfg.JWTSecret, cfg.AccessTTLMin)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: rate limiting and response caching disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	router.Register(e, api, auth, cfg.JWTSecret, cacheMW)

	// The consumer appends booking events to logs/booking.log and
	// reconnects on broker failures.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking-consumer stopped: %v", err)
		}
	}()

	log.Printf("listening on :%s (env=%s)", cfg.Port, cfg.Env)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
