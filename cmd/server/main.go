package main

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/soccerzone/pitch-booking/internal/booking"
	"github.com/soccerzone/pitch-booking/internal/config"
	"github.com/soccerzone/pitch-booking/internal/database"
	"github.com/soccerzone/pitch-booking/internal/handler"
	"github.com/soccerzone/pitch-booking/internal/logging"
	"github.com/soccerzone/pitch-booking/internal/metrics"
	"github.com/soccerzone/pitch-booking/internal/queue"
	"github.com/soccerzone/pitch-booking/internal/repository"
	"github.com/soccerzone/pitch-booking/internal/router"
	queuepub "github.com/soccerzone/pitch-booking/internal/service/queue_publisher"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly

	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.Env)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer func() { _ = db.Close() }()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unreachable, rate limiting and response cache disabled")
	}

	metrics.Register()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	pitches := repository.NewPitchRepo(db)
	bookings := repository.NewBookingRepo(db)
	promotions := repository.NewPromotionRepo(db)
	reviews := repository.NewReviewRepo(db)
	notifications := repository.NewNotificationRepo(db)

	var publish booking.Publisher
	if cfg.AMQPURL != "" {
		publish = queuepub.New(cfg.AMQPURL)
		go queue.StartBookingConsumer(cfg.AMQPURL, notifications, log)
	} else {
		log.Warn().Msg("RABBITMQ_URL unset, booking events and notifications disabled")
	}

	engine := booking.New(pitches, bookings, publish, log)

	e := echo.New()
	e.HideBanner = true

	router.Register(e, router.Deps{
		DB:        db,
		Redis:     rdb,
		Cfg:       cfg,
		RateLimit: config.LoadRateLimitConfig(),
		Cache:     config.LoadCacheConfig(),

		Auth:         &handler.AuthHandler{Users: users, Tokens: tokens, Cfg: cfg, Log: log},
		Pitch:        &handler.PitchHandler{Pitches: pitches, Engine: engine, Log: log},
		Content:      &handler.ContentHandler{Promotions: promotions, Reviews: reviews, Log: log},
		Booking:      &handler.BookingHandler{Engine: engine, Bookings: bookings, Log: log},
		Payment:      &handler.PaymentHandler{Engine: engine, Log: log},
		Notification: &handler.NotificationHandler{Notifications: notifications, Log: log},
		OwnerPitch:   &handler.OwnerPitchHandler{Pitches: pitches, Log: log},
		OwnerBooking: &handler.OwnerBookingHandler{Engine: engine, Bookings: bookings, Log: log},
		Report:       &handler.ReportHandler{Bookings: bookings, Log: log},
		AdminUser:    &handler.AdminUserHandler{Users: users, Log: log},
		AdminPitch:   &handler.AdminPitchHandler{Pitches: pitches, Log: log},
		AdminBooking: &handler.AdminBookingHandler{Engine: engine, Bookings: bookings, Log: log},
		AdminContent: &handler.AdminContentHandler{Promotions: promotions, Reviews: reviews, Log: log},
	})

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
