// Package router wires handlers, middleware and route groups onto the
// Echo instance.  Routes split into four surfaces: public, authenticated
// customer, owner back-office and admin back-office.
package router

import (
	"database/sql"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/soccerzone/pitch-booking/internal/config"
	"github.com/soccerzone/pitch-booking/internal/handler"
	"github.com/soccerzone/pitch-booking/internal/middleware"
)

// Deps bundles everything route registration needs.
type Deps struct {
	DB        *sql.DB
	Redis     *redis.Client
	Cfg       config.Config
	RateLimit config.RateLimitConfig
	Cache     config.CacheConfig

	Auth         *handler.AuthHandler
	Pitch        *handler.PitchHandler
	Content      *handler.ContentHandler
	Booking      *handler.BookingHandler
	Payment      *handler.PaymentHandler
	Notification *handler.NotificationHandler
	OwnerPitch   *handler.OwnerPitchHandler
	OwnerBooking *handler.OwnerBookingHandler
	Report       *handler.ReportHandler
	AdminUser    *handler.AdminUserHandler
	AdminPitch   *handler.AdminPitchHandler
	AdminBooking *handler.AdminBookingHandler
	AdminContent *handler.AdminContentHandler
}

// Register attaches all routes.  The rate limiter covers the whole /api
// surface; the response cache covers only the public browse endpoints.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health(d.DB))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api", middleware.RateLimit(d.RateLimit, d.Redis))

	registerPublic(api, d)
	registerCustomer(api, d)
	registerOwner(api, d)
	registerAdmin(api, d)
}

func registerPublic(api *echo.Group, d Deps) {
	cached := api.Group("", middleware.ResponseCache(d.Cache, d.Redis))
	cached.GET("/pitches", d.Pitch.List)
	cached.GET("/pitches/:id", d.Pitch.Get)
	cached.GET("/promotions", d.Content.ListPromotions)
	cached.GET("/reviews", d.Content.ListReviews)

	// Availability is read on the booking page right before submitting;
	// serving it stale would invite avoidable conflicts.
	api.GET("/pitches/:id/available", d.Pitch.Availability)

	api.POST("/reviews", d.Content.CreateReview)
	api.POST("/bookings", d.Booking.Create, middleware.OptionalJWTAuth(d.Cfg.JWTSecret))
	api.POST("/payments/mock", d.Payment.Mock)

	auth := api.Group("/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.POST("/refresh", d.Auth.Refresh)
	auth.POST("/logout", d.Auth.Logout)
}
