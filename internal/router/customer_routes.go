package router

import (
	"github.com/labstack/echo/v4"

	"github.com/soccerzone/pitch-booking/internal/middleware"
)

// registerCustomer wires the endpoints available to any authenticated
// user regardless of role: profile, own bookings and notifications.
func registerCustomer(api *echo.Group, d Deps) {
	me := api.Group("", middleware.JWTAuth(d.Cfg.JWTSecret))

	me.GET("/me", d.Auth.Me)
	me.PUT("/me", d.Auth.UpdateProfile)
	me.PUT("/me/password", d.Auth.ChangePassword)

	me.GET("/bookings/my", d.Booking.My)
	me.PUT("/bookings/:id/cancel", d.Booking.SelfCancel)

	me.GET("/notifications", d.Notification.List)
	me.PUT("/notifications/:id/read", d.Notification.MarkRead)
}
