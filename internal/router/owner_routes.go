package router

import (
	"github.com/labstack/echo/v4"

	"github.com/soccerzone/pitch-booking/internal/middleware"
	"github.com/soccerzone/pitch-booking/internal/model"
)

// registerOwner wires the pitch-owner back-office.  Admins can use these
// routes too; their operations are scoped to pitches they own, which for
// admins is usually none, so the admin surface has its own endpoints.
func registerOwner(api *echo.Group, d Deps) {
	owner := api.Group("/owner",
		middleware.JWTAuth(d.Cfg.JWTSecret),
		middleware.RequireRole(model.RoleOwner, model.RoleAdmin))

	owner.GET("/pitches", d.OwnerPitch.List)
	owner.POST("/pitches", d.OwnerPitch.Create)
	owner.PUT("/pitches/:id", d.OwnerPitch.Update)
	owner.DELETE("/pitches/:id", d.OwnerPitch.Delete)

	owner.GET("/bookings", d.OwnerBooking.List)
	owner.PUT("/bookings/:id/status", d.OwnerBooking.UpdateStatus)

	owner.GET("/reports/revenue", d.Report.OwnerRevenue)
}
