package router

import (
	"github.com/labstack/echo/v4"

	"github.com/soccerzone/pitch-booking/internal/middleware"
	"github.com/soccerzone/pitch-booking/internal/model"
)

// registerAdmin wires the admin back-office: user management, pitch
// approval, unscoped booking management, content CRUD and reports.
func registerAdmin(api *echo.Group, d Deps) {
	admin := api.Group("/admin",
		middleware.JWTAuth(d.Cfg.JWTSecret),
		middleware.RequireRole(model.RoleAdmin))

	admin.GET("/users", d.AdminUser.List)
	admin.PUT("/users/:id", d.AdminUser.Update)

	admin.PUT("/pitches/:id/status", d.AdminPitch.SetStatus)
	admin.DELETE("/pitches/:id", d.AdminPitch.Delete)

	admin.GET("/bookings", d.AdminBooking.List)
	admin.PUT("/bookings/:id/status", d.AdminBooking.UpdateStatus)
	admin.POST("/bookings/bulk-status", d.AdminBooking.BulkStatus)
	admin.DELETE("/bookings/:id", d.AdminBooking.Delete)

	admin.GET("/promotions", d.AdminContent.ListPromotions)
	admin.POST("/promotions", d.AdminContent.CreatePromotion)
	admin.PUT("/promotions/:id", d.AdminContent.UpdatePromotion)
	admin.DELETE("/promotions/:id", d.AdminContent.DeletePromotion)

	admin.GET("/reviews", d.AdminContent.ListReviews)
	admin.PUT("/reviews/:id/status", d.AdminContent.SetReviewStatus)
	admin.DELETE("/reviews/:id", d.AdminContent.DeleteReview)

	admin.GET("/reports/revenue", d.Report.AdminRevenue)
}
