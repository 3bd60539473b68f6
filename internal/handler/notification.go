package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/soccerzone/pitch-booking/internal/middleware"
	"github.com/soccerzone/pitch-booking/internal/repository"
)

// NotificationHandler serves the per-user notification feed written by the
// booking event consumer.
type NotificationHandler struct {
	Notifications *repository.NotificationRepo
	Log           zerolog.Logger
}

// List returns the caller's notifications, newest first.
func (h *NotificationHandler) List(c echo.Context) error {
	items, err := h.Notifications.ListByUser(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		h.Log.Error().Err(err).Msg("list notifications failed")
		return writeErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"notifications": items})
}

// MarkRead flags one of the caller's notifications as read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid notification id")
	}
	if err := h.Notifications.MarkRead(c.Request().Context(), id, middleware.UserID(c)); err != nil {
		return writeErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{})
}
