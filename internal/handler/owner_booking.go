package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/soccerzone/pitch-booking/internal/booking"
	"github.com/soccerzone/pitch-booking/internal/middleware"
	"github.com/soccerzone/pitch-booking/internal/model"
	"github.com/soccerzone/pitch-booking/internal/repository"
)

// OwnerBookingHandler lets pitch owners review and transition bookings on
// their own pitches.
type OwnerBookingHandler struct {
	Engine   *booking.Engine
	Bookings *repository.BookingRepo
	Log      zerolog.Logger
}

// List returns bookings for the owner's pitches with optional pitch, date
// and status filters.
func (h *OwnerBookingHandler) List(c echo.Context) error {
	page, limit := pagination(c)
	f := repository.BookingFilter{
		OwnerID: middleware.UserID(c),
		Date:    c.QueryParam("date"),
		Status:  c.QueryParam("status"),
		Page:    page,
		Limit:   limit,
	}
	if v := c.QueryParam("pitchId"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fail(c, http.StatusBadRequest, "invalid pitchId")
		}
		f.PitchID = n
	}
	if f.Status != "" && !model.ValidBookingStatus(f.Status) {
		return fail(c, http.StatusBadRequest, "invalid status filter")
	}
	bookings, total, err := h.Bookings.List(c.Request().Context(), f)
	if err != nil {
		h.Log.Error().Err(err).Msg("owner list bookings failed")
		return writeErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{
		"bookings": bookings,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

type statusReq struct {
	Status string `json:"status"`
}

// UpdateStatus confirms or cancels a booking on one of the owner's
// pitches.  Ownership is checked before the transition runs.
func (h *OwnerBookingHandler) UpdateStatus(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid booking id")
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	ctx := c.Request().Context()
	owner, err := h.Bookings.PitchOwner(ctx, id)
	if err != nil {
		return writeErr(c, err)
	}
	if owner != middleware.UserID(c) {
		return fail(c, http.StatusForbidden, "forbidden")
	}
	b, err := h.Engine.Transition(ctx, id, req.Status)
	if err != nil {
		return writeErr(c, err)
	}
	h.Log.Info().Uint64("booking_id", id).Str("status", req.Status).Msg("owner changed booking status")
	return ok(c, http.StatusOK, echo.Map{"booking": b})
}
