package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/soccerzone/pitch-booking/internal/booking"
	"github.com/soccerzone/pitch-booking/internal/model"
	"github.com/soccerzone/pitch-booking/internal/repository"
)

// AdminBookingHandler exposes the full booking back-office: unscoped
// listing, single and bulk status changes, and physical deletion.
type AdminBookingHandler struct {
	Engine   *booking.Engine
	Bookings *repository.BookingRepo
	Log      zerolog.Logger
}

// List returns bookings across all pitches with optional filters.
func (h *AdminBookingHandler) List(c echo.Context) error {
	page, limit := pagination(c)
	f := repository.BookingFilter{
		Date:   c.QueryParam("date"),
		Status: c.QueryParam("status"),
		Page:   page,
		Limit:  limit,
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
		h.Log.Error().Err(err).Msg("admin list bookings failed")
		return writeErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{
		"bookings": bookings,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// UpdateStatus transitions any booking.
func (h *AdminBookingHandler) UpdateStatus(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid booking id")
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	b, err := h.Engine.Transition(c.Request().Context(), id, req.Status)
	if err != nil {
		return writeErr(c, err)
	}
	h.Log.Info().Uint64("booking_id", id).Str("status", req.Status).Msg("admin changed booking status")
	return ok(c, http.StatusOK, echo.Map{"booking": b})
}

type bulkStatusReq struct {
	IDs    []uint64 `json:"bookingIds"`
	Status string   `json:"status"`
}

// BulkStatus applies a status change to many bookings.  Failures on one id
// never abort the others; the response carries a per-id tally.
func (h *AdminBookingHandler) BulkStatus(c echo.Context) error {
	var req bulkStatusReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if len(req.IDs) == 0 {
		return fail(c, http.StatusBadRequest, "bookingIds is required")
	}
	results := h.Engine.BulkTransition(c.Request().Context(), req.IDs, req.Status)
	updated := 0
	for _, r := range results {
		if r.OK {
			updated++
		}
	}
	h.Log.Info().Int("requested", len(req.IDs)).Int("updated", updated).
		Str("status", req.Status).Msg("bulk booking status change")
	return ok(c, http.StatusOK, echo.Map{
		"results": results,
		"updated": updated,
		"failed":  len(results) - updated,
	})
}

// Delete physically removes a booking row.  Routine cancellation should go
// through the status endpoints; this exists for data cleanup.
func (h *AdminBookingHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid booking id")
	}
	if err := h.Bookings.Delete(c.Request().Context(), id); err != nil {
		return writeErr(c, err)
	}
	h.Log.Info().Uint64("booking_id", id).Msg("booking deleted by admin")
	return ok(c, http.StatusOK, echo.Map{})
}
