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

// PitchHandler serves the public pitch catalog and availability queries.
type PitchHandler struct {
	Pitches *repository.PitchRepo
	Engine  *booking.Engine
	Log     zerolog.Logger
}

// List returns active pitches matching the query filters, paginated.
// Pending and locked pitches never appear here regardless of filters.
func (h *PitchHandler) List(c echo.Context) error {
	page, limit := pagination(c)
	f := repository.PitchFilter{
		Query:  c.QueryParam("q"),
		Type:   c.QueryParam("type"),
		Status: model.PitchActive,
		Page:   page,
		Limit:  limit,
	}
	if v, err := strconv.ParseInt(c.QueryParam("minPrice"), 10, 64); err == nil && v > 0 {
		f.MinPrice = v
	}
	if v, err := strconv.ParseInt(c.QueryParam("maxPrice"), 10, 64); err == nil && v > 0 {
		f.MaxPrice = v
	}
	pitches, total, err := h.Pitches.List(c.Request().Context(), f)
	if err != nil {
		h.Log.Error().Err(err).Msg("list pitches failed")
		return writeErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{
		"pitches": pitches,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

// Get returns one pitch.  Non-active pitches are hidden from the public
// catalog and answered with 404.
func (h *PitchHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid pitch id")
	}
	p, err := h.Pitches.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	if p.Status != model.PitchActive {
		return fail(c, http.StatusNotFound, "pitch not found")
	}
	return ok(c, http.StatusOK, echo.Map{"pitch": p})
}

// Availability returns the slot labels already booked for a pitch on the
// requested day.  The client derives free slots from the pitch's catalog.
func (h *PitchHandler) Availability(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid pitch id")
	}
	booked, err := h.Engine.Availability(c.Request().Context(), id, c.QueryParam("date"))
	if err != nil {
		return writeErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"bookedSlots": booked})
}
