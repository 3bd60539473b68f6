package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/soccerzone/pitch-booking/internal/booking"
	"github.com/soccerzone/pitch-booking/internal/middleware"
	"github.com/soccerzone/pitch-booking/internal/model"
	"github.com/soccerzone/pitch-booking/internal/repository"
)

// BookingHandler serves booking creation, the customer's booking list and
// self-cancellation.  All lifecycle logic lives in the engine; this layer
// only translates HTTP.
type BookingHandler struct {
	Engine   *booking.Engine
	Bookings *repository.BookingRepo
	Log      zerolog.Logger
}

type createBookingReq struct {
	PitchID  uint64 `json:"fieldId"`
	Date     string `json:"date"`
	TimeSlot string `json:"timeSlot"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

// Create books a slot.  Guests book with just name and phone; when the
// request carries a valid token the booking is attached to that account.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	params := booking.CreateParams{
		PitchID:  req.PitchID,
		Date:     req.Date,
		TimeSlot: req.TimeSlot,
		Name:     req.Name,
		Phone:    req.Phone,
	}
	if uid := middleware.UserID(c); uid != 0 {
		params.CustomerID = &uid
	}
	b, err := h.Engine.Create(c.Request().Context(), params)
	if err != nil {
		return writeErr(c, err)
	}
	h.Log.Info().Uint64("booking_id", b.ID).Str("reference", b.Reference).
		Uint64("pitch_id", b.PitchID).Str("date", b.Date).Str("slot", b.TimeSlot).
		Msg("booking created")
	return ok(c, http.StatusCreated, echo.Map{"booking": b})
}

// My lists the authenticated customer's bookings, newest first.
func (h *BookingHandler) My(c echo.Context) error {
	page, limit := pagination(c)
	f := repository.BookingFilter{
		CustomerID: middleware.UserID(c),
		Status:     c.QueryParam("status"),
		Page:       page,
		Limit:      limit,
	}
	if f.Status != "" && !model.ValidBookingStatus(f.Status) {
		return fail(c, http.StatusBadRequest, "invalid status filter")
	}
	bookings, total, err := h.Bookings.List(c.Request().Context(), f)
	if err != nil {
		h.Log.Error().Err(err).Msg("list my bookings failed")
		return writeErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{
		"bookings": bookings,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// SelfCancel lets a customer cancel their own booking while it is still
// pending.  Confirmed bookings must be cancelled by the pitch owner.
func (h *BookingHandler) SelfCancel(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid booking id")
	}
	ctx := c.Request().Context()
	b, err := h.Engine.Get(ctx, id)
	if err != nil {
		return writeErr(c, err)
	}
	uid := middleware.UserID(c)
	if b.CustomerID == nil || *b.CustomerID != uid {
		return fail(c, http.StatusForbidden, "forbidden")
	}
	if b.Status != model.BookingPending {
		return writeErr(c, repository.ErrInvalidTransition)
	}
	b, err = h.Engine.Transition(ctx, id, model.BookingCancelled)
	if err != nil {
		return writeErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"booking": b})
}
