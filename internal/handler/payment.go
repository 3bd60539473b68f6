package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/soccerzone/pitch-booking/internal/booking"
)

// PaymentHandler implements the simulated payment endpoint.  No gateway is
// involved; a successful call confirms the pending booking and records the
// chosen method.
type PaymentHandler struct {
	Engine *booking.Engine
	Log    zerolog.Logger
}

type mockPaymentReq struct {
	BookingID uint64 `json:"bookingId"`
	Method    string `json:"paymentMethod"`
}

// Mock confirms a pending booking as if a payment had completed.
func (h *PaymentHandler) Mock(c echo.Context) error {
	var req mockPaymentReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.BookingID == 0 {
		return fail(c, http.StatusBadRequest, "bookingId is required")
	}
	b, err := h.Engine.ConfirmMockPayment(c.Request().Context(), req.BookingID, req.Method)
	if err != nil {
		return writeErr(c, err)
	}
	h.Log.Info().Uint64("booking_id", b.ID).Str("method", req.Method).Msg("mock payment confirmed booking")
	return ok(c, http.StatusOK, echo.Map{"booking": b})
}
