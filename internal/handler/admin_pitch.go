package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/soccerzone/pitch-booking/internal/model"
	"github.com/soccerzone/pitch-booking/internal/repository"
)

// AdminPitchHandler approves, locks and removes pitches regardless of
// ownership.
type AdminPitchHandler struct {
	Pitches *repository.PitchRepo
	Log     zerolog.Logger
}

type pitchStatusReq struct {
	Status string `json:"status"`
}

// SetStatus moves a pitch between active, pending and locked.
func (h *AdminPitchHandler) SetStatus(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid pitch id")
	}
	var req pitchStatusReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if !model.ValidPitchStatus(req.Status) {
		return fail(c, http.StatusBadRequest, "status must be active, pending or locked")
	}
	ctx := c.Request().Context()
	if err := h.Pitches.SetStatus(ctx, id, req.Status); err != nil {
		return writeErr(c, err)
	}
	p, err := h.Pitches.GetByID(ctx, id)
	if err != nil {
		return writeErr(c, err)
	}
	h.Log.Info().Uint64("pitch_id", id).Str("status", req.Status).Msg("admin changed pitch status")
	return ok(c, http.StatusOK, echo.Map{"pitch": p})
}

// Delete removes any pitch.  The zero owner id skips the ownership check.
func (h *AdminPitchHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid pitch id")
	}
	if err := h.Pitches.Delete(c.Request().Context(), id, 0); err != nil {
		return writeErr(c, err)
	}
	h.Log.Info().Uint64("pitch_id", id).Msg("pitch deleted by admin")
	return ok(c, http.StatusOK, echo.Map{})
}
