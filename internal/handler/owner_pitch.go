package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/soccerzone/pitch-booking/internal/middleware"
	"github.com/soccerzone/pitch-booking/internal/model"
	"github.com/soccerzone/pitch-booking/internal/repository"
)

// OwnerPitchHandler implements the owner back-office pitch CRUD.  Every
// operation is scoped to the authenticated owner's own pitches.
type OwnerPitchHandler struct {
	Pitches *repository.PitchRepo
	Log     zerolog.Logger
}

// List returns the owner's pitches in every status.
func (h *OwnerPitchHandler) List(c echo.Context) error {
	page, limit := pagination(c)
	f := repository.PitchFilter{
		OwnerID: middleware.UserID(c),
		Status:  c.QueryParam("status"),
		Page:    page,
		Limit:   limit,
	}
	if f.Status != "" && !model.ValidPitchStatus(f.Status) {
		return fail(c, http.StatusBadRequest, "invalid status filter")
	}
	pitches, total, err := h.Pitches.List(c.Request().Context(), f)
	if err != nil {
		h.Log.Error().Err(err).Msg("owner list pitches failed")
		return writeErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{
		"pitches": pitches,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

type pitchReq struct {
	Name       string   `json:"name"`
	Location   string   `json:"location"`
	Price      string   `json:"price"`
	PriceValue int64    `json:"priceValue"`
	Type       string   `json:"type"`
	Image      string   `json:"image"`
	Slots      []string `json:"slots"`
}

// validatePitchReq normalizes and validates the shared create/update body.
// An empty slot list defaults to the full slot catalog; explicit labels
// must come from the catalog.
func validatePitchReq(req *pitchReq) (string, bool) {
	req.Name = strings.TrimSpace(req.Name)
	req.Location = strings.TrimSpace(req.Location)
	if req.Name == "" {
		return "name is required", false
	}
	if req.Location == "" {
		return "location is required", false
	}
	if req.Price == "" || req.PriceValue <= 0 {
		return "price and priceValue are required", false
	}
	if !model.ValidPitchType(req.Type) {
		return "type must be 5v5, 7v7 or 11v11", false
	}
	if len(req.Slots) == 0 {
		req.Slots = append([]string(nil), model.SlotCatalog...)
		return "", true
	}
	seen := map[string]bool{}
	for _, s := range req.Slots {
		if !model.KnownSlot(s) {
			return "unknown time slot: " + s, false
		}
		if seen[s] {
			return "duplicate time slot: " + s, false
		}
		seen[s] = true
	}
	return "", true
}

// Create registers a new pitch.  Pitches start pending and only become
// bookable once an admin activates them.
func (h *OwnerPitchHandler) Create(c echo.Context) error {
	var req pitchReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if msg, valid := validatePitchReq(&req); !valid {
		return fail(c, http.StatusBadRequest, msg)
	}
	p := model.Pitch{
		OwnerID:    middleware.UserID(c),
		Name:       req.Name,
		Location:   req.Location,
		Price:      req.Price,
		PriceValue: req.PriceValue,
		Type:       req.Type,
		Status:     model.PitchPending,
		Image:      req.Image,
		Slots:      req.Slots,
	}
	if err := h.Pitches.Create(c.Request().Context(), &p); err != nil {
		h.Log.Error().Err(err).Msg("create pitch failed")
		return writeErr(c, err)
	}
	h.Log.Info().Uint64("pitch_id", p.ID).Uint64("owner_id", p.OwnerID).Msg("pitch created")
	return ok(c, http.StatusCreated, echo.Map{"pitch": p})
}

// Update rewrites an owned pitch's fields and slot catalog.  Status is not
// editable here; activation and locking are admin operations.
func (h *OwnerPitchHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid pitch id")
	}
	var req pitchReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if msg, valid := validatePitchReq(&req); !valid {
		return fail(c, http.StatusBadRequest, msg)
	}
	p := model.Pitch{
		ID:         id,
		Name:       req.Name,
		Location:   req.Location,
		Price:      req.Price,
		PriceValue: req.PriceValue,
		Type:       req.Type,
		Image:      req.Image,
		Slots:      req.Slots,
	}
	ctx := c.Request().Context()
	if err := h.Pitches.Update(ctx, &p, middleware.UserID(c)); err != nil {
		return writeErr(c, err)
	}
	updated, err := h.Pitches.GetByID(ctx, id)
	if err != nil {
		return writeErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"pitch": updated})
}

// Delete removes an owned pitch.
func (h *OwnerPitchHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid pitch id")
	}
	if err := h.Pitches.Delete(c.Request().Context(), id, middleware.UserID(c)); err != nil {
		return writeErr(c, err)
	}
	h.Log.Info().Uint64("pitch_id", id).Msg("pitch deleted")
	return ok(c, http.StatusOK, echo.Map{})
}
