package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/soccerzone/pitch-booking/internal/model"
	"github.com/soccerzone/pitch-booking/internal/repository"
)

// ContentHandler serves the public promotions and reviews endpoints.
type ContentHandler struct {
	Promotions *repository.PromotionRepo
	Reviews    *repository.ReviewRepo
	Log        zerolog.Logger
}

// ListPromotions returns active promotions inside their validity window,
// optionally filtered by type (promotion or news).
func (h *ContentHandler) ListPromotions(c echo.Context) error {
	promoType := c.QueryParam("type")
	if promoType != "" && promoType != model.PromotionTypePromotion && promoType != model.PromotionTypeNews {
		return fail(c, http.StatusBadRequest, "type must be promotion or news")
	}
	items, err := h.Promotions.List(c.Request().Context(), true, promoType)
	if err != nil {
		h.Log.Error().Err(err).Msg("list promotions failed")
		return writeErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"promotions": items})
}

// ListReviews returns active reviews, optionally restricted to one pitch.
func (h *ContentHandler) ListReviews(c echo.Context) error {
	var pitchID uint64
	if v := c.QueryParam("pitchId"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fail(c, http.StatusBadRequest, "invalid pitchId")
		}
		pitchID = n
	}
	items, err := h.Reviews.List(c.Request().Context(), true, pitchID)
	if err != nil {
		h.Log.Error().Err(err).Msg("list reviews failed")
		return writeErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"reviews": items})
}

type reviewReq struct {
	Author  string  `json:"author"`
	Avatar  *string `json:"avatar"`
	Rating  int     `json:"rating"`
	Comment string  `json:"comment"`
	PitchID *uint64 `json:"pitchId"`
}

// CreateReview accepts a public review submission.  New reviews start
// inactive and only appear once an admin activates them.
func (h *ContentHandler) CreateReview(c echo.Context) error {
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	req.Author = strings.TrimSpace(req.Author)
	req.Comment = strings.TrimSpace(req.Comment)
	if req.Author == "" {
		return fail(c, http.StatusBadRequest, "author is required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return fail(c, http.StatusBadRequest, "rating must be between 1 and 5")
	}
	if req.Comment == "" {
		return fail(c, http.StatusBadRequest, "comment is required")
	}
	rv := model.Review{
		Author:  req.Author,
		Avatar:  req.Avatar,
		Rating:  req.Rating,
		Comment: req.Comment,
		PitchID: req.PitchID,
		Status:  model.ContentInactive,
	}
	if err := h.Reviews.Create(c.Request().Context(), &rv); err != nil {
		h.Log.Error().Err(err).Msg("create review failed")
		return writeErr(c, err)
	}
	return ok(c, http.StatusCreated, echo.Map{"review": rv})
}
