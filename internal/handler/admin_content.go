package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/soccerzone/pitch-booking/internal/model"
	"github.com/soccerzone/pitch-booking/internal/repository"
)

// AdminContentHandler manages promotions and moderates reviews.
type AdminContentHandler struct {
	Promotions *repository.PromotionRepo
	Reviews    *repository.ReviewRepo
	Log        zerolog.Logger
}

type promotionReq struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Content     *string    `json:"content"`
	Type        string     `json:"type"`
	Image       *string    `json:"image"`
	Discount    *string    `json:"discount"`
	Badge       *string    `json:"badge"`
	ValidFrom   *time.Time `json:"validFrom"`
	ValidUntil  *time.Time `json:"validUntil"`
	Status      string     `json:"status"`
}

func (req *promotionReq) validate() (string, bool) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if req.Title == "" {
		return "title is required", false
	}
	if req.Description == "" {
		return "description is required", false
	}
	if req.Type != model.PromotionTypePromotion && req.Type != model.PromotionTypeNews {
		return "type must be promotion or news", false
	}
	if req.Status == "" {
		req.Status = model.ContentActive
	}
	if req.Status != model.ContentActive && req.Status != model.ContentInactive {
		return "status must be active or inactive", false
	}
	if req.ValidFrom != nil && req.ValidUntil != nil && req.ValidUntil.Before(*req.ValidFrom) {
		return "validUntil must not precede validFrom", false
	}
	return "", true
}

func (req *promotionReq) toModel(id uint64) model.Promotion {
	return model.Promotion{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Type:        req.Type,
		Image:       req.Image,
		Discount:    req.Discount,
		Badge:       req.Badge,
		ValidFrom:   req.ValidFrom,
		ValidUntil:  req.ValidUntil,
		Status:      req.Status,
	}
}

// ListPromotions returns every promotion including inactive and expired
// ones, for the back-office table.
func (h *AdminContentHandler) ListPromotions(c echo.Context) error {
	items, err := h.Promotions.List(c.Request().Context(), false, c.QueryParam("type"))
	if err != nil {
		h.Log.Error().Err(err).Msg("admin list promotions failed")
		return writeErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"promotions": items})
}

// CreatePromotion inserts a new promotion or news item.
func (h *AdminContentHandler) CreatePromotion(c echo.Context) error {
	var req promotionReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if msg, valid := req.validate(); !valid {
		return fail(c, http.StatusBadRequest, msg)
	}
	p := req.toModel(0)
	if err := h.Promotions.Create(c.Request().Context(), &p); err != nil {
		h.Log.Error().Err(err).Msg("create promotion failed")
		return writeErr(c, err)
	}
	return ok(c, http.StatusCreated, echo.Map{"promotion": p})
}

// UpdatePromotion rewrites all fields of a promotion.
func (h *AdminContentHandler) UpdatePromotion(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid promotion id")
	}
	var req promotionReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if msg, valid := req.validate(); !valid {
		return fail(c, http.StatusBadRequest, msg)
	}
	ctx := c.Request().Context()
	p := req.toModel(id)
	if err := h.Promotions.Update(ctx, &p); err != nil {
		return writeErr(c, err)
	}
	updated, err := h.Promotions.GetByID(ctx, id)
	if err != nil {
		return writeErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"promotion": updated})
}

// DeletePromotion removes a promotion.
func (h *AdminContentHandler) DeletePromotion(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid promotion id")
	}
	if err := h.Promotions.Delete(c.Request().Context(), id); err != nil {
		return writeErr(c, err)
	}
	h.Log.Info().Uint64("promotion_id", id).Msg("promotion deleted")
	return ok(c, http.StatusOK, echo.Map{})
}

// ListReviews returns every review including inactive ones.
func (h *AdminContentHandler) ListReviews(c echo.Context) error {
	items, err := h.Reviews.List(c.Request().Context(), false, 0)
	if err != nil {
		h.Log.Error().Err(err).Msg("admin list reviews failed")
		return writeErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"reviews": items})
}

type reviewStatusReq struct {
	Status string `json:"status"`
}

// SetReviewStatus activates or hides a review.
func (h *AdminContentHandler) SetReviewStatus(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid review id")
	}
	var req reviewStatusReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Status != model.ContentActive && req.Status != model.ContentInactive {
		return fail(c, http.StatusBadRequest, "status must be active or inactive")
	}
	if err := h.Reviews.SetStatus(c.Request().Context(), id, req.Status); err != nil {
		return writeErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{})
}

// DeleteReview removes a review.
func (h *AdminContentHandler) DeleteReview(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid review id")
	}
	if err := h.Reviews.Delete(c.Request().Context(), id); err != nil {
		return writeErr(c, err)
	}
	h.Log.Info().Uint64("review_id", id).Msg("review deleted")
	return ok(c, http.StatusOK, echo.Map{})
}
