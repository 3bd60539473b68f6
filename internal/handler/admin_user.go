package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/soccerzone/pitch-booking/internal/model"
	"github.com/soccerzone/pitch-booking/internal/repository"
)

// AdminUserHandler manages accounts: listing and role/active changes.
type AdminUserHandler struct {
	Users *repository.UserRepo
	Log   zerolog.Logger
}

// List returns all users, optionally filtered by role.
func (h *AdminUserHandler) List(c echo.Context) error {
	role := c.QueryParam("role")
	if role != "" && role != model.RolePlayer && role != model.RoleOwner && role != model.RoleAdmin {
		return fail(c, http.StatusBadRequest, "invalid role filter")
	}
	users, err := h.Users.List(c.Request().Context(), role)
	if err != nil {
		h.Log.Error().Err(err).Msg("admin list users failed")
		return writeErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"users": users})
}

type manageUserReq struct {
	Role     string `json:"role"`
	IsActive *bool  `json:"isActive"`
}

// Update changes a user's role and active flag.
func (h *AdminUserHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid user id")
	}
	var req manageUserReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	ctx := c.Request().Context()
	current, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return writeErr(c, err)
	}
	role := req.Role
	if role == "" {
		role = current.Role
	}
	if role != model.RolePlayer && role != model.RoleOwner && role != model.RoleAdmin {
		return fail(c, http.StatusBadRequest, "invalid role")
	}
	active := current.IsActive
	if req.IsActive != nil {
		active = *req.IsActive
	}
	if err := h.Users.UpdateManaged(ctx, id, role, active); err != nil {
		return writeErr(c, err)
	}
	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return writeErr(c, err)
	}
	h.Log.Info().Uint64("user_id", id).Str("role", role).Bool("is_active", active).Msg("user updated by admin")
	return ok(c, http.StatusOK, echo.Map{"user": u})
}
