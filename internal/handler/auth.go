package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/soccerzone/pitch-booking/internal/config"
	"github.com/soccerzone/pitch-booking/internal/middleware"
	"github.com/soccerzone/pitch-booking/internal/model"
	"github.com/soccerzone/pitch-booking/internal/repository"
	"github.com/soccerzone/pitch-booking/internal/utils"
)

// AuthHandler implements registration, login, token rotation and the
// authenticated profile endpoints.
type AuthHandler struct {
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
	Cfg    config.Config
	Log    zerolog.Logger
}

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

// Register creates an account.  Only the player and owner roles may be
// self-registered; admin accounts are provisioned out of band.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return fail(c, http.StatusBadRequest, "a valid email is required")
	}
	if len(req.Password) < 8 {
		return fail(c, http.StatusBadRequest, "password must be at least 8 characters")
	}
	if req.Name == "" {
		return fail(c, http.StatusBadRequest, "name is required")
	}
	if req.Phone != "" && !utils.ValidMobile(req.Phone) {
		return fail(c, http.StatusBadRequest, "phone must be a valid mobile number")
	}
	role := req.Role
	if role == "" {
		role = model.RolePlayer
	}
	if role != model.RolePlayer && role != model.RoleOwner {
		return fail(c, http.StatusBadRequest, "role must be player or owner")
	}

	id, err := h.Users.Create(c.Request().Context(), req.Email, req.Password, req.Name, req.Phone, role, h.Cfg.BcryptCost)
	if err != nil {
		if !errors.Is(err, repository.ErrEmailExists) {
			h.Log.Error().Err(err).Msg("register: create user failed")
		}
		return writeErr(c, err)
	}
	h.Log.Info().Uint64("user_id", id).Str("role", role).Msg("user registered")
	return ok(c, http.StatusCreated, echo.Map{"id": id})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and issues an access/refresh token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	ctx := c.Request().Context()
	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusUnauthorized, "invalid email or password")
		}
		h.Log.Error().Err(err).Msg("login: lookup failed")
		return writeErr(c, err)
	}
	if !u.IsActive {
		return fail(c, http.StatusForbidden, "account is disabled")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return fail(c, http.StatusUnauthorized, "invalid email or password")
	}
	return h.issueTokens(c, u)
}

func (h *AuthHandler) issueTokens(c echo.Context, u model.User) error {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		h.Log.Error().Err(err).Msg("auth: sign access token failed")
		return writeErr(c, err)
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return writeErr(c, err)
	}
	if err := h.Tokens.StoreRefresh(c.Request().Context(), u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		h.Log.Error().Err(err).Msg("auth: store refresh token failed")
		return writeErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{
		"accessToken":  access.Token,
		"expiresAt":    access.Exp,
		"refreshToken": refresh.Raw,
		"user":         u,
	})
}

type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh rotates a refresh token: the presented token is revoked and a
// fresh pair is issued, so a stolen token only works until its owner uses
// it again.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return fail(c, http.StatusBadRequest, "refreshToken is required")
	}
	ctx := c.Request().Context()
	hash := utils.HashRefreshRaw(req.RefreshToken)
	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "invalid refresh token")
	}
	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return writeErr(c, err)
	}
	if !u.IsActive {
		return fail(c, http.StatusForbidden, "account is disabled")
	}
	if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
		h.Log.Error().Err(err).Msg("refresh: revoke old token failed")
		return writeErr(c, err)
	}
	return h.issueTokens(c, u)
}

// Logout revokes the presented refresh token.  Revoking an unknown token
// is not an error; logout is idempotent.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return fail(c, http.StatusBadRequest, "refreshToken is required")
	}
	if err := h.Tokens.RevokeByHash(c.Request().Context(), utils.HashRefreshRaw(req.RefreshToken)); err != nil {
		h.Log.Error().Err(err).Msg("logout: revoke failed")
		return writeErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	u, err := h.Users.GetByID(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return writeErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"user": u})
}

type profileReq struct {
	Name   string  `json:"name"`
	Phone  string  `json:"phone"`
	Avatar *string `json:"avatar"`
}

// UpdateProfile changes the caller's name, phone and avatar.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req profileReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return fail(c, http.StatusBadRequest, "name is required")
	}
	if req.Phone != "" && !utils.ValidMobile(req.Phone) {
		return fail(c, http.StatusBadRequest, "phone must be a valid mobile number")
	}
	ctx := c.Request().Context()
	uid := middleware.UserID(c)
	if err := h.Users.UpdateProfile(ctx, uid, req.Name, req.Phone, req.Avatar); err != nil {
		h.Log.Error().Err(err).Uint64("user_id", uid).Msg("update profile failed")
		return writeErr(c, err)
	}
	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return writeErr(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"user": u})
}

type passwordReq struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword verifies the current password, stores the new hash and
// revokes every outstanding refresh token for the account.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req passwordReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if len(req.NewPassword) < 8 {
		return fail(c, http.StatusBadRequest, "password must be at least 8 characters")
	}
	ctx := c.Request().Context()
	uid := middleware.UserID(c)
	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return writeErr(c, err)
	}
	if !utils.VerifyPassword(u.PasswordHash, req.CurrentPassword) {
		return fail(c, http.StatusUnauthorized, "current password is incorrect")
	}
	if err := h.Users.UpdatePassword(ctx, uid, req.NewPassword, h.Cfg.BcryptCost); err != nil {
		h.Log.Error().Err(err).Uint64("user_id", uid).Msg("change password failed")
		return writeErr(c, err)
	}
	if err := h.Tokens.RevokeAllForUser(ctx, uid); err != nil {
		h.Log.Error().Err(err).Uint64("user_id", uid).Msg("revoke sessions after password change failed")
	}
	return ok(c, http.StatusOK, echo.Map{})
}
