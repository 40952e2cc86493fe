package handler

import (
	"context"      // provides context with cancellation for DB calls
	"database/sql" // SQL database interactions
	"net/http"     // HTTP status codes and primitives
	"strings"      // string manipulation utilities
	"time"         // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/minjae/escape-room-booking/internal/config"     // app configuration
	"github.com/minjae/escape-room-booking/internal/model"      // domain records
	"github.com/minjae/escape-room-booking/internal/repository" // DB repositories
	"github.com/minjae/escape-room-booking/internal/utils"      // helper functions (hashing, token issuing)
)

// AuthHandler bundles dependencies for account endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Accounts *repository.AccountRepo
	Tokens   *repository.TokenRepo
}

func NewAuthHandler(cfg config.Config, a *repository.AccountRepo, t *repository.TokenRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Accounts: a, Tokens: t}
}

// ----- DTOs -----

type registerReq struct {
	LoginID         string `json:"login_id"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	Name            string `json:"name"`
	Phone           string `json:"phone"`
}
type loginReq struct {
	LoginID  string `json:"login_id"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type accountPart struct {
	ID      uint64 `json:"id"`
	LoginID string `json:"login_id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
}
type authResp struct {
	Account accountPart `json:"account"`
	Access  tokenPart   `json:"access"`
	Refresh tokenPart   `json:"refresh"`
}

// Register creates a customer account and returns tokens immediately.
// All fields are required and the two password fields must match; new
// accounts always get the Customer role.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.LoginID = strings.TrimSpace(req.LoginID)
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.LoginID == "" || req.Password == "" || req.PasswordConfirm == "" || req.Name == "" || req.Phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "all fields are required"})
	}
	if req.Password != req.PasswordConfirm {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "passwords do not match"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Accounts.Create(ctx, req.LoginID, req.Password, req.Name, req.Phone, h.Cfg.BcryptCost)
	if err != nil {
		switch err {
		case repository.ErrLoginIDExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "login_id already in use"})
		case repository.ErrPhoneExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "phone already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create account failed"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, uid, model.RoleCustomer, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
	}
	if err := h.Tokens.StoreRefresh(ctx, uid, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
	}

	return c.JSON(http.StatusCreated, authResp{
		Account: accountPart{ID: uid, LoginID: req.LoginID, Name: req.Name, Role: model.RoleCustomer},
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
	})
}

// Login verifies credentials and returns a new token pair. Suspended
// accounts are rejected with the same message as bad credentials so the
// endpoint does not leak account state.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.LoginID = strings.TrimSpace(req.LoginID)
	if req.LoginID == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "login_id/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Accounts.GetByLoginID(ctx, req.LoginID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(a.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if a.Status != model.AccountActive {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, a.ID, a.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
	}
	if err := h.Tokens.StoreRefresh(ctx, a.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
	}

	return c.JSON(http.StatusOK, authResp{
		Account: accountPart{ID: a.ID, LoginID: a.LoginID, Name: a.Name, Role: a.Role},
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp},
	})
}

// Refresh validates a refresh token by hash, revokes it and issues a new
// pair (rotation).
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	accountID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}
	_ = h.Tokens.RevokeByHash(ctx, hash)

	a, err := h.Accounts.GetByID(ctx, accountID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load account failed"})
	}
	if a.Status != model.AccountActive {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, a.ID, a.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	newRef, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
	}
	if err := h.Tokens.StoreRefresh(ctx, a.ID, utils.HashRefreshRaw(newRef.Raw), newRef.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
	}

	return c.JSON(http.StatusOK, authResp{
		Account: accountPart{ID: a.ID, LoginID: a.LoginID, Name: a.Name, Role: a.Role},
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: newRef.Raw, Expires: newRef.Exp},
	})
}

// Logout revokes the refresh token supplied in the body, ending that
// session. Access tokens simply age out.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Tokens.ValidateRefresh(ctx, hash); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}
	if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated account's identity claims.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"account_id": c.Get("user_id"),
		"role":       c.Get("role"),
	})
}

// ----- Password reset -----
//
// The flow has three endpoints: request issues a one-time token tied to
// the account, validate lets the client check a token before showing the
// new-password form, and confirm consumes the token and stores the new
// password. Without a mail sender the raw token is returned by request;
// a deployment with outbound mail would send it instead.

type resetRequestReq struct {
	LoginID string `json:"login_id"`
	Phone   string `json:"phone"`
}
type resetValidateReq struct {
	Token string `json:"token"`
}
type resetConfirmReq struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// RequestPasswordReset issues a reset token when login_id and phone both
// match an account. The response is identical whether or not an account
// matched, except that a matching account receives the token.
func (h *AuthHandler) RequestPasswordReset(c echo.Context) error {
	var req resetRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.LoginID = strings.TrimSpace(req.LoginID)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.LoginID == "" || req.Phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "login_id/phone required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Accounts.GetByLoginID(ctx, req.LoginID)
	if err != nil || a.Phone != req.Phone {
		// Do not reveal whether the account exists.
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	}

	reset, err := utils.NewResetToken(h.Cfg.ResetTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue reset failed"})
	}
	if err := h.Tokens.StoreReset(ctx, a.ID, utils.HashRefreshRaw(reset.Raw), reset.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save reset failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":      "ok",
		"reset_token": reset.Raw,
		"expires":     reset.Exp,
	})
}

// ValidatePasswordReset checks that a reset token is usable.
func (h *AuthHandler) ValidatePasswordReset(c echo.Context) error {
	var req resetValidateReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Token) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Tokens.ValidateReset(ctx, utils.HashRefreshRaw(strings.TrimSpace(req.Token))); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "valid"})
}

// ConfirmPasswordReset consumes the token, stores the new password and
// revokes all refresh tokens so stolen sessions die with the old
// password.
func (h *AuthHandler) ConfirmPasswordReset(c echo.Context) error {
	var req resetConfirmReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Token = strings.TrimSpace(req.Token)
	if req.Token == "" || req.Password == "" || req.PasswordConfirm == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "all fields are required"})
	}
	if req.Password != req.PasswordConfirm {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "passwords do not match"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hash := utils.HashRefreshRaw(req.Token)
	accountID, err := h.Tokens.ValidateReset(ctx, hash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
	}
	if err := h.Accounts.UpdatePassword(ctx, accountID, req.Password, h.Cfg.BcryptCost); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update password failed"})
	}
	_ = h.Tokens.ConsumeReset(ctx, hash)
	_ = h.Tokens.RevokeAllForUser(ctx, accountID)

	return c.JSON(http.StatusOK, echo.Map{"status": "password updated"})
}
