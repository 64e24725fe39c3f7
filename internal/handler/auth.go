// Package handler implements the business logic behind each registered
// operation. Handlers receive input that already passed the contract
// layer's validation and return a status plus a body shaped by the same
// registry; the server consumer checks the outbound shape.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/agrovista/smart-farm-api/internal/config"
	"github.com/agrovista/smart-farm-api/internal/model"
	"github.com/agrovista/smart-farm-api/internal/repository"
	"github.com/agrovista/smart-farm-api/internal/utils"
)

const storeTimeout = 5 * time.Second

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users repository.UserStore
}

func NewAuthHandler(cfg config.Config, users repository.UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

// Login verifies credentials and returns the user with a fresh access
// token. Wrong email and wrong password are indistinguishable on the
// wire.
func (h *AuthHandler) Login(c echo.Context, in model.LoginRequest) (int, any, error) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), storeTimeout)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, in.Username)
	if errors.Is(err, repository.ErrNotFound) {
		return http.StatusUnauthorized, model.ErrorMessage{Message: "Invalid credentials"}, nil
	}
	if err != nil {
		return 0, nil, err
	}
	if !utils.VerifyPassword(u.Password, in.Password) {
		return http.StatusUnauthorized, model.ErrorMessage{Message: "Invalid credentials"}, nil
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Email, h.Cfg.AccessTTL)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, model.AuthUser{
		ID:    u.ID,
		Email: u.Email,
		Name:  displayName(u.Name),
		Token: access.Token,
	}, nil
}

// Register creates the user and logs them in. The store's insert is
// atomic on the email key, so a concurrent duplicate loses cleanly.
func (h *AuthHandler) Register(c echo.Context, in model.InsertUser) (int, any, error) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), storeTimeout)
	defer cancel()

	u, err := h.Users.Create(ctx, in, h.Cfg.BcryptCost)
	if errors.Is(err, repository.ErrEmailExists) {
		return http.StatusConflict, model.ErrorMessage{Message: "User already exists"}, nil
	}
	if err != nil {
		return 0, nil, err
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Email, h.Cfg.AccessTTL)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusCreated, model.AuthUser{
		ID:    u.ID,
		Email: u.Email,
		Name:  displayName(u.Name),
		Token: access.Token,
	}, nil
}

// Me returns the authenticated user's record. The JWT middleware put the
// subject ID into the context.
func (h *AuthHandler) Me(c echo.Context, _ struct{}) (int, any, error) {
	uid, ok := c.Get("user_id").(int64)
	if !ok {
		return http.StatusUnauthorized, model.ErrorMessage{Message: "Invalid token"}, nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), storeTimeout)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if errors.Is(err, repository.ErrNotFound) {
		return http.StatusUnauthorized, model.ErrorMessage{Message: "Invalid token"}, nil
	}
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, model.AuthUser{ID: u.ID, Email: u.Email, Name: displayName(u.Name)}, nil
}

func displayName(name string) string {
	if name == "" {
		return "User"
	}
	return name
}
