package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovista/smart-farm-api/internal/api"
	"github.com/agrovista/smart-farm-api/internal/config"
	"github.com/agrovista/smart-farm-api/internal/middleware"
	"github.com/agrovista/smart-farm-api/internal/model"
	"github.com/agrovista/smart-farm-api/internal/repository"
	"github.com/agrovista/smart-farm-api/internal/server"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:  "test-secret",
		AccessTTL:  time.Minute,
		BcryptCost: 4,
	}
}

// newAuthEcho wires the auth operations over a store seeded with the
// default demo account.
func newAuthEcho(t *testing.T) *echo.Echo {
	t.Helper()
	cfg := testConfig()
	store := repository.NewMemoryStore()
	_, err := store.Create(context.Background(), model.InsertUser{
		Email:    "farmer@example.com",
		Password: "password123",
		Name:     "John Doe",
	}, cfg.BcryptCost)
	require.NoError(t, err)

	h := NewAuthHandler(cfg, store)
	e := echo.New()
	server.Handle[model.LoginRequest](e, api.Registry, api.AuthLogin, h.Login)
	server.Handle[model.InsertUser](e, api.Registry, api.AuthRegister, h.Register)
	server.Handle[struct{}](e, api.Registry, api.AuthMe, h.Me, middleware.JWTAuth(cfg.JWTSecret))
	return e
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestLoginSeededUser(t *testing.T) {
	e := newAuthEcho(t)

	rec := postJSON(e, "/api/login", `{"username":"farmer@example.com","password":"password123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var u model.AuthUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "farmer@example.com", u.Email)
	assert.Equal(t, "John Doe", u.Name)
	assert.NotEmpty(t, u.Token)

	// the issued token opens the protected endpoint
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+u.Token)
	meRec := httptest.NewRecorder()
	e.ServeHTTP(meRec, req)
	require.Equal(t, http.StatusOK, meRec.Code)

	var me model.AuthUser
	require.NoError(t, json.Unmarshal(meRec.Body.Bytes(), &me))
	assert.Equal(t, u.ID, me.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	e := newAuthEcho(t)

	rec := postJSON(e, "/api/login", `{"username":"farmer@example.com","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var em model.ErrorMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &em))
	assert.Equal(t, "Invalid credentials", em.Message)
}

func TestLoginUnknownUser(t *testing.T) {
	e := newAuthEcho(t)
	rec := postJSON(e, "/api/login", `{"username":"ghost@example.com","password":"whatever"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginMissingFields(t *testing.T) {
	e := newAuthEcho(t)
	rec := postJSON(e, "/api/login", `{"username":"farmer@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterNewUser(t *testing.T) {
	e := newAuthEcho(t)

	rec := postJSON(e, "/api/register", `{"email":"new@example.com","password":"pw12345","name":"New Farmer"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var u model.AuthUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
	assert.Equal(t, int64(2), u.ID)
	assert.Equal(t, "new@example.com", u.Email)
	assert.NotEmpty(t, u.Token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	e := newAuthEcho(t)

	rec := postJSON(e, "/api/register", `{"email":"farmer@example.com","password":"password123"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	var em model.ErrorMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &em))
	assert.Equal(t, "User already exists", em.Message)
}

func TestRegisterRejectsClientSuppliedID(t *testing.T) {
	e := newAuthEcho(t)
	rec := postJSON(e, "/api/register", `{"id":99,"email":"x@example.com","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMeWithoutToken(t *testing.T) {
	e := newAuthEcho(t)
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
