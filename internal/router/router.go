// Package router registers every operation from the shared contract onto
// the Echo instance. Paths and methods come from the registry; nothing is
// spelled twice.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/agrovista/smart-farm-api/internal/api"
	"github.com/agrovista/smart-farm-api/internal/handler"
	"github.com/agrovista/smart-farm-api/internal/middleware"
	"github.com/agrovista/smart-farm-api/internal/model"
	"github.com/agrovista/smart-farm-api/internal/server"
)

// Handlers groups the per-domain handlers wired in main.
type Handlers struct {
	Auth    *handler.AuthHandler
	Soil    *handler.SoilHandler
	Disease *handler.DiseaseHandler
	Market  *handler.MarketHandler
	Weather *handler.WeatherHandler
}

// Register wires the health check plus every contract operation.
func Register(e *echo.Echo, h Handlers, jwtSecret string) {
	e.GET("/healthz", handler.Health)

	server.Handle[model.LoginRequest](e, api.Registry, api.AuthLogin, h.Auth.Login)
	server.Handle[model.InsertUser](e, api.Registry, api.AuthRegister, h.Auth.Register)
	server.Handle[struct{}](e, api.Registry, api.AuthMe, h.Auth.Me, middleware.JWTAuth(jwtSecret))
	server.Handle[model.SoilSample](e, api.Registry, api.SoilAnalyze, h.Soil.Analyze)
	server.Handle[model.DetectionInput](e, api.Registry, api.DiseaseDetect, h.Disease.Detect)
	server.Handle[model.MarketQuery](e, api.Registry, api.MarketPrices, h.Market.Prices)
	server.Handle[model.WeatherQuery](e, api.Registry, api.WeatherNow, h.Weather.Current)
}
