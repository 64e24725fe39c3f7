// Package api is the single source of truth for the HTTP surface. Every
// operation the server exposes and the client may invoke is declared here,
// once, with its input and per-status response schemas. Neither side
// hand-writes a path or re-validates with separate rules.
package api

import (
	"net/http"

	"github.com/agrovista/smart-farm-api/internal/contract"
	"github.com/agrovista/smart-farm-api/internal/model"
)

// Operation keys. These are the only values ever passed to Resolve.
const (
	AuthLogin     = "auth.login"
	AuthRegister  = "auth.register"
	AuthMe        = "auth.me"
	SoilAnalyze   = "soil.analyze"
	DiseaseDetect = "disease.detect"
	MarketPrices  = "market.prices"
	WeatherNow    = "weather.current"
)

// Registry holds the full contract. Populated at init, read-only after.
var Registry = contract.NewRegistry()

var errBody = contract.Struct[model.ErrorMessage]()

func init() {
	Registry.Define(AuthLogin, http.MethodPost, "/api/login",
		contract.Struct[model.LoginRequest](),
		map[int]contract.Schema{
			http.StatusOK:           contract.Struct[model.AuthUser](),
			http.StatusUnauthorized: errBody,
			http.StatusBadRequest:   errBody,
		})

	Registry.Define(AuthRegister, http.MethodPost, "/api/register",
		contract.Struct[model.InsertUser](),
		map[int]contract.Schema{
			http.StatusCreated:    contract.Struct[model.AuthUser](),
			http.StatusBadRequest: errBody,
			http.StatusConflict:   errBody,
		})

	Registry.Define(AuthMe, http.MethodGet, "/api/me",
		nil,
		map[int]contract.Schema{
			http.StatusOK:           contract.Struct[model.AuthUser](),
			http.StatusUnauthorized: errBody,
		})

	Registry.Define(SoilAnalyze, http.MethodPost, "/api/soil/analyze",
		contract.Struct[model.SoilSample](),
		map[int]contract.Schema{
			http.StatusOK:         contract.Struct[model.SoilAnalysis](),
			http.StatusBadRequest: errBody,
		})

	Registry.Define(DiseaseDetect, http.MethodPost, "/api/disease/detect",
		contract.Struct[model.DetectionInput](),
		map[int]contract.Schema{
			http.StatusOK:         contract.Struct[model.DiseaseDetection](),
			http.StatusBadRequest: errBody,
		})

	Registry.Define(MarketPrices, http.MethodGet, "/api/market/prices",
		contract.Struct[model.MarketQuery](),
		map[int]contract.Schema{
			http.StatusOK:             contract.Struct[[]model.MarketPrice](),
			http.StatusBadRequest:     errBody,
			http.StatusBadGateway:     errBody,
			http.StatusGatewayTimeout: errBody,
		})

	Registry.Define(WeatherNow, http.MethodGet, "/api/weather",
		contract.Struct[model.WeatherQuery](),
		map[int]contract.Schema{
			http.StatusOK:             contract.Struct[model.WeatherReport](),
			http.StatusBadRequest:     errBody,
			http.StatusBadGateway:     errBody,
			http.StatusGatewayTimeout: errBody,
		})
}
