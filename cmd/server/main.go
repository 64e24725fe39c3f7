package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/agrovista/smart-farm-api/internal/analysis"
	"github.com/agrovista/smart-farm-api/internal/config"
	"github.com/agrovista/smart-farm-api/internal/database"
	"github.com/agrovista/smart-farm-api/internal/handler"
	"github.com/agrovista/smart-farm-api/internal/model"
	"github.com/agrovista/smart-farm-api/internal/repository"
	"github.com/agrovista/smart-farm-api/internal/router"
	"github.com/agrovista/smart-farm-api/internal/upstream"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env always wins
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	store := openStore(cfg)
	seedDefaultUser(store, cfg.BcryptCost)

	weather := upstream.NewWeatherClient(cfg.WeatherBaseURL, cfg.DefaultLat, cfg.DefaultLon, cfg.UpstreamTimeout)

	var market upstream.MarketProvider
	if cfg.MarketAPIKey != "" {
		market = upstream.NewAgmarknetClient(cfg.MarketBaseURL, cfg.MarketAPIKey, cfg.MarketState, cfg.UpstreamTimeout)
	} else {
		market = upstream.NewFixtureProvider()
		slog.Info("no market API key configured, serving fixture prices")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus: true, LogMethod: true, LogURI: true, LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			slog.Info("request",
				"method", v.Method, "uri", v.URI,
				"status", v.Status, "latency", v.Latency)
			return nil
		},
	}))

	router.Register(e, router.Handlers{
		Auth:    handler.NewAuthHandler(cfg, store),
		Soil:    handler.NewSoilHandler(analysis.NewRuleAnalyzer()),
		Disease: handler.NewDiseaseHandler(analysis.NewFixtureDetector()),
		Market:  handler.NewMarketHandler(market),
		Weather: handler.NewWeatherHandler(weather),
	}, cfg.JWTSecret)

	addr := ":" + cfg.Port
	slog.Info("listening", "addr", addr, "env", cfg.Env)
	if err := e.Start(addr); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

// openStore picks MySQL when configured, the in-memory store otherwise.
func openStore(cfg config.Config) repository.UserStore {
	if !cfg.UseMySQL() {
		slog.Info("no database configured, using in-memory user store")
		return repository.NewMemoryStore()
	}
	db, err := database.Open(context.Background(), cfg)
	if err != nil {
		slog.Error("database connection failed", "err", err)
		os.Exit(1)
	}
	return repository.NewMySQLStore(db)
}

// seedDefaultUser creates the demo account on first run.
func seedDefaultUser(store repository.UserStore, bcryptCost int) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := store.Create(ctx, model.InsertUser{
		Email:    "farmer@example.com",
		Password: "password123",
		Name:     "John Doe",
	}, bcryptCost)
	switch {
	case errors.Is(err, repository.ErrEmailExists):
		// already seeded
	case err != nil:
		slog.Warn("seeding default user failed", "err", err)
	default:
		slog.Info("seeded default user", "email", "farmer@example.com")
	}
}
