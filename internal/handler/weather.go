package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agrovista/smart-farm-api/internal/model"
	"github.com/agrovista/smart-farm-api/internal/upstream"
)

// WeatherHandler serves current conditions from the weather provider.
type WeatherHandler struct {
	Weather *upstream.WeatherClient
}

func NewWeatherHandler(w *upstream.WeatherClient) *WeatherHandler { return &WeatherHandler{Weather: w} }

func (h *WeatherHandler) Current(c echo.Context, in model.WeatherQuery) (int, any, error) {
	report, err := h.Weather.Current(c.Request().Context(), in.Lat, in.Lon)
	if err != nil {
		slog.Warn("weather provider failed", "err", err)
		return upstreamStatus(err), model.ErrorMessage{Message: "Failed to fetch weather"}, nil
	}
	return http.StatusOK, report, nil
}
