package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agrovista/smart-farm-api/internal/model"
	"github.com/agrovista/smart-farm-api/internal/upstream"
)

// MarketHandler serves the commodity price listing from the configured
// provider (live agmarknet or fixtures).
type MarketHandler struct {
	Provider upstream.MarketProvider
}

func NewMarketHandler(p upstream.MarketProvider) *MarketHandler { return &MarketHandler{Provider: p} }

func (h *MarketHandler) Prices(c echo.Context, in model.MarketQuery) (int, any, error) {
	prices, err := h.Provider.Prices(c.Request().Context(), in)
	if err != nil {
		slog.Warn("market provider failed", "err", err)
		return upstreamStatus(err), model.ErrorMessage{Message: "Failed to fetch market prices"}, nil
	}
	return http.StatusOK, prices, nil
}

// upstreamStatus maps a provider failure to 504 on timeout, 502 otherwise.
func upstreamStatus(err error) int {
	var ue *upstream.Error
	if errors.As(err, &ue) && ue.Timeout {
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}
