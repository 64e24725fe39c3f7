package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agrovista/smart-farm-api/internal/analysis"
	"github.com/agrovista/smart-farm-api/internal/model"
)

// SoilHandler runs soil analysis through whichever engine was wired in.
type SoilHandler struct {
	Analyzer analysis.SoilAnalyzer
}

func NewSoilHandler(a analysis.SoilAnalyzer) *SoilHandler { return &SoilHandler{Analyzer: a} }

func (h *SoilHandler) Analyze(c echo.Context, in model.SoilSample) (int, any, error) {
	result, err := h.Analyzer.Analyze(c.Request().Context(), in)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, result, nil
}
