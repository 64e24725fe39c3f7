package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agrovista/smart-farm-api/internal/analysis"
	"github.com/agrovista/smart-farm-api/internal/model"
)

// DiseaseHandler runs crop-disease detection.
type DiseaseHandler struct {
	Detector analysis.DiseaseDetector
}

func NewDiseaseHandler(d analysis.DiseaseDetector) *DiseaseHandler {
	return &DiseaseHandler{Detector: d}
}

func (h *DiseaseHandler) Detect(c echo.Context, in model.DetectionInput) (int, any, error) {
	result, err := h.Detector.Detect(c.Request().Context(), in)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, result, nil
}
