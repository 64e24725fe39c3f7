package analysis

import (
	"context"
	"strings"

	"github.com/agrovista/smart-farm-api/internal/model"
)

// DiseaseDetector returns a detection result for a crop. A real
// image-based detector would implement the same interface.
type DiseaseDetector interface {
	Detect(ctx context.Context, in model.DetectionInput) (model.DiseaseDetection, error)
}

// FixtureDetector serves a fixed per-crop table. Unknown crops fall back
// to the late-blight entry.
type FixtureDetector struct{}

func NewFixtureDetector() *FixtureDetector { return &FixtureDetector{} }

var detections = map[string]model.DiseaseDetection{
	"potato": {
		Disease:   "Late Blight",
		Severity:  "High",
		Treatment: "Apply copper-based fungicides. Remove infected leaves immediately.",
	},
	"tomato": {
		Disease:   "Early Blight",
		Severity:  "Medium",
		Treatment: "Rotate crops and apply chlorothalonil at first sign of lesions.",
	},
	"wheat": {
		Disease:   "Leaf Rust",
		Severity:  "Medium",
		Treatment: "Use resistant varieties; apply triazole fungicide if spread continues.",
	},
	"rice": {
		Disease:   "Rice Blast",
		Severity:  "High",
		Treatment: "Drain the field, reduce nitrogen, and apply tricyclazole.",
	},
}

func (d *FixtureDetector) Detect(ctx context.Context, in model.DetectionInput) (model.DiseaseDetection, error) {
	if res, ok := detections[strings.ToLower(strings.TrimSpace(in.CropName))]; ok {
		return res, nil
	}
	return detections["potato"], nil
}
