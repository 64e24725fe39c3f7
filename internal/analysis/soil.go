// Package analysis holds the soil and disease engines. Each engine sits
// behind a small interface so a fixture, a rules table, or a real model
// are interchangeable without touching the contract layer or handlers.
package analysis

import (
	"context"
	"sort"
	"strings"

	"github.com/agrovista/smart-farm-api/internal/model"
)

// SoilAnalyzer produces an analysis for a validated sample.
type SoilAnalyzer interface {
	Analyze(ctx context.Context, sample model.SoilSample) (model.SoilAnalysis, error)
}

// cropProfile is one row of the suitability table: the pH band a crop
// prefers and how much nitrogen it wants.
type cropProfile struct {
	name    string
	idealPH float64
	needN   float64
}

var cropProfiles = []cropProfile{
	{name: "Wheat", idealPH: 6.5, needN: 12},
	{name: "Corn", idealPH: 6.2, needN: 16},
	{name: "Soybeans", idealPH: 6.8, needN: 6},
	{name: "Cotton", idealPH: 7.0, needN: 14},
	{name: "Rice", idealPH: 5.8, needN: 18},
}

// RuleAnalyzer scores crops from a fixed agronomy table. Deterministic:
// the same sample always yields the same report.
type RuleAnalyzer struct{}

func NewRuleAnalyzer() *RuleAnalyzer { return &RuleAnalyzer{} }

func (a *RuleAnalyzer) Analyze(ctx context.Context, s model.SoilSample) (model.SoilAnalysis, error) {
	crops := make([]model.CropScore, 0, len(cropProfiles))
	for _, p := range cropProfiles {
		crops = append(crops, model.CropScore{Name: p.name, Score: scoreCrop(p, s)})
	}
	sort.SliceStable(crops, func(i, j int) bool { return crops[i].Score > crops[j].Score })

	return model.SoilAnalysis{
		SoilType:   soilType(s.PHValue),
		Fertility:  fertility(s),
		Condition:  condition(s),
		Crops:      crops,
		Irrigation: irrigation(s),
	}, nil
}

func scoreCrop(p cropProfile, s model.SoilSample) float64 {
	score := 100.0
	score -= 12 * abs(s.PHValue-p.idealPH)
	if s.NValue < p.needN {
		score -= 2 * (p.needN - s.NValue)
	}
	if s.PValue < 4 {
		score -= 2 * (4 - s.PValue)
	}
	if s.KValue < 4 {
		score -= 2 * (4 - s.KValue)
	}
	return clamp(score, 0, 100)
}

func soilType(ph float64) string {
	switch {
	case ph < 5.5:
		return "Acidic Clay"
	case ph <= 7.5:
		return "Loamy Soil"
	default:
		return "Chalky Soil"
	}
}

func fertility(s model.SoilSample) string {
	total := s.NValue + s.PValue + s.KValue
	switch {
	case total >= 45:
		return "High"
	case total >= 20:
		return "Moderate"
	default:
		return "Low"
	}
}

func condition(s model.SoilSample) string {
	var notes []string
	switch {
	case s.PHValue < 5.5:
		notes = append(notes, "Too acidic for most crops; consider liming.")
	case s.PHValue < 6.8:
		notes = append(notes, "Optimal for most crops. Slightly acidic.")
	case s.PHValue <= 7.5:
		notes = append(notes, "Neutral to mildly alkaline.")
	default:
		notes = append(notes, "Alkaline; micronutrient lockout is possible.")
	}
	if s.NValue < 8 {
		notes = append(notes, "Needs nitrogen.")
	}
	return strings.Join(notes, " ")
}

func irrigation(s model.SoilSample) model.IrrigationPlan {
	req := "Medium"
	freq := "Every 2-3 days"
	if strings.EqualFold(s.TimeOfYear, "summer") {
		req = "High"
		freq = "Daily"
	} else if strings.EqualFold(s.TimeOfYear, "monsoon") || strings.EqualFold(s.TimeOfYear, "winter") {
		req = "Low"
		freq = "Every 4-5 days"
	}
	return model.IrrigationPlan{Type: "Drip Irrigation", Requirement: req, Frequency: freq}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
