package model

// SoilSample is the analysis request: NPK readings in kg/ha and pH on the
// standard 0-14 scale, both ends inclusive.
type SoilSample struct {
	Location   string  `json:"location" validate:"required"`
	NValue     float64 `json:"nValue" validate:"gte=0"`
	PValue     float64 `json:"pValue" validate:"gte=0"`
	KValue     float64 `json:"kValue" validate:"gte=0"`
	PHValue    float64 `json:"phValue" validate:"gte=0,lte=14"`
	TimeOfYear string  `json:"timeOfYear,omitempty"`
}

// CropScore ranks one crop's suitability for the analyzed plot.
type CropScore struct {
	Name  string  `json:"name" validate:"required"`
	Score float64 `json:"score" validate:"gte=0,lte=100"`
}

// IrrigationPlan is the watering recommendation attached to an analysis.
type IrrigationPlan struct {
	Type        string `json:"type" validate:"required"`
	Requirement string `json:"requirement" validate:"required"`
	Frequency   string `json:"frequency" validate:"required"`
}

// SoilAnalysis is the analysis response. Crops is ordered best-first and
// never empty.
type SoilAnalysis struct {
	SoilType   string         `json:"soilType" validate:"required"`
	Fertility  string         `json:"fertility" validate:"required"`
	Condition  string         `json:"condition" validate:"required"`
	Crops      []CropScore    `json:"crops" validate:"required,min=1,dive"`
	Irrigation IrrigationPlan `json:"irrigation"`
}
