package model

// DetectionInput names the crop to run detection against.
type DetectionInput struct {
	CropName string `json:"cropName" validate:"required"`
}

// DiseaseDetection is the detection result.
type DiseaseDetection struct {
	Disease   string `json:"disease" validate:"required"`
	Severity  string `json:"severity" validate:"required"`
	Treatment string `json:"treatment" validate:"required"`
}
