package model

// WeatherQuery selects the location; empty coordinates fall back to the
// configured defaults.
type WeatherQuery struct {
	Lat string `json:"lat,omitempty" query:"lat"`
	Lon string `json:"lon,omitempty" query:"lon"`
}

// WeatherReport is the current-conditions payload.
type WeatherReport struct {
	City        string  `json:"city" validate:"required"`
	Temperature float64 `json:"temperature"`
	Windspeed   float64 `json:"windspeed" validate:"gte=0"`
	Condition   string  `json:"condition" validate:"required"`
	Rainfall    float64 `json:"rainfall" validate:"gte=0"`
}
