package model

// Trend values for MarketPrice.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// MarketQuery filters the price listing. Both fields are optional; on GET
// requests they travel as query parameters.
type MarketQuery struct {
	Crop     string `json:"crop,omitempty" query:"crop"`
	Location string `json:"location,omitempty" query:"location"`
}

// MarketPrice is one entry in the ordered price listing.
type MarketPrice struct {
	Market string  `json:"market" validate:"required"`
	Price  float64 `json:"price" validate:"gte=0"`
	Trend  string  `json:"trend" validate:"required,oneof=up down stable"`
}
