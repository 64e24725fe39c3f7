package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/agrovista/smart-farm-api/internal/model"
)

// WeatherClient fetches current conditions and hourly precipitation from
// Open-Meteo.
type WeatherClient struct {
	BaseURL    string
	DefaultLat string
	DefaultLon string
	HTTP       *http.Client
}

func NewWeatherClient(baseURL, defaultLat, defaultLon string, timeout time.Duration) *WeatherClient {
	return &WeatherClient{
		BaseURL:    baseURL,
		DefaultLat: defaultLat,
		DefaultLon: defaultLon,
		HTTP:       &http.Client{Timeout: timeout},
	}
}

type meteoResponse struct {
	Timezone       string `json:"timezone"`
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		Windspeed   float64 `json:"windspeed"`
		Weathercode int     `json:"weathercode"`
	} `json:"current_weather"`
	Hourly struct {
		Precipitation []float64 `json:"precipitation"`
	} `json:"hourly"`
}

// Current returns the weather report for the coordinates, falling back to
// the configured defaults when either is empty.
func (w *WeatherClient) Current(ctx context.Context, lat, lon string) (model.WeatherReport, error) {
	if lat == "" {
		lat = w.DefaultLat
	}
	if lon == "" {
		lon = w.DefaultLon
	}

	q := url.Values{}
	q.Set("latitude", lat)
	q.Set("longitude", lon)
	q.Set("current_weather", "true")
	q.Set("hourly", "precipitation")
	q.Set("timezone", "auto")
	target := w.BaseURL + "/v1/forecast?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return model.WeatherReport{}, wrap("weather", err)
	}
	resp, err := w.HTTP.Do(req)
	if err != nil {
		return model.WeatherReport{}, wrap("weather", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return model.WeatherReport{}, wrap("weather", fmt.Errorf("status %d", resp.StatusCode))
	}

	var m meteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return model.WeatherReport{}, wrap("weather", err)
	}

	rainfall := 0.0
	if len(m.Hourly.Precipitation) > 0 {
		rainfall = m.Hourly.Precipitation[0]
	}
	city := m.Timezone
	if city == "" {
		city = "Unknown"
	}
	return model.WeatherReport{
		City:        city,
		Temperature: m.CurrentWeather.Temperature,
		Windspeed:   m.CurrentWeather.Windspeed,
		Condition:   conditionText(m.CurrentWeather.Weathercode),
		Rainfall:    rainfall,
	}, nil
}

// conditionText maps WMO weather codes to short labels.
func conditionText(code int) string {
	switch {
	case code == 0:
		return "Clear"
	case code <= 3:
		return "Partly Cloudy"
	case code <= 48:
		return "Fog"
	case code <= 57:
		return "Drizzle"
	case code <= 67:
		return "Rain"
	case code <= 77:
		return "Snow"
	case code <= 82:
		return "Rain Showers"
	case code <= 86:
		return "Snow Showers"
	default:
		return "Thunderstorm"
	}
}
