package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/agrovista/smart-farm-api/internal/model"
)

// MarketProvider lists commodity prices. The live client and the fixture
// provider implement the same interface; the choice is made once at
// startup from configuration.
type MarketProvider interface {
	Prices(ctx context.Context, q model.MarketQuery) ([]model.MarketPrice, error)
}

// AgmarknetClient queries the data.gov.in commodity price resource.
type AgmarknetClient struct {
	BaseURL string
	APIKey  string
	State   string
	HTTP    *http.Client
}

func NewAgmarknetClient(baseURL, apiKey, state string, timeout time.Duration) *AgmarknetClient {
	return &AgmarknetClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		State:   state,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// flexFloat tolerates the API's habit of quoting numeric fields.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" || s == "NR" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

type agmarknetRecord struct {
	Market     string    `json:"market"`
	Commodity  string    `json:"commodity"`
	District   string    `json:"district"`
	MinPrice   flexFloat `json:"min_price"`
	MaxPrice   flexFloat `json:"max_price"`
	ModalPrice flexFloat `json:"modal_price"`
}

type agmarknetResponse struct {
	Records []agmarknetRecord `json:"records"`
}

func (c *AgmarknetClient) Prices(ctx context.Context, q model.MarketQuery) ([]model.MarketPrice, error) {
	v := url.Values{}
	v.Set("api-key", c.APIKey)
	v.Set("format", "json")
	v.Set("limit", "100")
	if c.State != "" {
		v.Set("filters[state]", c.State)
	}
	if q.Crop != "" {
		v.Set("filters[commodity]", q.Crop)
	}
	if q.Location != "" {
		v.Set("filters[district]", q.Location)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+v.Encode(), nil)
	if err != nil {
		return nil, wrap("market", err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, wrap("market", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, wrap("market", fmt.Errorf("status %d", resp.StatusCode))
	}

	var body agmarknetResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, wrap("market", err)
	}

	prices := make([]model.MarketPrice, 0, len(body.Records))
	for _, r := range body.Records {
		prices = append(prices, model.MarketPrice{
			Market: r.Market,
			Price:  float64(r.ModalPrice),
			Trend:  trend(float64(r.ModalPrice), float64(r.MinPrice), float64(r.MaxPrice)),
		})
	}
	return prices, nil
}

// trend places the modal price inside the day's min/max band: near the
// top is "up", near the bottom "down", otherwise "stable".
func trend(modal, min, max float64) string {
	if max <= min {
		return model.TrendStable
	}
	pos := (modal - min) / (max - min)
	switch {
	case pos >= 0.66:
		return model.TrendUp
	case pos <= 0.33:
		return model.TrendDown
	default:
		return model.TrendStable
	}
}

// FixtureProvider serves a stable listing for environments without a
// data.gov.in API key.
type FixtureProvider struct{}

func NewFixtureProvider() *FixtureProvider { return &FixtureProvider{} }

type fixtureEntry struct {
	market   string
	district string
	crop     string
	price    float64
	trend    string
}

var fixtures = []fixtureEntry{
	{market: "Ernakulam Market", district: "Ernakulam", crop: "Rice", price: 2450, trend: model.TrendUp},
	{market: "Aluva Market", district: "Ernakulam", crop: "Banana", price: 3800, trend: model.TrendStable},
	{market: "Kochi Wholesale", district: "Ernakulam", crop: "Coconut", price: 1900, trend: model.TrendDown},
	{market: "Thrissur Market", district: "Thrissur", crop: "Rice", price: 2410, trend: model.TrendStable},
	{market: "Palakkad Mandi", district: "Palakkad", crop: "Wheat", price: 2150, trend: model.TrendUp},
	{market: "Kozhikode Market", district: "Kozhikode", crop: "Pepper", price: 51200, trend: model.TrendUp},
}

func (p *FixtureProvider) Prices(ctx context.Context, q model.MarketQuery) ([]model.MarketPrice, error) {
	out := make([]model.MarketPrice, 0, len(fixtures))
	for _, f := range fixtures {
		if q.Crop != "" && !strings.EqualFold(q.Crop, f.crop) {
			continue
		}
		if q.Location != "" && !strings.EqualFold(q.Location, f.district) {
			continue
		}
		out = append(out, model.MarketPrice{Market: f.market, Price: f.price, Trend: f.trend})
	}
	return out, nil
}
