package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovista/smart-farm-api/internal/model"
)

func TestAnalyzeScoresStayInRange(t *testing.T) {
	a := NewRuleAnalyzer()
	samples := []model.SoilSample{
		{Location: "Plot A", NValue: 10, PValue: 5, KValue: 8, PHValue: 6.5},
		{Location: "Plot B", NValue: 0, PValue: 0, KValue: 0, PHValue: 0},
		{Location: "Plot C", NValue: 200, PValue: 200, KValue: 200, PHValue: 14},
	}
	for _, s := range samples {
		res, err := a.Analyze(context.Background(), s)
		require.NoError(t, err)
		require.Len(t, res.Crops, len(cropProfiles))
		for _, c := range res.Crops {
			assert.GreaterOrEqual(t, c.Score, 0.0, "sample %s crop %s", s.Location, c.Name)
			assert.LessOrEqual(t, c.Score, 100.0, "sample %s crop %s", s.Location, c.Name)
		}
	}
}

func TestAnalyzeRanksCropsDescending(t *testing.T) {
	a := NewRuleAnalyzer()
	res, err := a.Analyze(context.Background(), model.SoilSample{
		Location: "Plot A", NValue: 10, PValue: 5, KValue: 8, PHValue: 6.5,
	})
	require.NoError(t, err)
	for i := 1; i < len(res.Crops); i++ {
		assert.GreaterOrEqual(t, res.Crops[i-1].Score, res.Crops[i].Score)
	}
	// pH 6.5 matches wheat's ideal band exactly.
	assert.Equal(t, "Wheat", res.Crops[0].Name)
}

func TestAnalyzeDeterministic(t *testing.T) {
	a := NewRuleAnalyzer()
	s := model.SoilSample{Location: "Plot A", NValue: 10, PValue: 5, KValue: 8, PHValue: 6.5}
	first, err := a.Analyze(context.Background(), s)
	require.NoError(t, err)
	second, err := a.Analyze(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSoilTypeBands(t *testing.T) {
	assert.Equal(t, "Acidic Clay", soilType(4.2))
	assert.Equal(t, "Loamy Soil", soilType(6.5))
	assert.Equal(t, "Loamy Soil", soilType(7.5))
	assert.Equal(t, "Chalky Soil", soilType(8.1))
}

func TestFertilityBands(t *testing.T) {
	assert.Equal(t, "Low", fertility(model.SoilSample{NValue: 5, PValue: 5, KValue: 5}))
	assert.Equal(t, "Moderate", fertility(model.SoilSample{NValue: 10, PValue: 5, KValue: 8}))
	assert.Equal(t, "High", fertility(model.SoilSample{NValue: 20, PValue: 15, KValue: 12}))
}

func TestIrrigationSeasons(t *testing.T) {
	cases := []struct {
		season string
		req    string
		freq   string
	}{
		{"summer", "High", "Daily"},
		{"Summer", "High", "Daily"},
		{"monsoon", "Low", "Every 4-5 days"},
		{"winter", "Low", "Every 4-5 days"},
		{"", "Medium", "Every 2-3 days"},
		{"spring", "Medium", "Every 2-3 days"},
	}
	for _, tc := range cases {
		plan := irrigation(model.SoilSample{TimeOfYear: tc.season})
		assert.Equal(t, "Drip Irrigation", plan.Type)
		assert.Equal(t, tc.req, plan.Requirement, "season %q", tc.season)
		assert.Equal(t, tc.freq, plan.Frequency, "season %q", tc.season)
	}
}
