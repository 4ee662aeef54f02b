package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/i474232898/greentrack/internal/reference"
)

func TestInferState(t *testing.T) {
	tables := reference.MustDefault()

	tests := []struct {
		name        string
		displayName string
		want        string
	}{
		{"city anywhere in the string", "Bandra West, MUMBAI, Mumbai Suburban, Maharashtra, 400050, India", "Maharashtra"},
		{"city lower case", "andheri, mumbai, india", "Maharashtra"},
		{"jaipur", "Jaipur, Jaipur Tehsil, Jaipur District, Rajasthan, 302001, India", "Rajasthan"},
		{"state segment exact", "Udupi, Udupi taluk, Karnataka, India", "Karnataka"},
		{"state segment partial", "Munnar, Idukki, kerala state, India", "Kerala"},
		{"nct delhi normalized", "Rohini, North West District, National Capital Territory of Delhi, India", "Delhi"},
		{"no match", "Atlantis, Nowhere", reference.UnknownState},
		{"empty segments skipped", "Atlantis,, ,Nowhere", reference.UnknownState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferState(tables, tt.displayName))
		})
	}
}

func TestClassifyAQI(t *testing.T) {
	assert.Equal(t, 1, ClassifyAQI(12).Level)
	assert.Equal(t, 2, ClassifyAQI(12.1).Level)
	assert.Equal(t, "Unhealthy for Sensitive Groups", ClassifyAQI(55.4).Label)
	assert.Equal(t, "red", ClassifyAQI(150.4).ColorTag)
	assert.Equal(t, 5, ClassifyAQI(250.4).Level)
	assert.Equal(t, AQI{Label: "Hazardous", Level: 6, ColorTag: "maroon"}, ClassifyAQI(300))
}
