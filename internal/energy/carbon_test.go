package energy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/i474232898/greentrack/internal/environment"
	"github.com/i474232898/greentrack/internal/reference"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func clockAt(hour int) func() time.Time {
	return func() time.Time { return time.Date(2024, 3, 10, hour, 15, 0, 0, ist) }
}

func TestTimeOfDayFactorContinuity(t *testing.T) {
	assert.InDelta(t, 1.0, TimeOfDayFactor(6), 1e-12)
	assert.InDelta(t, 1.0, TimeOfDayFactor(18), 1e-12)
	assert.InDelta(t, 0.85, TimeOfDayFactor(12), 1e-12)
	assert.Equal(t, 1.15, TimeOfDayFactor(5))
	assert.Equal(t, 1.15, TimeOfDayFactor(19))
	assert.Equal(t, 1.15, TimeOfDayFactor(0))

	for h := 6; h <= 18; h++ {
		f := TimeOfDayFactor(h)
		assert.LessOrEqual(t, f, 1.0+1e-12, "hour %d", h)
		assert.GreaterOrEqual(t, f, 0.85-1e-12, "hour %d", h)
	}
}

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		value int
		want  IntensityIndex
	}{
		{0, IndexVeryLow},
		{449, IndexVeryLow},
		{450, IndexLow},
		{549, IndexLow},
		{550, IndexModerate},
		{649, IndexModerate},
		{650, IndexHigh},
		{749, IndexHigh},
		{750, IndexVeryHigh},
		{2000, IndexVeryHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.value), "value %d", tt.value)
	}
}

func TestClassifyMonotonic(t *testing.T) {
	prev := Classify(0).Severity()
	for v := 1; v <= 1000; v++ {
		cur := Classify(v).Severity()
		assert.GreaterOrEqual(t, cur, prev, "value %d", v)
		prev = cur
	}
}

func TestCarbonEstimateNight(t *testing.T) {
	e := NewCarbonEstimator(reference.MustDefault(), ist, FixedRandom(0.5), clockAt(3))

	weather := environment.EnvironmentalSnapshot{CloudCoverPct: 30}
	weather.Solar.CurrentRadiationWm2 = 100

	got := e.Estimate("Rajasthan", nil, weather)

	assert.Equal(t, 520, got.BaseIntensity)
	assert.Equal(t, 598, got.AdjustedIntensity)
	assert.Equal(t, IndexModerate, got.Index)
	assert.Equal(t, 3, got.LocalHour)
}

func TestCarbonEstimateAllMultipliers(t *testing.T) {
	e := NewCarbonEstimator(reference.MustDefault(), ist, FixedRandom(0), clockAt(12))

	weather := environment.EnvironmentalSnapshot{CloudCoverPct: 90}
	weather.Solar.CurrentRadiationWm2 = 700
	air := &environment.AirQualitySnapshot{PM25: 200}

	got := e.Estimate("Atlantis", air, weather)

	// 630 × 0.85 × 1.25 × 0.85 × 1.08 × 0.97
	assert.Equal(t, 630, got.BaseIntensity)
	assert.Equal(t, 596, got.AdjustedIntensity)
	assert.Equal(t, IndexModerate, got.Index)
}

func TestCarbonEstimateSkipsMissingPM25(t *testing.T) {
	e := NewCarbonEstimator(reference.MustDefault(), ist, FixedRandom(0.5), clockAt(3))

	weather := environment.EnvironmentalSnapshot{}
	weather.Solar.CurrentRadiationWm2 = 300

	withZero := e.Estimate(reference.UnknownState, &environment.AirQualitySnapshot{PM25: 0}, weather)
	withNil := e.Estimate(reference.UnknownState, nil, weather)

	// 630 × 1.15 × 0.97
	assert.Equal(t, 703, withZero.AdjustedIntensity)
	assert.Equal(t, withNil, withZero)
}

func TestCarbonEstimateUsesConfiguredZone(t *testing.T) {
	// 22:00 UTC is 03:30 in India: night multiplier.
	utcEvening := func() time.Time { return time.Date(2024, 3, 10, 22, 0, 0, 0, time.UTC) }
	e := NewCarbonEstimator(reference.MustDefault(), ist, FixedRandom(0.5), utcEvening)

	got := e.Estimate("Rajasthan", nil, environment.EnvironmentalSnapshot{Solar: environment.SolarProfile{CurrentRadiationWm2: 100}})
	assert.Equal(t, 3, got.LocalHour)
	assert.Equal(t, 598, got.AdjustedIntensity)
}

func TestRadiationGapIsNeutral(t *testing.T) {
	assert.Equal(t, 1.0, radiationFactor(50))
	assert.Equal(t, 1.0, radiationFactor(200))
	assert.Equal(t, 1.12, radiationFactor(49.9))
	assert.Equal(t, 0.97, radiationFactor(200.1))
}
