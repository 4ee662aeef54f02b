package energy

import (
	"math"
	"time"

	"github.com/i474232898/greentrack/internal/environment"
	"github.com/i474232898/greentrack/internal/reference"
)

// IntensityIndex is the qualitative band of a carbon intensity value.
type IntensityIndex string

const (
	IndexVeryLow  IntensityIndex = "very-low"
	IndexLow      IntensityIndex = "low"
	IndexModerate IntensityIndex = "moderate"
	IndexHigh     IntensityIndex = "high"
	IndexVeryHigh IntensityIndex = "very-high"
)

var severity = map[IntensityIndex]int{
	IndexVeryLow:  0,
	IndexLow:      1,
	IndexModerate: 2,
	IndexHigh:     3,
	IndexVeryHigh: 4,
}

// Severity orders indices from very-low (0) to very-high (4).
func (i IntensityIndex) Severity() int {
	return severity[i]
}

// CarbonIntensityResult is the grid carbon intensity for a place, in gCO2/kWh.
type CarbonIntensityResult struct {
	BaseIntensity     int            `json:"baseIntensity"`
	AdjustedIntensity int            `json:"carbonIntensity"`
	Index             IntensityIndex `json:"index"`
	LocalHour         int            `json:"localHour"`
}

// CarbonEstimator adjusts the state baseline for local conditions.
type CarbonEstimator struct {
	tables *reference.Tables
	zone   *time.Location
	rnd    RandomSource
	now    func() time.Time
}

// NewCarbonEstimator builds an estimator. Nil zone means UTC, nil rnd the
// shared generator and nil now the wall clock.
func NewCarbonEstimator(tables *reference.Tables, zone *time.Location, rnd RandomSource, now func() time.Time) *CarbonEstimator {
	if zone == nil {
		zone = time.UTC
	}
	if rnd == nil {
		rnd = DefaultRandom()
	}
	if now == nil {
		now = time.Now
	}
	return &CarbonEstimator{tables: tables, zone: zone, rnd: rnd, now: now}
}

// Estimate applies, in order, the time-of-day, pollution, solar radiation,
// cloud cover and jitter multipliers to the state's base intensity.
func (e *CarbonEstimator) Estimate(state string, air *environment.AirQualitySnapshot, weather environment.EnvironmentalSnapshot) CarbonIntensityResult {
	base := e.tables.BaseIntensity(state)
	hour := e.now().In(e.zone).Hour()

	adjusted := float64(base) * TimeOfDayFactor(hour)
	if air.HasPM25() {
		adjusted *= pollutionFactor(air.PM25)
	}
	adjusted *= radiationFactor(weather.Solar.CurrentRadiationWm2)
	if weather.CloudCoverPct > 80 {
		adjusted *= 1.08
	}
	adjusted *= 0.97 + 0.06*e.rnd.Float64()

	value := int(math.Round(adjusted))
	return CarbonIntensityResult{
		BaseIntensity:     base,
		AdjustedIntensity: value,
		Index:             Classify(value),
		LocalHour:         hour,
	}
}

// TimeOfDayFactor is 1-0.15·sin(π(h-6)/12) for hours 6..18 and 1.15 otherwise.
func TimeOfDayFactor(hour int) float64 {
	if hour >= 6 && hour <= 18 {
		return 1 - 0.15*math.Sin(float64(hour-6)/12*math.Pi)
	}
	return 1.15
}

func pollutionFactor(pm25 float64) float64 {
	switch {
	case pm25 > 150:
		return 1.25
	case pm25 > 100:
		return 1.15
	case pm25 > 50:
		return 1.05
	default:
		return 0.95
	}
}

// radiationFactor leaves 50..200 W/m² unadjusted.
func radiationFactor(current float64) float64 {
	switch {
	case current > 600:
		return 0.85
	case current > 400:
		return 0.92
	case current > 200:
		return 0.97
	case current < 50:
		return 1.12
	default:
		return 1
	}
}

// Classify maps an intensity to its band; thresholds are exclusive upper bounds.
func Classify(intensity int) IntensityIndex {
	switch {
	case intensity < 450:
		return IndexVeryLow
	case intensity < 550:
		return IndexLow
	case intensity < 650:
		return IndexModerate
	case intensity < 750:
		return IndexHigh
	default:
		return IndexVeryHigh
	}
}
