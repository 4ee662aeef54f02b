package energy

import (
	"math"

	"github.com/i474232898/greentrack/internal/reference"
)

// DefaultIntensity is used when the caller has no intensity estimate, in gCO2/kWh.
const DefaultIntensity = 500

const (
	co2eFactor          = 1.1
	treeAbsorptionGrams = 21000
)

// FootprintResult is the emission attributable to some consumption.
type FootprintResult struct {
	CO2Kg        float64 `json:"co2Kg"`
	CO2eKg       float64 `json:"co2eKg"`
	TreesPerYear int     `json:"treesPerYear"`
}

// CalculateFootprint converts kWh at an intensity (gCO2/kWh) into kg of CO2,
// CO2-equivalent and the number of trees absorbing it in a year. Inputs are
// not validated.
func CalculateFootprint(kwh, intensity float64) FootprintResult {
	return footprint(kwh, intensity, co2eFactor, treeAbsorptionGrams)
}

// FootprintWith is CalculateFootprint with the CO2e factor and tree
// absorption taken from the reference constants.
func FootprintWith(c reference.Constants, kwh, intensity float64) FootprintResult {
	return footprint(kwh, intensity, c.CO2eFactor, c.TreeAbsorptionGrams)
}

func footprint(kwh, intensity, co2e, absorption float64) FootprintResult {
	grams := kwh * intensity
	co2 := grams / 1000
	return FootprintResult{
		CO2Kg:        co2,
		CO2eKg:       co2 * co2e,
		TreesPerYear: int(math.Ceil(grams / absorption)),
	}
}
