package energy

import (
	"math"

	"github.com/i474232898/greentrack/internal/environment"
	"github.com/i474232898/greentrack/internal/reference"
)

// Solar categories.
const (
	SolarExcellent = "Excellent"
	SolarVeryGood  = "Very Good"
	SolarGood      = "Good"
	SolarModerate  = "Moderate"
	SolarPoor      = "Poor"
)

// Wind categories.
const (
	WindExcellent   = "Excellent"
	WindGood        = "Good"
	WindModerate    = "Moderate"
	WindLow         = "Low"
	WindNotSuitable = "Not Suitable"
)

// RooftopEstimate projects a fixed-size residential installation.
type RooftopEstimate struct {
	AreaM2     float64 `json:"areaM2"`
	CapacityKW float64 `json:"capacityKw"`
	DailyKWh   float64 `json:"dailyKwh"`
	AnnualKWh  float64 `json:"annualKwh"`
	CO2SavedKg float64 `json:"co2SavedKg"`
	SavingsINR float64 `json:"savingsInr"`
}

type SolarPotential struct {
	AvgDailyRadiationWm2 float64         `json:"avgDailyRadiation"`
	CurrentRadiationWm2  float64         `json:"currentRadiation"`
	DailyKWhPerKW        float64         `json:"dailyKwhPerKw"`
	AnnualKWhPerKW       float64         `json:"annualKwhPerKw"`
	Category             string          `json:"category"`
	Rooftop              RooftopEstimate `json:"rooftopEstimate"`
}

type WindPotential struct {
	SpeedMs             float64 `json:"speedMs"`
	Category            string  `json:"category"`
	Suitability         string  `json:"suitability"`
	CommercialViability bool    `json:"commercialViability"`
	EstimatedCapacityW  float64 `json:"estimatedCapacityW"`
}

type RenewablePotential struct {
	Solar SolarPotential `json:"solar"`
	Wind  WindPotential  `json:"wind"`
}

// CapacityReport is a state's installed capacity with derived progress figures.
type CapacityReport struct {
	reference.StateCapacity
	ProgressToTargetPct   float64 `json:"progressToTargetPct"`
	InvestmentNeededCrore float64 `json:"investmentNeededCrore"`
}

// RenewableEstimator derives solar and wind potential from a weather snapshot.
type RenewableEstimator struct {
	tables *reference.Tables
}

func NewRenewableEstimator(tables *reference.Tables) *RenewableEstimator {
	return &RenewableEstimator{tables: tables}
}

func (e *RenewableEstimator) Estimate(weather environment.EnvironmentalSnapshot) RenewablePotential {
	return RenewablePotential{
		Solar: e.solar(weather.Solar),
		Wind:  windPotential(weather.WindSpeedMs),
	}
}

func (e *RenewableEstimator) solar(profile environment.SolarProfile) SolarPotential {
	c := e.tables.Constants
	avg := profile.AvgDailyRadiationWm2

	daily := avg * 24 * c.PanelEfficiency / 1000
	annual := daily * 365

	return SolarPotential{
		AvgDailyRadiationWm2: avg,
		CurrentRadiationWm2:  profile.CurrentRadiationWm2,
		DailyKWhPerKW:        math.Round(daily*100) / 100,
		AnnualKWhPerKW:       math.Round(annual),
		Category:             solarCategory(avg),
		Rooftop: RooftopEstimate{
			AreaM2:     c.RoofAreaM2,
			CapacityKW: c.RoofCapacityKW,
			DailyKWh:   daily * c.RoofCapacityKW,
			AnnualKWh:  annual * c.RoofCapacityKW,
			CO2SavedKg: annual * c.RoofCapacityKW * c.GridEmissionKgPerKWh,
			SavingsINR: math.Round(annual * c.RoofCapacityKW * c.TariffINRPerKWh),
		},
	}
}

// solarCategory leaves 200..300 W/m² as Moderate.
func solarCategory(avg float64) string {
	switch {
	case avg > 600:
		return SolarExcellent
	case avg > 450:
		return SolarVeryGood
	case avg > 300:
		return SolarGood
	case avg < 200:
		return SolarPoor
	default:
		return SolarModerate
	}
}

func windPotential(speed float64) WindPotential {
	w := WindPotential{
		SpeedMs:             speed,
		Category:            WindNotSuitable,
		Suitability:         "Not Suitable",
		CommercialViability: speed > 5,
	}
	switch {
	case speed > 6:
		w.Category, w.Suitability = WindExcellent, "Excellent for Wind Farms"
		w.EstimatedCapacityW = math.Round(speed * 100)
	case speed > 5:
		w.Category, w.Suitability = WindGood, "Good for Small Wind Turbines"
		w.EstimatedCapacityW = math.Round(speed * 80)
	case speed > 4:
		w.Category, w.Suitability = WindModerate, "Moderate – Small Scale Possible"
		w.EstimatedCapacityW = math.Round(speed * 50)
	case speed > 3:
		w.Category, w.Suitability = WindLow, "Low – Not Recommended"
		w.EstimatedCapacityW = math.Round(speed * 30)
	}
	return w
}

// StateCapacity returns the state's row, or a zero-capacity row with the
// generic potential when the state is not tracked.
func (e *RenewableEstimator) StateCapacity(state string) CapacityReport {
	row, ok := e.tables.CapacityFor(state)
	if !ok {
		row = reference.StateCapacity{State: state, PotentialMW: e.tables.DefaultPotentialMW}
	}

	report := CapacityReport{StateCapacity: row}
	if row.PotentialMW > 0 {
		report.ProgressToTargetPct = math.Round(row.TotalMW/row.PotentialMW*1000) / 10
	}
	report.InvestmentNeededCrore = math.Floor((row.PotentialMW - row.TotalMW) * 0.5)
	return report
}
