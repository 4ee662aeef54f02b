package enrich

import (
	"time"

	"github.com/i474232898/greentrack/internal/energy"
	"github.com/i474232898/greentrack/internal/environment"
)

// Sources records where each environmental input came from.
type Sources struct {
	Weather    environment.DataSource `json:"weather"`
	AirQuality environment.DataSource `json:"airQuality"`
}

// CarbonReport is the carbon intensity of a place plus the readings it was
// derived from. AirQuality is nil when the source was unavailable.
type CarbonReport struct {
	Location    string                            `json:"location"`
	State       string                            `json:"state"`
	Coordinates environment.Coordinates           `json:"coordinates"`
	AirQuality  *environment.AirQualitySnapshot   `json:"airQuality"`
	Weather     environment.EnvironmentalSnapshot `json:"weather"`
	Sources     Sources                           `json:"sources"`
	Timestamp   time.Time                         `json:"timestamp"`
	energy.CarbonIntensityResult
}

// RenewableReport is the renewable potential of a place and its state.
type RenewableReport struct {
	Location      string                            `json:"location"`
	State         string                            `json:"state"`
	Coordinates   environment.Coordinates           `json:"coordinates"`
	Potential     energy.RenewablePotential         `json:"potential"`
	StateCapacity energy.CapacityReport             `json:"stateCapacity"`
	Weather       environment.EnvironmentalSnapshot `json:"weather"`
}

// Comparison sets the place against the national average intensity.
type Comparison struct {
	NationalAvgKg float64 `json:"nationalAvg"`
	SavingsKg     float64 `json:"savings"`
}

// FootprintReport is the footprint of a monthly consumption at the place's
// adjusted intensity.
type FootprintReport struct {
	Location           string     `json:"location"`
	State              string     `json:"state"`
	MonthlyConsumption float64    `json:"monthlyConsumption"`
	MonthlyCO2Kg       float64    `json:"monthlyCO2"`
	MonthlyCO2eKg      float64    `json:"monthlyCO2e"`
	AnnualCO2Kg        float64    `json:"annualCO2"`
	TreesNeeded        int        `json:"treesNeeded"`
	Comparison         Comparison `json:"comparison"`
}

// Result is the full enrichment of one location query.
type Result struct {
	Query     string          `json:"query"`
	Carbon    CarbonReport    `json:"carbon"`
	Renewable RenewableReport `json:"renewable"`
	Footprint FootprintReport `json:"footprint"`
}
