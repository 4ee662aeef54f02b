// Package reference holds the static lookup tables shared by the location
// and energy packages. Tables are decoded once and never mutated.
package reference

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnknownState is the sentinel used when no state could be inferred. Its
// carbon intensity doubles as the national average.
const UnknownState = "Unknown"

//go:embed tables.yaml
var embeddedTables []byte

// CityState maps a city alias to the state it belongs to.
type CityState struct {
	Name  string `yaml:"name"`
	State string `yaml:"state"`
}

// StateCapacity is the installed renewable capacity of a state, in MW.
type StateCapacity struct {
	State          string  `yaml:"state" json:"state"`
	SolarMW        float64 `yaml:"solarMw" json:"solarMw"`
	WindMW         float64 `yaml:"windMw" json:"windMw"`
	TotalMW        float64 `yaml:"totalMw" json:"totalMw"`
	PotentialMW    float64 `yaml:"potentialMw" json:"potentialMw"`
	UtilizationPct float64 `yaml:"utilizationPct" json:"utilizationPct"`
}

// Constants are the fixed assumptions behind the solar and footprint
// projections.
type Constants struct {
	PanelEfficiency      float64 `yaml:"panelEfficiency"`
	RoofAreaM2           float64 `yaml:"roofAreaM2"`
	RoofCapacityKW       float64 `yaml:"roofCapacityKw"`
	GridEmissionKgPerKWh float64 `yaml:"gridEmissionKgPerKwh"`
	TariffINRPerKWh      float64 `yaml:"tariffInrPerKwh"`
	CO2eFactor           float64 `yaml:"co2eFactor"`
	TreeAbsorptionGrams  float64 `yaml:"treeAbsorptionGrams"`
}

// Tables is the full reference data set.
type Tables struct {
	Cities             []CityState       `yaml:"cities"`
	States             []string          `yaml:"states"`
	StateAliases       map[string]string `yaml:"stateAliases"`
	CarbonIntensity    map[string]int    `yaml:"carbonIntensity"`
	Capacity           []StateCapacity   `yaml:"capacity"`
	DefaultPotentialMW float64           `yaml:"defaultPotentialMw"`
	Constants          Constants         `yaml:"constants"`
}

// Load decodes the tables at path, or the embedded defaults when path is empty.
func Load(path string) (*Tables, error) {
	data := embeddedTables
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read reference tables: %w", err)
		}
		data = raw
	}
	return Parse(data)
}

// Parse decodes and validates a YAML table document.
func Parse(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse reference tables: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid reference tables: %w", err)
	}
	return &t, nil
}

// MustDefault returns the embedded tables and panics if they are invalid.
func MustDefault() *Tables {
	t, err := Parse(embeddedTables)
	if err != nil {
		panic(err)
	}
	return t
}

// Validate checks the invariants the estimators rely on.
func (t *Tables) Validate() error {
	if _, ok := t.CarbonIntensity[UnknownState]; !ok {
		return errors.New("carbonIntensity must define the Unknown fallback")
	}
	if len(t.States) == 0 {
		return errors.New("states cannot be empty")
	}
	for _, c := range t.Cities {
		if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.State) == "" {
			return fmt.Errorf("city entry %+v is incomplete", c)
		}
	}
	if t.Constants.PanelEfficiency <= 0 || t.Constants.PanelEfficiency > 1 {
		return errors.New("constants.panelEfficiency must be in (0,1]")
	}
	if t.Constants.TreeAbsorptionGrams <= 0 {
		return errors.New("constants.treeAbsorptionGrams must be positive")
	}
	return nil
}

// BaseIntensity returns the state's carbon intensity in gCO2/kWh, falling
// back to the national average for states without an entry.
func (t *Tables) BaseIntensity(state string) int {
	if v, ok := t.CarbonIntensity[state]; ok {
		return v
	}
	return t.CarbonIntensity[UnknownState]
}

// NationalAverageIntensity is the Unknown entry of the intensity table.
func (t *Tables) NationalAverageIntensity() int {
	return t.CarbonIntensity[UnknownState]
}

// CapacityFor looks up the installed capacity row for a state.
func (t *Tables) CapacityFor(state string) (StateCapacity, bool) {
	for _, c := range t.Capacity {
		if c.State == state {
			return c, true
		}
	}
	return StateCapacity{}, false
}

// NormalizeState maps official long-form names to their short form.
func (t *Tables) NormalizeState(name string) string {
	if alias, ok := t.StateAliases[name]; ok {
		return alias
	}
	return name
}
