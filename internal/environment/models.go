package environment

// DataSource tells callers whether a value came from the upstream API or
// was substituted locally.
type DataSource string

const (
	SourceLive        DataSource = "live"
	SourceFallback    DataSource = "fallback"
	SourceUnavailable DataSource = "unavailable"
)

// ResolvedLocation is a geocoded place. State is reference.UnknownState when
// it could not be inferred from the display name.
type ResolvedLocation struct {
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lon"`
	DisplayName string  `json:"displayName"`
	State       string  `json:"state"`
}

// Coordinates is the lat/lon pair echoed back in reports.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Coordinates returns the location's lat/lon pair.
func (l ResolvedLocation) Coordinates() Coordinates {
	return Coordinates{Lat: l.Latitude, Lon: l.Longitude}
}

// SolarProfile holds radiation readings in W/m².
type SolarProfile struct {
	CurrentRadiationWm2  float64 `json:"currentRadiation"`
	DirectRadiationWm2   float64 `json:"directRadiation"`
	DiffuseRadiationWm2  float64 `json:"diffuseRadiation"`
	AvgDailyRadiationWm2 float64 `json:"avgDailyRadiation"`
}

// EnvironmentalSnapshot is the current weather plus the solar profile.
type EnvironmentalSnapshot struct {
	TemperatureC  float64      `json:"temperatureC"`
	HumidityPct   float64      `json:"humidityPct"`
	PressureHpa   float64      `json:"pressureHpa"`
	CloudCoverPct float64      `json:"cloudCoverPct"`
	WindSpeedMs   float64      `json:"windSpeedMs"`
	Solar         SolarProfile `json:"solar"`
}

// FallbackSnapshot is substituted whenever the weather source fails.
func FallbackSnapshot() EnvironmentalSnapshot {
	return EnvironmentalSnapshot{
		TemperatureC:  28,
		HumidityPct:   65,
		PressureHpa:   1013,
		CloudCoverPct: 30,
		WindSpeedMs:   12,
		Solar: SolarProfile{
			CurrentRadiationWm2:  400,
			DirectRadiationWm2:   300,
			DiffuseRadiationWm2:  100,
			AvgDailyRadiationWm2: 350,
		},
	}
}

// AQI is a simplified air quality category derived from PM2.5.
type AQI struct {
	Label    string `json:"label"`
	Level    int    `json:"level"`
	ColorTag string `json:"color"`
}

// AirQualitySnapshot holds current pollutant concentrations in µg/m³.
type AirQualitySnapshot struct {
	PM10 float64 `json:"pm10"`
	PM25 float64 `json:"pm25"`
	CO   float64 `json:"co"`
	NO2  float64 `json:"no2"`
	SO2  float64 `json:"so2"`
	O3   float64 `json:"o3"`
	AQI  AQI     `json:"aqi"`
}

// HasPM25 reports whether a usable PM2.5 reading is present.
func (a *AirQualitySnapshot) HasPM25() bool {
	return a != nil && a.PM25 > 0
}
