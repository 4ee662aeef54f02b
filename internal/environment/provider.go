package environment

import "context"

// Geocoder resolves free text to a location. Implementations return an error
// wrapping common.ErrNotFound when the search has no results and a
// *common.TransportError when the call itself fails.
type Geocoder interface {
	Name() string
	Resolve(ctx context.Context, query string) (ResolvedLocation, error)
}

// WeatherSource fetches current weather and solar radiation.
type WeatherSource interface {
	Name() string
	Weather(ctx context.Context, lat, lon float64) (EnvironmentalSnapshot, error)
}

// AirQualitySource fetches current pollutant readings.
type AirQualitySource interface {
	Name() string
	AirQuality(ctx context.Context, lat, lon float64) (AirQualitySnapshot, error)
}
