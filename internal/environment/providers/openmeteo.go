package providers

import (
	"context"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/i474232898/greentrack/internal/environment"
)

const defaultOpenMeteoURL = "https://api.open-meteo.com/v1/forecast"

// OpenMeteoProvider implements environment.WeatherSource for Open-Meteo.
type OpenMeteoProvider struct {
	name     string
	baseURL  string
	timezone string
	zone     *time.Location
	client   *http.Client
	now      func() time.Time
}

// NewOpenMeteoProvider builds the weather source. The hourly radiation
// series is indexed by the hour of day in zone, which must match timezone.
func NewOpenMeteoProvider(client *http.Client, baseURL, timezone string, zone *time.Location) *OpenMeteoProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultOpenMeteoURL
	}
	if zone == nil {
		zone = time.UTC
	}
	return &OpenMeteoProvider{
		name:     "open-meteo",
		baseURL:  baseURL,
		timezone: timezone,
		zone:     zone,
		client:   client,
		now:      time.Now,
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) Weather(ctx context.Context, lat, lon float64) (environment.EnvironmentalSnapshot, error) {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	values.Set("current", "temperature_2m,relative_humidity_2m,surface_pressure,cloud_cover,wind_speed_10m")
	values.Set("hourly", "shortwave_radiation,direct_radiation,diffuse_radiation")
	values.Set("wind_speed_unit", "ms")
	values.Set("timezone", p.timezone)

	var payload struct {
		Current *struct {
			Temperature float64 `json:"temperature_2m"`
			Humidity    float64 `json:"relative_humidity_2m"`
			Pressure    float64 `json:"surface_pressure"`
			CloudCover  float64 `json:"cloud_cover"`
			WindSpeed   float64 `json:"wind_speed_10m"`
		} `json:"current"`
		Hourly struct {
			Shortwave []float64 `json:"shortwave_radiation"`
			Direct    []float64 `json:"direct_radiation"`
			Diffuse   []float64 `json:"diffuse_radiation"`
		} `json:"hourly"`
	}
	if err := getJSON(ctx, p.client, p.name, p.baseURL+"?"+values.Encode(), nil, &payload); err != nil {
		return environment.EnvironmentalSnapshot{}, err
	}
	if payload.Current == nil {
		return environment.EnvironmentalSnapshot{}, malformed(p.name, "missing current block")
	}

	hour := p.now().In(p.zone).Hour()
	h := payload.Hourly
	if hour >= len(h.Shortwave) || hour >= len(h.Direct) || hour >= len(h.Diffuse) {
		return environment.EnvironmentalSnapshot{}, malformed(p.name, "hourly series too short for hour %d", hour)
	}

	c := payload.Current
	return environment.EnvironmentalSnapshot{
		TemperatureC:  c.Temperature,
		HumidityPct:   c.Humidity,
		PressureHpa:   c.Pressure,
		CloudCoverPct: c.CloudCover,
		WindSpeedMs:   c.WindSpeed,
		Solar: environment.SolarProfile{
			CurrentRadiationWm2:  h.Shortwave[hour],
			DirectRadiationWm2:   h.Direct[hour],
			DiffuseRadiationWm2:  h.Diffuse[hour],
			AvgDailyRadiationWm2: dailyMean(h.Shortwave),
		},
	}, nil
}

// dailyMean averages the first 24 hourly samples, rounded to a whole W/m².
func dailyMean(series []float64) float64 {
	n := min(len(series), 24)
	if n == 0 {
		return 0
	}
	var sum float64
	for _, v := range series[:n] {
		sum += v
	}
	return math.Round(sum / float64(n))
}
