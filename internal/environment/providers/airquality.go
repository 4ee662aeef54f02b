package providers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/i474232898/greentrack/internal/environment"
)

const defaultAirQualityURL = "https://air-quality-api.open-meteo.com/v1/air-quality"

// AirQualityProvider implements environment.AirQualitySource for the
// Open-Meteo air quality API.
type AirQualityProvider struct {
	name     string
	baseURL  string
	timezone string
	client   *http.Client
}

func NewAirQualityProvider(client *http.Client, baseURL, timezone string) *AirQualityProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultAirQualityURL
	}
	return &AirQualityProvider{
		name:     "open-meteo-air-quality",
		baseURL:  baseURL,
		timezone: timezone,
		client:   client,
	}
}

func (p *AirQualityProvider) Name() string {
	return p.name
}

func (p *AirQualityProvider) AirQuality(ctx context.Context, lat, lon float64) (environment.AirQualitySnapshot, error) {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	values.Set("current", "pm10,pm2_5,carbon_monoxide,nitrogen_dioxide,sulphur_dioxide,ozone")
	values.Set("timezone", p.timezone)

	var payload struct {
		Current *struct {
			PM10 float64 `json:"pm10"`
			PM25 float64 `json:"pm2_5"`
			CO   float64 `json:"carbon_monoxide"`
			NO2  float64 `json:"nitrogen_dioxide"`
			SO2  float64 `json:"sulphur_dioxide"`
			O3   float64 `json:"ozone"`
		} `json:"current"`
	}
	if err := getJSON(ctx, p.client, p.name, p.baseURL+"?"+values.Encode(), nil, &payload); err != nil {
		return environment.AirQualitySnapshot{}, err
	}
	if payload.Current == nil {
		return environment.AirQualitySnapshot{}, malformed(p.name, "missing current block")
	}

	c := payload.Current
	return environment.AirQualitySnapshot{
		PM10: c.PM10,
		PM25: c.PM25,
		CO:   c.CO,
		NO2:  c.NO2,
		SO2:  c.SO2,
		O3:   c.O3,
		AQI:  environment.ClassifyAQI(c.PM25),
	}, nil
}
