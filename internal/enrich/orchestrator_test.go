package enrich

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/i474232898/greentrack/internal/common"
	"github.com/i474232898/greentrack/internal/energy"
	"github.com/i474232898/greentrack/internal/environment"
	"github.com/i474232898/greentrack/internal/environment/providers"
	"github.com/i474232898/greentrack/internal/metrics"
	"github.com/i474232898/greentrack/internal/reference"
	"github.com/i474232898/greentrack/internal/store"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func nightClock() time.Time { return time.Date(2024, 11, 2, 3, 0, 0, 0, ist) }

type upstream struct {
	geocode  string
	weather  int
	airQuery string
}

// newUpstream serves Nominatim, Open-Meteo and air quality from one test server.
func newUpstream(t *testing.T, u upstream) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(u.geocode))
	})
	mux.HandleFunc("/forecast", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(u.weather)
	})
	mux.HandleFunc("/air-quality", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(u.airQuery))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newOrchestrator(t *testing.T, srv *httptest.Server) *Orchestrator {
	t.Helper()
	tables := reference.MustDefault()
	logger := zaptest.NewLogger(t)
	m := metrics.New()

	geocoder := providers.NewNominatimGeocoder(srv.Client(), srv.URL+"/search", "greentrack-test", tables)
	weather := providers.NewOpenMeteoProvider(srv.Client(), srv.URL+"/forecast", "Asia/Kolkata", ist)
	air := providers.NewAirQualityProvider(srv.Client(), srv.URL+"/air-quality", "Asia/Kolkata")
	fetcher := environment.NewFetcher(weather, air, m, logger)

	return NewOrchestrator(
		geocoder,
		fetcher,
		energy.NewCarbonEstimator(tables, ist, energy.FixedRandom(0.5), nightClock),
		energy.NewRenewableEstimator(tables),
		tables,
		m,
		logger,
	)
}

func TestEnrichJaipur(t *testing.T) {
	srv := newUpstream(t, upstream{
		geocode:  `[{"lat":"26.9124","lon":"75.7873","display_name":"Jaipur, Jaipur Tehsil, Jaipur District, Rajasthan, 302001, India"}]`,
		weather:  http.StatusBadGateway,
		airQuery: `{"current":{"pm10":40,"pm2_5":20,"carbon_monoxide":200,"nitrogen_dioxide":10,"sulphur_dioxide":4,"ozone":50}}`,
	})
	o := newOrchestrator(t, srv)

	res, err := o.Enrich(context.Background(), "  Jaipur ", 200)
	require.NoError(t, err)

	assert.Equal(t, "Jaipur", res.Query)
	assert.Equal(t, "Rajasthan", res.Carbon.State)
	assert.Equal(t, "Rajasthan", res.Renewable.State)
	assert.Equal(t, "Rajasthan", res.Footprint.State)
	assert.Equal(t, 200.0, res.Footprint.MonthlyConsumption)
	assert.Equal(t, environment.Coordinates{Lat: 26.9124, Lon: 75.7873}, res.Carbon.Coordinates)

	// weather fell back, air quality is live
	assert.Equal(t, environment.SourceFallback, res.Carbon.Sources.Weather)
	assert.Equal(t, environment.SourceLive, res.Carbon.Sources.AirQuality)
	assert.Equal(t, environment.FallbackSnapshot(), res.Carbon.Weather)
	require.NotNil(t, res.Carbon.AirQuality)
	assert.Equal(t, "Moderate", res.Carbon.AirQuality.AQI.Label)

	// 520 × 1.15 (night) × 0.95 (clean air) × 0.97 (400 W/m²) × 1.0
	assert.Equal(t, 520, res.Carbon.BaseIntensity)
	assert.Equal(t, 551, res.Carbon.AdjustedIntensity)
	assert.Equal(t, energy.IndexModerate, res.Carbon.Index)

	fp := res.Footprint
	assert.InDelta(t, 110.2, fp.MonthlyCO2Kg, 1e-9)
	assert.InDelta(t, 121.22, fp.MonthlyCO2eKg, 1e-9)
	assert.InDelta(t, 1322.4, fp.AnnualCO2Kg, 1e-9)
	assert.Equal(t, 72, fp.TreesNeeded)
	assert.InDelta(t, 126.0, fp.Comparison.NationalAvgKg, 1e-9)
	assert.InDelta(t, 15.8, fp.Comparison.SavingsKg, 1e-9)

	assert.Equal(t, energy.SolarGood, res.Renewable.Potential.Solar.Category)
	assert.Equal(t, energy.WindExcellent, res.Renewable.Potential.Wind.Category)
	assert.Equal(t, 22100.0, res.Renewable.StateCapacity.TotalMW)
}

func TestEnrichAirQualityUnavailable(t *testing.T) {
	srv := newUpstream(t, upstream{
		geocode:  `[{"lat":"19.07","lon":"72.87","display_name":"Mumbai, Maharashtra, India"}]`,
		weather:  http.StatusInternalServerError,
		airQuery: `not json`,
	})
	o := newOrchestrator(t, srv)

	res, err := o.Enrich(context.Background(), "Mumbai", DefaultMonthlyKWh)
	require.NoError(t, err)

	assert.Nil(t, res.Carbon.AirQuality)
	assert.Equal(t, environment.SourceUnavailable, res.Carbon.Sources.AirQuality)
	// 650 × 1.15 × 0.97, no pollution multiplier
	assert.Equal(t, 725, res.Carbon.AdjustedIntensity)
}

func TestEnrichUnresolved(t *testing.T) {
	srv := newUpstream(t, upstream{geocode: `[]`})
	o := newOrchestrator(t, srv)

	_, err := o.Enrich(context.Background(), "Atlantis", 100)
	require.Error(t, err)

	var re *ResolveError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "Atlantis", re.Query)
	assert.Equal(t, `could not resolve location "Atlantis"`, err.Error())
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, 1.0, upstreamCount(t, o.metrics, "nominatim", metrics.OutcomeLive))
	assert.Zero(t, upstreamCount(t, o.metrics, "nominatim", metrics.OutcomeError))
}

func TestEnrichGeocoderTransportFailure(t *testing.T) {
	srv := newUpstream(t, upstream{geocode: `{`})
	o := newOrchestrator(t, srv)

	_, err := o.Enrich(context.Background(), "Delhi", 100)
	var re *ResolveError
	require.ErrorAs(t, err, &re)
	assert.True(t, common.IsTransport(err))
	assert.Equal(t, 1.0, upstreamCount(t, o.metrics, "nominatim", metrics.OutcomeError))
}

// upstreamCount reads one series of the upstream request counter.
func upstreamCount(t *testing.T, m *metrics.Metrics, source, outcome string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != "greentrack_upstream_requests_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			labels := map[string]string{}
			for _, l := range metric.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["source"] == source && labels["outcome"] == outcome {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

type hookGeocoder struct {
	loc        environment.ResolvedLocation
	hook       func()
	unresolved string
}

func (hookGeocoder) Name() string { return "test-geocoder" }

func (g hookGeocoder) Resolve(ctx context.Context, query string) (environment.ResolvedLocation, error) {
	if query == g.unresolved {
		return environment.ResolvedLocation{}, common.ErrNotFound
	}
	if g.hook != nil {
		g.hook()
	}
	return g.loc, nil
}

type failingWeather struct{}

func (failingWeather) Name() string { return "weather" }
func (failingWeather) Weather(ctx context.Context, lat, lon float64) (environment.EnvironmentalSnapshot, error) {
	return environment.EnvironmentalSnapshot{}, errors.New("offline")
}

type failingAir struct{}

func (failingAir) Name() string { return "air" }
func (failingAir) AirQuality(ctx context.Context, lat, lon float64) (environment.AirQualitySnapshot, error) {
	return environment.AirQualitySnapshot{}, errors.New("offline")
}

func TestEnrichSessionDiscardsSuperseded(t *testing.T) {
	tables := reference.MustDefault()
	sessions := store.NewSessionStore[Result](0)

	geocoder := hookGeocoder{
		loc: environment.ResolvedLocation{Latitude: 1, Longitude: 2, DisplayName: "Pune, Maharashtra, India", State: "Maharashtra"},
		hook: func() {
			// a newer request from the same session starts and completes
			seq := sessions.NextSequence("tab")
			sessions.Commit("tab", seq, Result{Query: "Chennai"})
		},
	}
	o := NewOrchestrator(
		geocoder,
		environment.NewFetcher(failingWeather{}, failingAir{}, nil, nil),
		energy.NewCarbonEstimator(tables, ist, energy.FixedRandom(0.5), nightClock),
		energy.NewRenewableEstimator(tables),
		tables,
		metrics.New(),
		zaptest.NewLogger(t),
	).WithSessions(sessions)

	res, accepted, err := o.EnrichSession(context.Background(), "tab", "Pune", 100)
	require.NoError(t, err)
	assert.False(t, accepted)
	assert.Equal(t, "Pune", res.Query)

	latest, _, err := sessions.Latest("tab")
	require.NoError(t, err)
	assert.Equal(t, "Chennai", latest.Query)
}

func TestEnrichSessionFailedNewerRequestDiscardsOlder(t *testing.T) {
	tables := reference.MustDefault()
	sessions := store.NewSessionStore[Result](0)

	var o *Orchestrator
	geocoder := hookGeocoder{
		loc:        environment.ResolvedLocation{DisplayName: "Pune, Maharashtra, India", State: "Maharashtra"},
		unresolved: "Atlantis",
		hook: func() {
			// a newer search from the same session fails meanwhile
			_, accepted, err := o.EnrichSession(context.Background(), "tab", "Atlantis", 100)
			require.Error(t, err)
			assert.False(t, accepted)
		},
	}
	o = NewOrchestrator(
		geocoder,
		environment.NewFetcher(failingWeather{}, failingAir{}, nil, nil),
		energy.NewCarbonEstimator(tables, ist, energy.FixedRandom(0.5), nightClock),
		energy.NewRenewableEstimator(tables),
		tables,
		metrics.New(),
		zaptest.NewLogger(t),
	).WithSessions(sessions)

	res, accepted, err := o.EnrichSession(context.Background(), "tab", "Pune", 100)
	require.NoError(t, err)
	assert.False(t, accepted)
	assert.Equal(t, "Pune", res.Query)

	_, _, err = sessions.Latest("tab")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestEnrichSessionAccepted(t *testing.T) {
	tables := reference.MustDefault()
	sessions := store.NewSessionStore[Result](0)
	geocoder := hookGeocoder{loc: environment.ResolvedLocation{DisplayName: "Kochi, Kerala, India", State: "Kerala"}}

	o := NewOrchestrator(
		geocoder,
		environment.NewFetcher(failingWeather{}, failingAir{}, nil, nil),
		energy.NewCarbonEstimator(tables, ist, energy.FixedRandom(0.5), nightClock),
		energy.NewRenewableEstimator(tables),
		tables,
		nil,
		nil,
	).WithSessions(sessions)

	_, accepted, err := o.EnrichSession(context.Background(), "tab", "Kochi", 100)
	require.NoError(t, err)
	assert.True(t, accepted)

	_, accepted, err = o.EnrichSession(context.Background(), "", "Kochi", 100)
	require.NoError(t, err)
	assert.True(t, accepted, "requests without a session are never superseded")

	latest, seq, err := sessions.Latest("tab")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), seq)
	assert.Equal(t, "Kerala", latest.Carbon.State)
}
