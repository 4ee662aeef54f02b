package environment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/i474232898/greentrack/internal/common"
	"github.com/i474232898/greentrack/internal/metrics"
)

// WeatherResult is always usable: Snapshot holds either live data or
// FallbackSnapshot, and Source says which.
type WeatherResult struct {
	Snapshot EnvironmentalSnapshot `json:"snapshot"`
	Source   DataSource            `json:"source"`
	Err      error                 `json:"-"`
}

// AirQualityResult carries a nil Snapshot when the source failed.
type AirQualityResult struct {
	Snapshot *AirQualitySnapshot `json:"snapshot"`
	Source   DataSource          `json:"source"`
	Err      error               `json:"-"`
}

// Fetcher applies the fallback policy on top of the raw sources. The
// sources report failures; the Fetcher decides what to substitute.
type Fetcher struct {
	weather WeatherSource
	air     AirQualitySource
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewFetcher wires the two environmental sources.
func NewFetcher(weather WeatherSource, air AirQualitySource, m *metrics.Metrics, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		weather: weather,
		air:     air,
		metrics: m,
		logger:  logger.Named("environment.fetcher"),
	}
}

// Weather never fails; upstream errors yield the fallback snapshot.
func (f *Fetcher) Weather(ctx context.Context, lat, lon float64) WeatherResult {
	start := time.Now()
	snap, err := f.weather.Weather(ctx, lat, lon)
	if err != nil {
		f.metrics.ObserveUpstream(f.weather.Name(), metrics.OutcomeFallback, time.Since(start))
		f.logger.Warn("weather fetch failed, using fallback snapshot",
			zap.String("source", f.weather.Name()),
			zap.String("outcome", metrics.OutcomeFallback),
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.Error(err),
		)
		return WeatherResult{Snapshot: FallbackSnapshot(), Source: SourceFallback, Err: err}
	}
	f.metrics.ObserveUpstream(f.weather.Name(), metrics.OutcomeLive, time.Since(start))
	return WeatherResult{Snapshot: snap, Source: SourceLive}
}

// AirQuality degrades to a nil snapshot when the source fails.
func (f *Fetcher) AirQuality(ctx context.Context, lat, lon float64) AirQualityResult {
	start := time.Now()
	snap, err := f.air.AirQuality(ctx, lat, lon)
	if err != nil {
		f.metrics.ObserveUpstream(f.air.Name(), metrics.OutcomeDegraded, time.Since(start))
		f.logger.Warn("air quality unavailable",
			zap.String("source", f.air.Name()),
			zap.String("outcome", metrics.OutcomeDegraded),
			zap.Error(err),
		)
		return AirQualityResult{
			Source: SourceUnavailable,
			Err:    &common.DegradedDataError{Source: f.air.Name(), Err: err},
		}
	}
	f.metrics.ObserveUpstream(f.air.Name(), metrics.OutcomeLive, time.Since(start))
	return AirQualityResult{Snapshot: &snap, Source: SourceLive}
}
