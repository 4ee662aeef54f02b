// Package enrich turns a free-text Indian location into carbon, renewable
// and footprint reports.
package enrich

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/i474232898/greentrack/internal/common"
	"github.com/i474232898/greentrack/internal/energy"
	"github.com/i474232898/greentrack/internal/environment"
	"github.com/i474232898/greentrack/internal/metrics"
	"github.com/i474232898/greentrack/internal/reference"
)

// Enrichment results for metrics.
const (
	ResultOK         = "ok"
	ResultUnresolved = "unresolved"
	ResultSuperseded = "superseded"
)

// DefaultMonthlyKWh is used when the caller gives no consumption.
const DefaultMonthlyKWh = 100

// ResolveError is the only error Enrich returns.
type ResolveError struct {
	Query string
	Err   error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("could not resolve location %q", e.Query)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// Orchestrator runs the geocode, fetch and estimate pipeline.
type Orchestrator struct {
	geocoder  environment.Geocoder
	fetcher   *environment.Fetcher
	carbon    *energy.CarbonEstimator
	renewable *energy.RenewableEstimator
	tables    *reference.Tables
	metrics   *metrics.Metrics
	logger    *zap.Logger
	sessions  SessionTracker
	now       func() time.Time
}

// SessionTracker orders the results of overlapping requests from one session.
// Abandon marks a sequence that produced no result so that older results
// still in flight are discarded too.
type SessionTracker interface {
	NextSequence(id string) uint64
	Commit(id string, seq uint64, result Result) bool
	Abandon(id string, seq uint64)
}

// NewOrchestrator wires the pipeline stages.
func NewOrchestrator(
	geocoder environment.Geocoder,
	fetcher *environment.Fetcher,
	carbon *energy.CarbonEstimator,
	renewable *energy.RenewableEstimator,
	tables *reference.Tables,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		geocoder:  geocoder,
		fetcher:   fetcher,
		carbon:    carbon,
		renewable: renewable,
		tables:    tables,
		metrics:   m,
		logger:    logger.Named("enrich"),
		now:       time.Now,
	}
}

// Enrich resolves query and builds all three reports. Only geocoding can
// fail; weather and air quality degrade to their fallbacks.
func (o *Orchestrator) Enrich(ctx context.Context, query string, monthlyKWh float64) (Result, error) {
	query = strings.TrimSpace(query)

	start := time.Now()
	loc, err := o.geocoder.Resolve(ctx, query)
	o.metrics.ObserveUpstream(o.geocoder.Name(), geocodeOutcome(err), time.Since(start))
	if err != nil {
		o.metrics.ObserveEnrichment(ResultUnresolved)
		o.logger.Info("location not resolved", zap.String("query", query), zap.Error(err))
		return Result{}, &ResolveError{Query: query, Err: err}
	}

	var (
		wg      sync.WaitGroup
		weather environment.WeatherResult
		air     environment.AirQualityResult
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		weather = o.fetcher.Weather(ctx, loc.Latitude, loc.Longitude)
	}()
	go func() {
		defer wg.Done()
		air = o.fetcher.AirQuality(ctx, loc.Latitude, loc.Longitude)
	}()
	wg.Wait()

	intensity := o.carbon.Estimate(loc.State, air.Snapshot, weather.Snapshot)
	potential := o.renewable.Estimate(weather.Snapshot)
	capacity := o.renewable.StateCapacity(loc.State)

	o.metrics.ObserveEnrichment(ResultOK)
	o.logger.Debug("location enriched",
		zap.String("query", query),
		zap.String("state", loc.State),
		zap.String("weather_source", string(weather.Source)),
		zap.String("air_quality_source", string(air.Source)),
		zap.Int("intensity", intensity.AdjustedIntensity),
	)

	coords := loc.Coordinates()
	return Result{
		Query: query,
		Carbon: CarbonReport{
			Location:              loc.DisplayName,
			State:                 loc.State,
			Coordinates:           coords,
			AirQuality:            air.Snapshot,
			Weather:               weather.Snapshot,
			Sources:               Sources{Weather: weather.Source, AirQuality: air.Source},
			Timestamp:             o.now().UTC(),
			CarbonIntensityResult: intensity,
		},
		Renewable: RenewableReport{
			Location:      loc.DisplayName,
			State:         loc.State,
			Coordinates:   coords,
			Potential:     potential,
			StateCapacity: capacity,
			Weather:       weather.Snapshot,
		},
		Footprint: o.footprint(loc, monthlyKWh, intensity.AdjustedIntensity),
	}, nil
}

// WithSessions enables EnrichSession.
func (o *Orchestrator) WithSessions(t SessionTracker) *Orchestrator {
	o.sessions = t
	return o
}

// EnrichSession runs Enrich under the session's next sequence number. The
// result is always returned; accepted is false when a later request of the
// same session has already committed, in which case the result is not kept.
func (o *Orchestrator) EnrichSession(ctx context.Context, sessionID, query string, monthlyKWh float64) (result Result, accepted bool, err error) {
	if o.sessions == nil || sessionID == "" {
		result, err = o.Enrich(ctx, query, monthlyKWh)
		return result, err == nil, err
	}

	seq := o.sessions.NextSequence(sessionID)
	result, err = o.Enrich(ctx, query, monthlyKWh)
	if err != nil {
		o.sessions.Abandon(sessionID, seq)
		return Result{}, false, err
	}
	if !o.sessions.Commit(sessionID, seq, result) {
		o.metrics.ObserveEnrichment(ResultSuperseded)
		o.logger.Info("discarding superseded enrichment",
			zap.String("session", sessionID),
			zap.Uint64("sequence", seq),
			zap.String("query", query),
		)
		return result, false, nil
	}
	return result, true, nil
}

// geocodeOutcome labels a geocoder call. An empty search still counts as a
// working upstream.
func geocodeOutcome(err error) string {
	if err != nil && common.IsTransport(err) {
		return metrics.OutcomeError
	}
	return metrics.OutcomeLive
}

func (o *Orchestrator) footprint(loc environment.ResolvedLocation, monthlyKWh float64, intensity int) FootprintReport {
	c := o.tables.Constants
	local := energy.FootprintWith(c, monthlyKWh, float64(intensity))
	national := energy.FootprintWith(c, monthlyKWh, float64(o.tables.NationalAverageIntensity()))

	return FootprintReport{
		Location:           loc.DisplayName,
		State:              loc.State,
		MonthlyConsumption: monthlyKWh,
		MonthlyCO2Kg:       local.CO2Kg,
		MonthlyCO2eKg:      local.CO2eKg,
		AnnualCO2Kg:        local.CO2Kg * 12,
		TreesNeeded:        local.TreesPerYear * 12,
		Comparison: Comparison{
			NationalAvgKg: national.CO2Kg,
			SavingsKg:     national.CO2Kg - local.CO2Kg,
		},
	}
}
