package main

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/i474232898/greentrack/internal/advisor"
	"github.com/i474232898/greentrack/internal/config"
	"github.com/i474232898/greentrack/internal/energy"
	"github.com/i474232898/greentrack/internal/enrich"
	"github.com/i474232898/greentrack/internal/environment"
	"github.com/i474232898/greentrack/internal/environment/providers"
	"github.com/i474232898/greentrack/internal/llm/openrouter"
	"github.com/i474232898/greentrack/internal/logging"
	"github.com/i474232898/greentrack/internal/metrics"
	"github.com/i474232898/greentrack/internal/reference"
	"github.com/i474232898/greentrack/internal/store"
)

// components is the fully wired application shared by every subcommand.
type components struct {
	cfg          *config.AppConfig
	logger       *zap.Logger
	metrics      *metrics.Metrics
	orchestrator *enrich.Orchestrator
	sessions     *store.SessionStore[enrich.Result]
	responder    *advisor.Responder
	chat         *advisor.ChatService
	generation   *energy.GenerationBoard
}

func wire() (*components, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	tables, err := reference.Load(cfg.ReferenceTablesPath)
	if err != nil {
		return nil, err
	}

	zone := cfg.Location()
	m := metrics.New()

	// Shared HTTP client for outbound calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	fetcher := environment.NewFetcher(
		providers.NewOpenMeteoProvider(httpClient, cfg.WeatherURL, cfg.TimezoneName, zone),
		providers.NewAirQualityProvider(httpClient, cfg.AirQualityURL, cfg.TimezoneName),
		m,
		logger,
	)

	sessions := store.NewSessionStore[enrich.Result](cfg.SessionMaxAge)
	orchestrator := enrich.NewOrchestrator(
		providers.NewNominatimGeocoder(httpClient, cfg.GeocoderURL, cfg.GeocoderUserAgent, tables),
		fetcher,
		energy.NewCarbonEstimator(tables, zone, energy.DefaultRandom(), nil),
		energy.NewRenewableEstimator(tables),
		tables,
		m,
		logger,
	).WithSessions(sessions)

	catalog, err := advisor.DefaultCatalog()
	if err != nil {
		return nil, err
	}

	// A nil completer keeps the advisor on canned replies.
	var completer advisor.ChatCompleter
	if cfg.AdvisorEnabled() {
		client, err := openrouter.NewClient(openrouter.Options{
			APIKey:     cfg.OpenRouterAPIKey,
			BaseURL:    cfg.OpenRouterURL,
			Referer:    cfg.OpenRouterReferer,
			Title:      cfg.OpenRouterTitle,
			HTTPClient: &http.Client{Timeout: 3 * cfg.HTTPTimeout},
		})
		if err != nil {
			return nil, err
		}
		completer = client
	} else {
		logger.Info("OPENROUTER_API_KEY not set; advisor will use canned advice only")
	}

	responder := advisor.NewResponder(completer, advisor.ModelSettings{
		Model:        cfg.OpenRouterModel,
		Temperature:  cfg.OpenRouterTemperature,
		MaxTokens:    cfg.OpenRouterMaxTokens,
		HistoryLimit: cfg.AdvisorHistoryLimit,
	}, catalog, m, logger)

	return &components{
		cfg:          cfg,
		logger:       logger,
		metrics:      m,
		orchestrator: orchestrator,
		sessions:     sessions,
		responder:    responder,
		chat:         advisor.NewChatService(responder, store.NewConversationStore(cfg.ConversationMaxSize)),
		generation:   energy.NewGenerationBoard(zone, energy.DefaultRandom()),
	}, nil
}
