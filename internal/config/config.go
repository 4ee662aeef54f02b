package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port string

	// HTTPTimeout bounds every outbound call to an upstream API.
	HTTPTimeout time.Duration

	LogLevel  string
	LogFormat string

	GeocoderURL       string
	GeocoderUserAgent string
	WeatherURL        string
	AirQualityURL     string

	// TimezoneName is sent to Open-Meteo and used to pick the local hour.
	TimezoneName string

	// Chat model settings. An empty key disables the remote model.
	OpenRouterAPIKey      string
	OpenRouterURL         string
	OpenRouterModel       string
	OpenRouterTemperature float64
	OpenRouterMaxTokens   int
	OpenRouterReferer     string
	OpenRouterTitle       string

	AdvisorHistoryLimit int
	ConversationMaxSize int
	SessionMaxAge       time.Duration
	GenerationInterval  time.Duration
	ReferenceTablesPath string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}
	var err error

	cfg.Port = getenvDefault("PORT", "8080")

	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}

	cfg.LogLevel = strings.ToLower(getenvDefault("LOG_LEVEL", "info"))
	cfg.LogFormat = strings.ToLower(getenvDefault("LOG_FORMAT", "json"))
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: use json or console", cfg.LogFormat)
	}

	cfg.GeocoderURL = getenvDefault("GEOCODER_URL", "https://nominatim.openstreetmap.org/search")
	cfg.GeocoderUserAgent = getenvDefault("GEOCODER_USER_AGENT", "GreenTrack-India-Platform")
	cfg.WeatherURL = getenvDefault("WEATHER_URL", "https://api.open-meteo.com/v1/forecast")
	cfg.AirQualityURL = getenvDefault("AIR_QUALITY_URL", "https://air-quality-api.open-meteo.com/v1/air-quality")
	cfg.TimezoneName = getenvDefault("TIMEZONE_NAME", "Asia/Kolkata")

	cfg.OpenRouterAPIKey = strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY"))
	cfg.OpenRouterURL = getenvDefault("OPENROUTER_URL", "https://openrouter.ai/api/v1")
	cfg.OpenRouterModel = getenvDefault("OPENROUTER_MODEL", "openai/gpt-3.5-turbo")
	if cfg.OpenRouterTemperature, err = getenvFloat("OPENROUTER_TEMPERATURE", 0.7); err != nil {
		return nil, err
	}
	cfg.OpenRouterMaxTokens = getenvInt("OPENROUTER_MAX_TOKENS", 800)
	cfg.OpenRouterReferer = getenvDefault("OPENROUTER_REFERER", "http://localhost:"+cfg.Port)
	cfg.OpenRouterTitle = getenvDefault("OPENROUTER_TITLE", "GreenTrack India AI")

	cfg.AdvisorHistoryLimit = getenvInt("ADVISOR_HISTORY_LIMIT", 10)
	cfg.ConversationMaxSize = getenvInt("CONVERSATION_MAX_MESSAGES", 200)

	if cfg.SessionMaxAge, err = getenvDuration("SESSION_MAX_AGE", "1h"); err != nil {
		return nil, err
	}
	if cfg.GenerationInterval, err = getenvDuration("GENERATION_INTERVAL", "30s"); err != nil {
		return nil, err
	}
	if cfg.GenerationInterval < time.Second {
		return nil, fmt.Errorf("GENERATION_INTERVAL must be at least 1s, got %s", cfg.GenerationInterval)
	}

	cfg.ReferenceTablesPath = os.Getenv("REFERENCE_TABLES_PATH")

	return cfg, nil
}

// Location resolves TimezoneName, falling back to a fixed +05:30 zone when
// the tz database does not know it.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimezoneName)
	if err != nil {
		return time.FixedZone("IST", 5*3600+1800)
	}
	return loc
}

// AdvisorEnabled reports whether the remote chat model can be used.
func (c *AppConfig) AdvisorEnabled() bool {
	return c.OpenRouterAPIKey != ""
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
