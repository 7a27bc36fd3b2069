package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Geocoder providers accepted by GEOCODER_PROVIDER.
const (
	GeocoderNominatim = "nominatim"
	GeocoderMapbox    = "mapbox"
	GeocoderNone      = "none"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Geocoding configuration.
	GeocoderProvider   string
	NominatimURL       string
	GeocoderUserAgent  string
	GeocoderTimeout    time.Duration
	GeocodeMaxAttempts int
	GeocodeRetryDelay  time.Duration
	GeocodeCacheSize   int
	MapboxToken        string

	// Login gate.
	DashboardUsername string
	DashboardPassword string
	SessionSecret     string
	SessionTTL        time.Duration

	// Export.
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	geocoderTimeout, err := parsePositiveDuration("GEOCODER_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	retryDelay, err := parseDuration("GEOCODE_RETRY_DELAY", "2s")
	if err != nil {
		return nil, err
	}

	maxAttempts, err := parsePositiveInt("GEOCODE_MAX_ATTEMPTS", 3)
	if err != nil {
		return nil, err
	}

	sessionTTL, err := parsePositiveDuration("SESSION_TTL", "12h")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		GeocoderProvider:   strings.ToLower(sharedcfg.EnvOrDefault("GEOCODER_PROVIDER", GeocoderNominatim)),
		NominatimURL:       strings.TrimRight(sharedcfg.EnvOrDefault("NOMINATIM_URL", "https://nominatim.openstreetmap.org"), "/"),
		GeocoderUserAgent:  sharedcfg.EnvOrDefault("GEOCODER_USER_AGENT", "primex_monitoramento_app"),
		GeocoderTimeout:    geocoderTimeout,
		GeocodeMaxAttempts: maxAttempts,
		GeocodeRetryDelay:  retryDelay,
		GeocodeCacheSize:   parseCacheSize(),
		MapboxToken:        os.Getenv("MAPBOX_TOKEN"),

		DashboardUsername: sharedcfg.EnvOrDefault("DASHBOARD_USERNAME", "primex"),
		DashboardPassword: sharedcfg.EnvOrDefault("DASHBOARD_PASSWORD", "primex@123"),
		SessionSecret:     os.Getenv("SESSION_SECRET"),
		SessionTTL:        sessionTTL,

		KafkaBrokers: sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "opportunities"),
	}

	switch cfg.GeocoderProvider {
	case GeocoderNominatim, GeocoderNone:
	case GeocoderMapbox:
		if cfg.MapboxToken == "" {
			return nil, errors.New("GEOCODER_PROVIDER is mapbox but MAPBOX_TOKEN is not set")
		}
	default:
		return nil, fmt.Errorf("invalid GEOCODER_PROVIDER %q", cfg.GeocoderProvider)
	}
	if cfg.DashboardUsername == "" || cfg.DashboardPassword == "" {
		return nil, errors.New("DASHBOARD_USERNAME and DASHBOARD_PASSWORD must not be empty")
	}
	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required")
	}

	return cfg, nil
}

// GeocodingEnabled reports whether a geocoding provider is configured.
func (c *Config) GeocodingEnabled() bool {
	return c.GeocoderProvider != GeocoderNone
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", key)
	}
	return n, nil
}

// parseCacheSize returns GEOCODE_CACHE_SIZE; zero or negative means unbounded.
func parseCacheSize() int {
	if s := os.Getenv("GEOCODE_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return 1000
}
