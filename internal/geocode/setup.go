package geocode

import (
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/primex/opportunity-dashboard/internal/adapter/mapbox"
	"github.com/primex/opportunity-dashboard/internal/adapter/nominatim"
	"github.com/primex/opportunity-dashboard/internal/config"
	"github.com/primex/opportunity-dashboard/internal/domain"
	"github.com/primex/opportunity-dashboard/internal/observability"
)

// NewFromConfig builds the cached, retrying resolver for the configured
// provider. It returns nil when geocoding is disabled.
func NewFromConfig(cfg *config.Config, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) domain.AddressResolver {
	var geocoder domain.Geocoder
	switch cfg.GeocoderProvider {
	case config.GeocoderNominatim:
		geocoder = nominatim.NewClient(cfg.NominatimURL, cfg.GeocoderUserAgent, cfg.GeocoderTimeout, metrics, logger)
	case config.GeocoderMapbox:
		geocoder = mapbox.NewClient(cfg.MapboxToken, cfg.GeocoderTimeout, metrics, logger)
	default:
		metrics.GeocodeEnabled.Set(0)
		logger.Info("geocoding disabled")
		return nil
	}

	policy := domain.DefaultRetryPolicy()
	policy.MaxAttempts = cfg.GeocodeMaxAttempts
	policy.Delay = cfg.GeocodeRetryDelay
	policy.Clock = clock

	metrics.GeocodeEnabled.Set(1)
	logger.Info("geocoding enabled",
		"provider", cfg.GeocoderProvider,
		"timeout", cfg.GeocoderTimeout,
		"max_attempts", policy.MaxAttempts,
		"retry_delay", policy.Delay,
		"cache_size", cfg.GeocodeCacheSize,
	)
	return NewCachedResolver(NewResolver(geocoder, policy, logger, metrics), cfg.GeocodeCacheSize, metrics)
}
