// Package geocode turns free-text addresses into coordinates with bounded
// retries and a process-lifetime cache.
package geocode

import (
	"context"
	"errors"
	"log/slog"

	"github.com/primex/opportunity-dashboard/internal/domain"
	"github.com/primex/opportunity-dashboard/internal/observability"
)

// Resolver implements domain.AddressResolver over a Geocoder, retrying
// transient failures according to its policy. It never returns an error:
// failures become notices and an absent result.
type Resolver struct {
	geocoder domain.Geocoder
	policy   domain.RetryPolicy
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewResolver creates a Resolver. A policy without a Retryable predicate
// retries timeouts and service errors.
func NewResolver(geocoder domain.Geocoder, policy domain.RetryPolicy, logger *slog.Logger, metrics *observability.Metrics) *Resolver {
	if policy.Retryable == nil {
		policy.Retryable = domain.IsRetryable
	}
	return &Resolver{
		geocoder: geocoder,
		policy:   policy,
		logger:   logger,
		metrics:  metrics,
	}
}

// Resolve looks the address up. The boolean is false when the address was
// not found or could not be resolved.
func (r *Resolver) Resolve(ctx context.Context, address string, n domain.Notifier) (domain.Geo, bool) {
	var result domain.GeocodingResult

	attempts, err := r.policy.Do(ctx, func(ctx context.Context, _ int) error {
		res, err := r.geocoder.Geocode(ctx, address)
		if err != nil {
			return err
		}
		result = res
		return nil
	}, func(attempt int, err error) {
		r.metrics.GeocodeRetries.Inc()
		r.logger.Warn("geocoding attempt failed, retrying",
			"address", address,
			"attempt", attempt,
			"delay", r.policy.Delay,
			"error", err,
		)
		domain.Notifyf(n, domain.NoticeWarning,
			"Geocoding error for '%s' (attempt %d): %v. Retrying in %s...",
			address, attempt, err, r.policy.Delay)
	})

	if err != nil {
		r.metrics.GeocodeResolutions.WithLabelValues("absent").Inc()
		r.reportFailure(address, attempts, err, n)
		return domain.Geo{}, false
	}

	if !result.Found() {
		r.metrics.GeocodeResolutions.WithLabelValues("absent").Inc()
		r.logger.Info("address not found", "address", address)
		return domain.Geo{}, false
	}

	r.metrics.GeocodeResolutions.WithLabelValues("resolved").Inc()
	return domain.Geo{Lat: result.Lat, Lon: result.Lon}, true
}

func (r *Resolver) reportFailure(address string, attempts int, err error, n domain.Notifier) {
	switch {
	case domain.IsRetryable(err):
		r.logger.Error("geocoding failed after retries",
			"address", address,
			"attempts", attempts,
			"error", err,
		)
		domain.Notifyf(n, domain.NoticeError,
			"Geocoding failed for '%s' after %d attempts: %v", address, attempts, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		r.logger.Warn("geocoding cancelled", "address", address, "error", err)
		domain.Notifyf(n, domain.NoticeError,
			"Geocoding cancelled for '%s': %v", address, err)
	default:
		r.logger.Error("unexpected geocoding error",
			"address", address,
			"error", err,
		)
		domain.Notifyf(n, domain.NoticeError,
			"Unexpected geocoding error for '%s': %v", address, err)
	}
}
