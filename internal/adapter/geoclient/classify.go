// Package geoclient holds the HTTP error classification shared by the
// geocoding backends.
package geoclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/primex/opportunity-dashboard/internal/domain"
	"github.com/primex/opportunity-dashboard/internal/observability"
)

// ClassifyTransportError wraps an http.Client.Do failure in the matching
// domain error class. Timeouts become ErrGeocoderTimeout; every other
// transport failure (refused connection, DNS, reset) is a service error.
func ClassifyTransportError(provider string, err error) error {
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s geocode request: %w", provider, err)
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%s geocode request: %w: %w", provider, domain.ErrGeocoderTimeout, err)
	}
	return fmt.Errorf("%s geocode request: %w: %w", provider, domain.ErrGeocoderService, err)
}

// StatusError reports a non-200 response as a service error.
func StatusError(provider string, status int, body []byte) error {
	return fmt.Errorf("%s API error: %w: status %d: %s", provider, domain.ErrGeocoderService, status, body)
}

// Outcome labels a finished request for the geocode_requests_total metric.
func Outcome(result domain.GeocodingResult, err error) string {
	switch {
	case err == nil && result.Found():
		return "success"
	case err == nil:
		return "empty"
	case errors.Is(err, domain.ErrGeocoderTimeout):
		return "timeout"
	case errors.Is(err, domain.ErrGeocoderService):
		return "service_error"
	default:
		return "error"
	}
}

// Observe records the request outcome and duration. A nil metrics is ignored.
func Observe(metrics *observability.Metrics, provider string, start time.Time, result domain.GeocodingResult, err error) {
	if metrics == nil {
		return
	}
	metrics.GeocodeRequests.WithLabelValues(provider, Outcome(result, err)).Inc()
	metrics.GeocodeAPIDuration.With(prometheus.Labels{"provider": provider}).Observe(time.Since(start).Seconds())
}

// NewHTTPClient returns a client with the per-call timeout applied.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
