package geocode_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/primex/opportunity-dashboard/internal/config"
	"github.com/primex/opportunity-dashboard/internal/geocode"
	"github.com/primex/opportunity-dashboard/internal/observability"
)

func TestNewFromConfig(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	base := config.Config{
		NominatimURL:       "http://localhost:1",
		GeocoderUserAgent:  "test",
		GeocoderTimeout:    time.Second,
		GeocodeMaxAttempts: 3,
		GeocodeRetryDelay:  time.Second,
		GeocodeCacheSize:   10,
		MapboxToken:        "token",
	}

	tests := []struct {
		provider string
		enabled  bool
	}{
		{config.GeocoderNominatim, true},
		{config.GeocoderMapbox, true},
		{config.GeocoderNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			cfg := base
			cfg.GeocoderProvider = tt.provider
			metrics := observability.NewMetricsForTesting()

			resolver := geocode.NewFromConfig(&cfg, clockwork.NewFakeClock(), metrics, logger)

			if tt.enabled {
				assert.IsType(t, &geocode.CachedResolver{}, resolver)
				assert.Equal(t, 1.0, testutil.ToFloat64(metrics.GeocodeEnabled))
			} else {
				assert.Nil(t, resolver)
				assert.Equal(t, 0.0, testutil.ToFloat64(metrics.GeocodeEnabled))
			}
		})
	}
}
