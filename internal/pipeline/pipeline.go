// Package pipeline exports the geocoded opportunity dataset to a downstream
// topic in one pass.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/primex/opportunity-dashboard/internal/domain"
	"github.com/primex/opportunity-dashboard/internal/observability"
)

// ErrNothingToExport is returned when the source yields no records.
var ErrNothingToExport = errors.New("no opportunities to export")

// maxLoadAttempts bounds how often one batch is offered to the loader.
const maxLoadAttempts = 5

// Extractor supplies the opportunity records.
type Extractor interface {
	Opportunities(n domain.Notifier) ([]domain.Opportunity, error)
}

// BatchLoader writes multiple export records to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, records []domain.ExportRecord) error
}

// Result summarizes one export run.
type Result struct {
	Exported  int
	Batches   int
	Geocoding domain.GeocodeSummary
}

// Pipeline orchestrates the extract, geocode and load pass.
type Pipeline struct {
	extractor Extractor
	resolver  domain.AddressResolver
	loader    BatchLoader
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics
	batchSize int
}

// New creates a Pipeline. A nil resolver exports records without coordinates.
func New(e Extractor, resolver domain.AddressResolver, l BatchLoader, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Pipeline{
		extractor: e,
		resolver:  resolver,
		loader:    l,
		clock:     clock,
		logger:    logger,
		metrics:   metrics,
		batchSize: batchSize,
	}
}

// Run executes one export pass. It stops at the first batch that cannot be
// loaded after retries.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	var res Result
	notices := logNotifier{logger: p.logger}

	records, err := p.extractor.Opportunities(notices)
	if err != nil {
		return res, fmt.Errorf("extract opportunities: %w", err)
	}
	if len(records) == 0 {
		return res, ErrNothingToExport
	}
	p.logger.Info("export started", "records", len(records), "batch_size", p.batchSize)

	res.Geocoding = domain.AttachCoordinates(ctx, records, p.resolver, notices, p.logger)
	if err := ctx.Err(); err != nil {
		return res, err
	}

	out := domain.NewExportRecords(records, p.clock.Now())
	for start := 0; start < len(out); start += p.batchSize {
		end := min(start+p.batchSize, len(out))
		batch := out[start:end]
		if err := p.loadWithBackoff(ctx, batch); err != nil {
			return res, err
		}
		res.Exported += len(batch)
		res.Batches++
		p.metrics.MessagesProduced.Add(float64(len(batch)))
	}

	p.logger.Info("export finished",
		"exported", res.Exported,
		"batches", res.Batches,
		"geocoded", res.Geocoding.Resolved,
	)
	return res, nil
}

// loadWithBackoff offers a batch to the loader, backing off exponentially
// between failures.
func (p *Pipeline) loadWithBackoff(ctx context.Context, batch []domain.ExportRecord) error {
	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	var err error
	for attempt := 1; attempt <= maxLoadAttempts; attempt++ {
		if err = p.loader.LoadBatch(ctx, batch); err == nil {
			return nil
		}
		p.metrics.ExportErrors.Inc()
		p.logger.Error("load batch failed", "error", err, "batch_size", len(batch), "attempt", attempt)
		if attempt == maxLoadAttempts || ctx.Err() != nil {
			break
		}
		if !sleepWithContext(ctx, p.clock, backoff) {
			return ctx.Err()
		}
		backoff = nextBackoff(backoff, maxBackoff)
	}
	return fmt.Errorf("load batch: %w", err)
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, clock clockwork.Clock, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}
