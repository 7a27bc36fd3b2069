// Command export geocodes the opportunity dataset once and publishes every
// record to the configured Kafka topic.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	kafkaadapter "github.com/primex/opportunity-dashboard/internal/adapter/kafka"
	"github.com/primex/opportunity-dashboard/internal/config"
	"github.com/primex/opportunity-dashboard/internal/geocode"
	"github.com/primex/opportunity-dashboard/internal/observability"
	"github.com/primex/opportunity-dashboard/internal/pipeline"
	"github.com/primex/opportunity-dashboard/internal/sample"
)

func main() {
	batchSize := flag.Int("batch-size", 50, "messages per Kafka write")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	resolver := geocode.NewFromConfig(cfg, clock, metrics, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	p := pipeline.New(sample.NewProvider(), resolver, writer, clock, logger, metrics, *batchSize)

	result, runErr := p.Run(ctx)

	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}
	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			logger.Info("export interrupted", "exported", result.Exported)
		} else {
			logger.Error("export failed", "error", runErr, "exported", result.Exported)
		}
		os.Exit(1)
	}

	logger.Info("export complete",
		"exported", result.Exported,
		"batches", result.Batches,
		"topic", cfg.KafkaTopic,
	)
}
