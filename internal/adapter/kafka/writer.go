package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/primex/opportunity-dashboard/internal/config"
	"github.com/primex/opportunity-dashboard/internal/domain"
)

// Writer produces messages to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured export topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes and publishes multiple opportunities in a single
// WriteMessages call.
func (w *Writer) LoadBatch(ctx context.Context, records []domain.ExportRecord) error {
	if len(records) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(records))
	for i := range records {
		msg, err := serializeToMessage(records[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d messages: %w", len(msgs), err)
	}
	w.logger.Debug("batch written", "topic", w.writer.Topic, "messages", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an export record into a Kafka message keyed by
// opportunity id.
func serializeToMessage(rec domain.ExportRecord) (kafkago.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize opportunity %d: %w", rec.ID, err)
	}
	return kafkago.Message{
		Key:   []byte(strconv.Itoa(rec.ID)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "opportunity_type", Value: []byte(rec.Type)},
			{Key: "priority", Value: []byte(rec.Priority)},
			{Key: "exported_at", Value: []byte(rec.ExportedAt.Format(time.RFC3339))},
		},
	}, nil
}
