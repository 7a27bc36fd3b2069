//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/primex/opportunity-dashboard/internal/adapter/kafka"
	"github.com/primex/opportunity-dashboard/internal/config"
	"github.com/primex/opportunity-dashboard/internal/domain"
	"github.com/primex/opportunity-dashboard/internal/observability"
	"github.com/primex/opportunity-dashboard/internal/pipeline"
	"github.com/primex/opportunity-dashboard/internal/sample"
)

const testTopic = "test-opportunities"

// exportedMessage holds a deserialized message read from the export topic.
type exportedMessage struct {
	Record  domain.ExportRecord
	Key     string
	Headers map[string]string
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	ctr, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("primex-test"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = ctr.Terminate(context.Background()) })

	brokers, err := ctr.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	ctrlConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrlConn.Close()

	require.NoError(t, ctrlConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// readExported reads a single message from the export topic and deserializes it.
func readExported(ctx context.Context, t *testing.T, consumer *kafkago.Reader) exportedMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from export topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var rec domain.ExportRecord
	require.NoError(t, json.Unmarshal(msg.Value, &rec), "unmarshal export message")

	return exportedMessage{Record: rec, Key: string(msg.Key), Headers: headers}
}

// TestExportPipeline runs the full export against a real broker and reads
// every message back.
func TestExportPipeline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	cfg := &config.Config{KafkaBrokers: []string{broker}, KafkaTopic: testTopic}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	exportedAt := time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC)
	p := pipeline.New(sample.NewProvider(), nil, writer, clockwork.NewFakeClockAt(exportedAt),
		discardLogger(), observability.NewMetricsForTesting(), 3)

	result, err := p.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, result.Exported)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     testTopic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  1e6,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	seen := make(map[string]exportedMessage)
	for range 7 {
		msg := readExported(ctx, t, consumer)
		seen[msg.Key] = msg
	}
	require.Len(t, seen, 7)

	first := seen["1"]
	assert.Equal(t, domain.TypeConstructionPermit, first.Headers["opportunity_type"])
	assert.Equal(t, domain.PriorityHigh, first.Headers["priority"])
	assert.Equal(t, exportedAt.Format(time.RFC3339), first.Headers["exported_at"])
	assert.InDelta(t, 1_500_000, first.Record.TotalValue, 0.001)
	assert.Equal(t, "São Paulo", first.Record.Municipality)
}
