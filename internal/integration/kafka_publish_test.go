//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	kafkaadapter "mars-weather-etl/internal/adapter/kafka"
	"mars-weather-etl/internal/config"
	"mars-weather-etl/internal/domain"
)

const testSinkTopic = "test-mars-weather-observations"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka launches a single-node Kafka container and returns its broker address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.8.0",
		tckafka.WithClusterID("test-cluster"),
	)
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
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

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer controllerConn.Close()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestPublisherRoundTrip verifies that cleaned observations published through
// the adapter arrive on the sink topic with the expected key, headers, and
// payload.
func TestPublisherRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSinkTopic)

	cfg := &config.Config{
		KafkaBrokers:   []string{broker},
		KafkaSinkTopic: testSinkTopic,
	}

	processed := time.Date(2018, time.March, 1, 6, 0, 0, 0, time.UTC)
	observations := []domain.Observation{
		{
			Date:           time.Date(2018, time.February, 27, 0, 0, 0, 0, time.UTC),
			Year:           2018,
			DayKey:         "2018-02-27",
			MinTemp:        -77,
			MaxTemp:        -10,
			Pressure:       733,
			SolarLongitude: 135.2,
			Season:         domain.SeasonSummer,
			Opacity:        "Sunny",
			ProcessedAt:    processed,
		},
		{
			Date:           time.Date(2018, time.February, 28, 0, 0, 0, 0, time.UTC),
			Year:           2018,
			DayKey:         "2018-02-28",
			MinTemp:        -76,
			MaxTemp:        -11,
			Pressure:       732,
			SolarLongitude: 135.8,
			Season:         domain.SeasonSummer,
			ProcessedAt:    processed,
		},
	}

	publisher := kafkaadapter.NewPublisher(cfg, discardLogger())
	t.Cleanup(func() { _ = publisher.Close() })

	require.NoError(t, publisher.PublishBatch(ctx, observations))

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	received := make(map[string]domain.Observation, len(observations))
	for len(received) < len(observations) {
		readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
		msg, err := consumer.ReadMessage(readCtx)
		readCancel()
		require.NoError(t, err, "read from sink topic")

		headers := make(map[string]string, len(msg.Headers))
		for _, h := range msg.Headers {
			headers[h.Key] = string(h.Value)
		}
		assert.Equal(t, "Summer", headers["season"])
		assert.Equal(t, processed.Format(time.RFC3339), headers["processed_at"])

		var obs domain.Observation
		require.NoError(t, json.Unmarshal(msg.Value, &obs))
		assert.Equal(t, string(msg.Key), obs.DayKey)
		received[obs.DayKey] = obs
	}

	first, ok := received["2018-02-27"]
	require.True(t, ok)
	assert.Equal(t, -77.0, first.MinTemp)
	assert.Equal(t, 733.0, first.Pressure)
	assert.Equal(t, "Sunny", first.Opacity)

	second, ok := received["2018-02-28"]
	require.True(t, ok)
	assert.Empty(t, second.Opacity)
}
