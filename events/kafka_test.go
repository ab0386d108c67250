package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoblog/config"
)

func TestKafkaPublisherSendsKeyedJSON(t *testing.T) {
	cfg := mocks.NewTestConfig()
	cfg.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, cfg)

	event := StepEvent{
		RunID:     "run-1",
		Step:      "dispatch-x",
		Status:    StatusFailed,
		Error:     "boom",
		Timestamp: time.Date(2026, 2, 10, 6, 0, 0, 0, time.UTC),
	}
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		assert.Equal(t, "autoblog.pipeline", msg.Topic)
		key, err := msg.Key.Encode()
		require.NoError(t, err)
		assert.Equal(t, "run-1", string(key))

		value, err := msg.Value.Encode()
		require.NoError(t, err)
		var got StepEvent
		require.NoError(t, json.Unmarshal(value, &got))
		assert.Equal(t, event, got)
		return nil
	})

	logger, _ := test.NewNullLogger()
	p := NewKafkaPublisherWithProducer(producer, "autoblog.pipeline", logger)
	require.NoError(t, p.Publish(context.Background(), event))
	require.NoError(t, p.Close())
}

func TestKafkaPublisherReportsFailure(t *testing.T) {
	cfg := mocks.NewTestConfig()
	cfg.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, cfg)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	logger, _ := test.NewNullLogger()
	p := NewKafkaPublisherWithProducer(producer, "t", logger)
	err := p.Publish(context.Background(), StepEvent{RunID: "r", Step: "reflect", Status: StatusStarted})
	assert.True(t, errors.Is(err, sarama.ErrOutOfBrokers))
	require.NoError(t, p.Close())
}

func TestNewPublisherWithoutBrokersIsNoop(t *testing.T) {
	logger, _ := test.NewNullLogger()
	p, err := NewPublisher(config.KafkaConfig{Topic: "t"}, logger)
	require.NoError(t, err)
	assert.IsType(t, NoopPublisher{}, p)
	assert.NoError(t, p.Publish(context.Background(), StepEvent{}))
}
