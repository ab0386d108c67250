package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/sirupsen/logrus"

	"autoblog/config"
)

// KafkaPublisher writes step events to a topic, keyed by run ID so one
// run's events stay on one partition.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   logrus.FieldLogger
}

// NewPublisher returns a Kafka publisher when brokers are configured and a
// no-op publisher otherwise.
func NewPublisher(cfg config.KafkaConfig, logger logrus.FieldLogger) (Publisher, error) {
	if len(cfg.Brokers) == 0 {
		return NoopPublisher{}, nil
	}
	return NewKafkaPublisher(cfg.Brokers, cfg.Topic, logger)
}

// NewKafkaPublisher connects a synchronous producer to brokers.
func NewKafkaPublisher(brokers []string, topic string, logger logrus.FieldLogger) (*KafkaPublisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.ClientID = "autoblog"
	saramaConfig.Producer.RequiredAcks = sarama.WaitForLocal
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Retry.Max = 3

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return NewKafkaPublisherWithProducer(producer, topic, logger), nil
}

// NewKafkaPublisherWithProducer wraps an existing producer.
func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string, logger logrus.FieldLogger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, logger: logger}
}

// Publish sends event and waits for the broker acknowledgement.
func (p *KafkaPublisher) Publish(ctx context.Context, event StepEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.RunID),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("step"), Value: []byte(event.Step)},
			{Key: []byte("status"), Value: []byte(event.Status)},
		},
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to produce message: %w", err)
	}

	p.logger.WithFields(logrus.Fields{
		"step":      event.Step,
		"status":    event.Status,
		"partition": partition,
		"offset":    offset,
	}).Debug("Published step event")
	return nil
}

// Close flushes and closes the producer.
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
