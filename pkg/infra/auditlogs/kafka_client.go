package auditlogs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/sirupsen/logrus"
)

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type kafkaClient struct {
	topic    string
	producer *kafka.Producer
	logger   *logrus.Logger
}

func NewKafkaClient(cfg KafkaConfig, logger *logrus.Logger) (Client, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka topic is required")
	}
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": strings.Join(cfg.Brokers, ","),
		"acks":              "1",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	c := &kafkaClient{
		topic:    cfg.Topic,
		producer: producer,
		logger:   logger,
	}
	go c.watchDeliveries()
	return c, nil
}

// Emit enqueues the event. Delivery reports arrive on the producer's event
// channel so the caller never waits on the broker.
func (c *kafkaClient) Emit(_ context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}
	err = c.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &c.topic, Partition: kafka.PartitionAny},
		Key:            []byte(event.Target.ID),
		Value:          data,
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to produce audit event: %w", err)
	}
	return nil
}

func (c *kafkaClient) watchDeliveries() {
	for e := range c.producer.Events() {
		m, ok := e.(*kafka.Message)
		if !ok {
			continue
		}
		if m.TopicPartition.Error != nil {
			c.logger.WithError(m.TopicPartition.Error).Error("audit event delivery failed")
		}
	}
}

func (c *kafkaClient) Close() error {
	c.producer.Flush(5000)
	c.producer.Close()
	return nil
}
