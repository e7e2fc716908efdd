package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/IBM/sarama"
)

// KafkaPublisher publishes lifecycle events to a Kafka topic.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// KafkaPublisherConfig holds Kafka producer configuration.
type KafkaPublisherConfig struct {
	Brokers []string
	Topic   string
}

// NewKafkaPublisher creates a Kafka-backed publisher.
func NewKafkaPublisher(config KafkaPublisherConfig) (*KafkaPublisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForLocal
	saramaConfig.Producer.Retry.Max = 3

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Printf("✅ Kafka publisher started (topic: %s)", config.Topic)

	return &KafkaPublisher{producer: producer, topic: config.Topic}, nil
}

// Publish serializes the event as JSON and sends it, keyed by request ID
// so a request's events stay ordered within a partition.
func (p *KafkaPublisher) Publish(_ context.Context, event Event) error {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Value: sarama.ByteEncoder(payload),
	}
	if event.Request != nil {
		msg.Key = sarama.StringEncoder(strconv.FormatInt(event.Request.ID, 10))
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}

	log.Printf("📤 Published %s event: partition=%d, offset=%d", event.Type, partition, offset)
	return nil
}

// Close gracefully shuts down the producer.
func (p *KafkaPublisher) Close() error {
	log.Println("Closing Kafka publisher...")
	return p.producer.Close()
}
