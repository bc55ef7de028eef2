// Package kafka provides an optional ingest source: sensor devices that
// publish readings to a broker instead of calling the HTTP API. Messages
// flow through the same ingestion service, so validation and alert
// evaluation behave identically on both paths.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"skywatch/internal/config"
	"skywatch/internal/logger"
	"skywatch/internal/metrics"
	"skywatch/internal/models"
)

// Submitter is the ingestion entry point readings are handed to.
type Submitter interface {
	Submit(ctx context.Context, in models.ReadingInput) (models.Reading, error)
}

// Consumer reads JSON reading messages from a topic and submits them.
type Consumer struct {
	reader    *kafka.Reader
	submitter Submitter
	log       zerolog.Logger
}

// NewConsumer creates a consumer for the configured brokers and topic.
func NewConsumer(cfg config.KafkaConfig, submitter Submitter) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.Topic,
		MinBytes: 1,
		MaxBytes: 1 << 20,
	})

	return &Consumer{
		reader:    reader,
		submitter: submitter,
		log:       logger.WithComponent("kafka_consumer"),
	}
}

// Run consumes messages until the context is cancelled. A bad message is
// counted and skipped; the consumer never takes the server down over one
// device's payload.
func (c *Consumer) Run(ctx context.Context) error {
	c.log.Info().Str("topic", c.reader.Config().Topic).Msg("kafka consumer started")

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		c.handle(ctx, msg.Value)
	}
}

// handle decodes and submits one message payload.
func (c *Consumer) handle(ctx context.Context, payload []byte) {
	var in models.ReadingInput
	if err := json.Unmarshal(payload, &in); err != nil {
		metrics.KafkaMessagesConsumed.WithLabelValues("invalid").Inc()
		c.log.Warn().Err(err).Msg("discarding malformed reading message")
		return
	}

	if _, err := c.submitter.Submit(ctx, in); err != nil {
		metrics.KafkaMessagesConsumed.WithLabelValues("rejected").Inc()
		metrics.ReadingsIngested.WithLabelValues("kafka", "rejected").Inc()
		c.log.Warn().Err(err).Msg("reading rejected")
		return
	}

	metrics.KafkaMessagesConsumed.WithLabelValues("accepted").Inc()
	metrics.ReadingsIngested.WithLabelValues("kafka", "accepted").Inc()
}

// Close shuts down the underlying reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
