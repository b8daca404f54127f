package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/spaceflight-news/pkg/logger"
)

// Invalidator drops cached data derived from stored articles
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// SyncListener drops the cached monthly report whenever a sync that stored
// articles is announced on TopicSyncCompleted. It covers syncs run by
// processes that have no access to the report cache themselves.
type SyncListener struct {
	group sarama.ConsumerGroup
	cache Invalidator
	retry *backoff.ExponentialBackOff
}

// NewSyncListener joins groupID on the given brokers
func NewSyncListener(brokers []string, groupID string, cache Invalidator) (*SyncListener, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_6_0_0
	config.Consumer.Offsets.Initial = sarama.OffsetNewest
	config.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer group: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Str("group_id", groupID).
		Msg("Sync listener initialized")

	return newSyncListener(group, cache), nil
}

func newSyncListener(group sarama.ConsumerGroup, cache Invalidator) *SyncListener {
	retry := backoff.NewExponentialBackOff()
	retry.InitialInterval = time.Second
	retry.MaxInterval = time.Minute
	retry.Multiplier = 2

	return &SyncListener{group: group, cache: cache, retry: retry}
}

// Run consumes until ctx is cancelled or the group is closed. A failed session
// is retried after an exponential delay.
func (l *SyncListener) Run(ctx context.Context) {
	go func() {
		for err := range l.group.Errors() {
			logger.Logger.Error().Err(err).Msg("Sync listener error")
		}
	}()

	for {
		err := l.group.Consume(ctx, []string{TopicSyncCompleted}, l)
		switch {
		case ctx.Err() != nil, errors.Is(err, sarama.ErrClosedConsumerGroup):
			logger.Logger.Info().Msg("Sync listener stopped")
			return
		case err == nil:
			// rebalance
			l.retry.Reset()
			continue
		}

		delay := l.retry.NextBackOff()
		logger.Logger.Error().Err(err).Dur("retry_in", delay).Msg("Sync listener session failed")
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

// Close leaves the consumer group
func (l *SyncListener) Close() error {
	return l.group.Close()
}

func (l *SyncListener) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (l *SyncListener) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (l *SyncListener) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		l.handle(session.Context(), message)
		session.MarkMessage(message, "")
	}
	return nil
}

// handle invalidates the cache for a sync.completed event that saved articles.
// Undecodable messages and other event types are skipped.
func (l *SyncListener) handle(ctx context.Context, message *sarama.ConsumerMessage) {
	carrier := propagation.MapCarrier{}
	for _, header := range message.Headers {
		carrier[string(header.Key)] = string(header.Value)
	}
	ctx = otel.GetTextMapPropagator().Extract(ctx, carrier)

	ctx, span := otel.Tracer("kafka-consumer").Start(ctx, "kafka.consume.sync_completed",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.source", message.Topic),
			attribute.Int64("messaging.kafka.offset", message.Offset),
		),
	)
	defer span.End()

	var event SyncCompletedEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "undecodable event")
		logger.Warn(ctx).Err(err).Int64("offset", message.Offset).Msg("Skipping undecodable sync event")
		return
	}
	if event.EventType != EventTypeSyncCompleted {
		logger.Warn(ctx).Str("event_type", event.EventType).Msg("Skipping unexpected event type")
		return
	}

	span.SetAttributes(
		attribute.String("event.id", event.EventID),
		attribute.Int("sync.saved", event.Saved),
	)
	if event.Saved == 0 {
		return
	}

	if err := l.cache.Invalidate(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalidate failed")
		logger.Error(ctx).Err(err).Str("event_id", event.EventID).Msg("Failed to invalidate report cache")
		return
	}
	logger.Info(ctx).
		Str("event_id", event.EventID).
		Int("saved", event.Saved).
		Msg("Report cache invalidated by sync event")
}
