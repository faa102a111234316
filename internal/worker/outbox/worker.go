package outbox

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/corray333/backend-labs/crm/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/backend-labs/crm/internal/service/models/outbox"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// publisher delivers a message to the broker.
type publisher interface {
	Publish(ctx context.Context, exchange, routingKey string, msg amqp.Publishing) error
}

// Worker publishes domain events recorded in the outbox table.
type Worker struct {
	outboxRepo   ioutboxrepo.IOutboxRepository
	publisher    publisher
	pollInterval time.Duration
	batchSize    int
	baseBackoff  time.Duration
	stopCh       chan struct{}
}

// NewWorker creates a new outbox worker.
func NewWorker(
	outboxRepo ioutboxrepo.IOutboxRepository,
	publisher publisher,
) *Worker {
	pollIntervalSeconds := viper.GetInt("rabbitmq.outbox.poll_interval_seconds")
	if pollIntervalSeconds == 0 {
		pollIntervalSeconds = 10
	}

	batchSize := viper.GetInt("rabbitmq.outbox.batch_size")
	if batchSize == 0 {
		batchSize = 100
	}

	retryIntervalSeconds := viper.GetInt("rabbitmq.outbox.retry_interval_seconds")
	if retryIntervalSeconds == 0 {
		retryIntervalSeconds = 30
	}

	return &Worker{
		outboxRepo:   outboxRepo,
		publisher:    publisher,
		pollInterval: time.Duration(pollIntervalSeconds) * time.Second,
		batchSize:    batchSize,
		baseBackoff:  time.Duration(retryIntervalSeconds) * time.Second,
		stopCh:       make(chan struct{}),
	}
}

// Start polls the outbox until ctx is done or Stop is called.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	slog.Info("Outbox worker started", "poll_interval", w.pollInterval, "batch_size", w.batchSize)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Outbox worker shutting down")

			return
		case <-w.stopCh:
			slog.Info("Outbox worker stopped")

			return
		case <-ticker.C:
			w.processMessages(ctx)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

// backoff returns the delay before attempt retryCount+1: base·2^retryCount.
func (w *Worker) backoff(retryCount int) time.Duration {
	return time.Duration(math.Pow(2, float64(retryCount))) * w.baseBackoff
}

// processMessages publishes one batch of due messages.
func (w *Worker) processMessages(ctx context.Context) {
	ctx, span := otel.Tracer("crm-outbox").Start(ctx, "outbox.processMessages")
	defer span.End()

	messages, err := w.outboxRepo.GetPendingMessages(ctx, w.batchSize)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load pending messages")
		slog.Error("Failed to get pending messages from outbox", "error", err)

		return
	}

	span.SetAttributes(attribute.Int("outbox.batch", len(messages)))
	if len(messages) == 0 {
		return
	}

	slog.Info("Processing outbox messages", "count", len(messages))

	for _, msg := range messages {
		w.publish(ctx, msg)
	}
}

func (w *Worker) publish(ctx context.Context, msg outbox.OutboxMessage) {
	err := w.publisher.Publish(ctx, msg.Exchange, msg.RoutingKey, amqp.Publishing{
		MessageId:    msg.MessageID,
		ContentType:  msg.ContentType,
		DeliveryMode: amqp.Persistent,
		Timestamp:    msg.CreatedAt,
		Body:         msg.Payload,
	})
	if err != nil {
		retryCount := msg.RetryCount + 1
		nextRetryAt := time.Now().Add(w.backoff(retryCount))

		slog.Warn("Failed to publish message from outbox, will retry",
			"outbox_id", msg.ID,
			"message_id", msg.MessageID,
			"retry_count", retryCount,
			"next_retry", nextRetryAt,
			"error", err,
		)

		if err := w.outboxRepo.UpdateRetry(ctx, msg.ID, retryCount, err.Error(), nextRetryAt); err != nil {
			slog.Error("Failed to update retry information", "outbox_id", msg.ID, "error", err)
		}

		return
	}

	if err := w.outboxRepo.Delete(ctx, msg.ID); err != nil {
		slog.Error("Failed to delete message from outbox after successful publish",
			"outbox_id", msg.ID,
			"error", err,
		)

		return
	}

	slog.Debug("Message published and removed from outbox", "outbox_id", msg.ID, "routing_key", msg.RoutingKey)
}
