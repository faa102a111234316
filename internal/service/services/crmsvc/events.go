package crmsvc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/corray333/backend-labs/crm/internal/service/models/outbox"
	"github.com/google/uuid"
)

// Routing keys of the published domain events.
const (
	RoutingKeyCustomerCreated = "crm.customer.created"
	RoutingKeyProductCreated  = "crm.product.created"
	RoutingKeyOrderCreated    = "crm.order.created"
)

const defaultMaxRetries = 5

// recordEvent writes payload to the outbox of the current unit of work.
// It does nothing when events are disabled.
func (s *CRMService) recordEvent(ctx context.Context, work unitOfWork, routingKey string, payload any) error {
	if !s.eventsEnabled {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", routingKey, err)
	}

	now := time.Now().UTC()
	msg := outbox.OutboxMessage{
		MessageID:   uuid.NewString(),
		Exchange:    s.exchange,
		RoutingKey:  routingKey,
		Payload:     body,
		ContentType: "application/json",
		MaxRetries:  defaultMaxRetries,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	}

	if err := work.OutboxRepository().Insert(ctx, msg); err != nil {
		return fmt.Errorf("failed to record %s event: %w", routingKey, err)
	}

	return nil
}
