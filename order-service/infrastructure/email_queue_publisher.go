package infrastructure

import (
	"context"
	"time"

	"github.com/motorsmith/work-order-system/shared/events"
	"github.com/motorsmith/work-order-system/shared/faults"
	"github.com/motorsmith/work-order-system/shared/models"
	"github.com/motorsmith/work-order-system/shared/saga"
)

// EmailQueuePublisher implements EmailQueue on top of the email exchange.
type EmailQueuePublisher struct {
	publisher events.Publisher
	timeout   time.Duration
}

// NewEmailQueuePublisher creates a new EmailQueuePublisher
func NewEmailQueuePublisher(publisher events.Publisher, timeout time.Duration) *EmailQueuePublisher {
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	return &EmailQueuePublisher{
		publisher: publisher,
		timeout:   timeout,
	}
}

// Enqueue publishes a notification email, bounded by the publish timeout.
func (p *EmailQueuePublisher) Enqueue(ctx context.Context, payload saga.EmailPayload) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	event := events.NewEvent(models.GenerateUUID(), events.EmailSendTopic, payload)

	if err := p.publisher.Publish(ctx, event); err != nil {
		return faults.Transport("enqueue email", err)
	}

	return nil
}
