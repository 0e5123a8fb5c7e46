package infrastructure

import (
	"context"
	"strconv"
	"time"

	"github.com/motorsmith/work-order-system/shared/events"
	"github.com/motorsmith/work-order-system/shared/faults"
	"github.com/motorsmith/work-order-system/shared/models"
	"github.com/motorsmith/work-order-system/shared/saga"
)

// DefaultPublishTimeout bounds every broker publish so a slow broker cannot
// hold a consumer worker indefinitely.
const DefaultPublishTimeout = 8 * time.Second

// PaymentRequestPublisher implements PaymentRequester on top of the payment
// exchange.
type PaymentRequestPublisher struct {
	publisher events.Publisher
	timeout   time.Duration
}

// NewPaymentRequestPublisher creates a new PaymentRequestPublisher
func NewPaymentRequestPublisher(publisher events.Publisher, timeout time.Duration) *PaymentRequestPublisher {
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	return &PaymentRequestPublisher{
		publisher: publisher,
		timeout:   timeout,
	}
}

// RequestPayment publishes a charge request, bounded by the publish timeout.
func (p *PaymentRequestPublisher) RequestPayment(ctx context.Context, payload saga.PaymentRequestPayload) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	event := events.NewEvent(
		models.ID(strconv.FormatInt(payload.WorkOrderID, 10)),
		events.PaymentRequestedTopic,
		payload,
	)

	if err := p.publisher.Publish(ctx, event); err != nil {
		return faults.Transport("publish payment request", err)
	}

	return nil
}
