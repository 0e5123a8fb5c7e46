package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/motorsmith/work-order-system/order-service/domain"
	"github.com/motorsmith/work-order-system/shared/faults"
	"github.com/motorsmith/work-order-system/shared/saga"
)

// ProcessPaymentProcessedCommand represents the payment provider's callback
type ProcessPaymentProcessedCommand struct {
	SagaID      string `json:"sagaId"`
	WorkOrderID int64  `json:"workOrderId"`
	PaymentID   string `json:"paymentId"`
	InitPoint   string `json:"init_point"`
	PayerEmail  string `json:"payerEmail"`
	Error       string `json:"error"`
}

// ProcessPaymentProcessed stores the checkout link and mails it to the payer.
// The callback is informational: provider errors and callbacks for orders
// that no longer exist are logged no-ops, never failures.
type ProcessPaymentProcessed struct {
	workOrderRepository domain.WorkOrderRepository
	emailQueue          domain.EmailQueue
	logger              *slog.Logger
}

// NewProcessPaymentProcessed creates a new ProcessPaymentProcessed use case
func NewProcessPaymentProcessed(
	workOrderRepository domain.WorkOrderRepository,
	emailQueue domain.EmailQueue,
	logger *slog.Logger,
) *ProcessPaymentProcessed {
	return &ProcessPaymentProcessed{
		workOrderRepository: workOrderRepository,
		emailQueue:          emailQueue,
		logger:              logger,
	}
}

// Execute applies the payment callback
func (uc *ProcessPaymentProcessed) Execute(ctx context.Context, cmd *ProcessPaymentProcessedCommand) error {
	if cmd.WorkOrderID <= 0 {
		return faults.Validationf("workOrderId must be positive")
	}

	if cmd.Error != "" {
		uc.logger.WarnContext(ctx, "payment provider reported an error",
			slog.Int64("work_order_id", cmd.WorkOrderID),
			slog.String("payment_id", cmd.PaymentID),
			slog.String("error", cmd.Error),
		)
		return nil
	}

	if cmd.InitPoint == "" {
		return faults.Validationf("init_point is required on successful callbacks")
	}

	wo, err := uc.workOrderRepository.FindByID(ctx, cmd.WorkOrderID)
	if err != nil {
		return errors.Wrap(err, "failed to find work order")
	}
	if wo == nil {
		// Payment callbacks can outlive the order they refer to.
		uc.logger.InfoContext(ctx, "payment callback for missing work order dropped",
			slog.Int64("work_order_id", cmd.WorkOrderID),
			slog.String("payment_id", cmd.PaymentID),
		)
		return nil
	}

	// Idempotent: a redelivered callback rewrites the same link.
	if err := uc.workOrderRepository.SetPaymentLink(ctx, wo.ID, cmd.InitPoint, cmd.PaymentID); err != nil {
		return errors.Wrap(err, "failed to store payment link")
	}

	uc.notifyPayer(ctx, wo, cmd)

	uc.logger.InfoContext(ctx, "payment link stored",
		slog.Int64("work_order_id", wo.ID),
		slog.String("payment_id", cmd.PaymentID),
	)

	return nil
}

// notifyPayer mails the checkout link, only when the callback names a payer.
// Best effort: a failed enqueue never fails the callback.
func (uc *ProcessPaymentProcessed) notifyPayer(ctx context.Context, wo *domain.WorkOrder, cmd *ProcessPaymentProcessedCommand) {
	if cmd.PayerEmail == "" {
		uc.logger.InfoContext(ctx, "no payer email on callback, skipping notification",
			slog.Int64("work_order_id", wo.ID),
		)
		return
	}

	err := uc.emailQueue.Enqueue(ctx, saga.EmailPayload{
		Recipient: cmd.PayerEmail,
		Subject:   fmt.Sprintf("Payment link for work order %s", wo.Protocol),
		Body:      cmd.InitPoint,
		Type:      "payment_link",
	})
	if err != nil {
		uc.logger.WarnContext(ctx, "failed to enqueue payment link email",
			slog.Int64("work_order_id", wo.ID),
			slog.String("error", err.Error()),
		)
	}
}
