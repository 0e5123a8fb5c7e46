package application

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/motorsmith/work-order-system/order-service/domain"
	"github.com/motorsmith/work-order-system/shared/events"
	"github.com/motorsmith/work-order-system/shared/faults"
	"github.com/motorsmith/work-order-system/shared/models"
	"github.com/motorsmith/work-order-system/shared/saga"
)

// ProcessPaymentApprovedCommand represents the approval step of the saga
type ProcessPaymentApprovedCommand struct {
	SagaID      string `json:"sagaId"`
	WorkOrderID int64  `json:"workOrderId"`
	PaymentID   string `json:"paymentId"`
}

// ProcessPaymentApproved moves an approved work order into progress and
// hands it to the production service.
type ProcessPaymentApproved struct {
	workOrderRepository domain.WorkOrderRepository
	sagaEventLog        domain.SagaEventLog
	eventPublisher      events.Publisher
	publishTimeout      time.Duration
	logger              *slog.Logger
}

// NewProcessPaymentApproved creates a new ProcessPaymentApproved use case
func NewProcessPaymentApproved(
	workOrderRepository domain.WorkOrderRepository,
	sagaEventLog domain.SagaEventLog,
	eventPublisher events.Publisher,
	publishTimeout time.Duration,
	logger *slog.Logger,
) *ProcessPaymentApproved {
	return &ProcessPaymentApproved{
		workOrderRepository: workOrderRepository,
		sagaEventLog:        sagaEventLog,
		eventPublisher:      eventPublisher,
		publishTimeout:      publishTimeout,
		logger:              logger,
	}
}

// Execute applies the approval step
func (uc *ProcessPaymentApproved) Execute(ctx context.Context, cmd *ProcessPaymentApprovedCommand) (err error) {
	if cmd.WorkOrderID <= 0 {
		return faults.Validationf("workOrderId must be positive")
	}

	// Payment callbacks do not always carry the saga id; fall back to a
	// per-order key so redeliveries still dedup.
	sagaID := cmd.SagaID
	if sagaID == "" {
		sagaID = fmt.Sprintf("work-order-%d", cmd.WorkOrderID)
	}

	applied, err := uc.sagaEventLog.MarkProcessed(ctx, sagaID, saga.StepAwaitingApproval)
	if err != nil {
		return errors.Wrap(err, "failed to check saga log")
	}
	if !applied {
		uc.logger.InfoContext(ctx, "duplicate approval step dropped",
			slog.String("saga_id", sagaID),
			slog.Int64("work_order_id", cmd.WorkOrderID),
		)
		return nil
	}

	// The marker only survives a step whose effects landed; a failed step
	// releases it so the broker's redelivery can retry.
	defer func() {
		if err != nil {
			releaseStep(ctx, uc.sagaEventLog, uc.logger, sagaID, saga.StepAwaitingApproval)
		}
	}()

	wo, err := uc.workOrderRepository.FindByID(ctx, cmd.WorkOrderID)
	if err != nil {
		return NewStepError(sagaID, cmd.WorkOrderID, saga.StepAwaitingApproval,
			errors.Wrap(err, "failed to find work order"))
	}
	if wo == nil {
		return faults.NotFoundf("work order %d not found", cmd.WorkOrderID)
	}

	from, to, _ := domain.NextStatus(saga.StepAwaitingApproval)
	if err := uc.workOrderRepository.UpdateStatusFrom(ctx, wo.ID, from, to); err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			return err
		}
		return NewStepError(sagaID, cmd.WorkOrderID, saga.StepAwaitingApproval, err)
	}

	log := domain.NewStatusLog(wo.ID, from, to, saga.StepAwaitingApproval, "", false)
	if err := uc.workOrderRepository.AppendStatusLog(ctx, log); err != nil {
		return NewStepError(sagaID, cmd.WorkOrderID, saga.StepAwaitingApproval,
			errors.Wrap(err, "failed to record status change"))
	}

	// A failed hand-off compensates as the production step: the order rolls
	// back to awaiting approval, not to diagnosis.
	if err := uc.sendToProduction(ctx, wo); err != nil {
		return NewStepError(sagaID, cmd.WorkOrderID, saga.StepSendToProduction, err)
	}

	return nil
}

// sendToProduction hands the order off, bounded by the publish timeout.
func (uc *ProcessPaymentApproved) sendToProduction(ctx context.Context, wo *domain.WorkOrder) error {
	payload := saga.SendToProductionPayload{
		WorkOrderID: wo.ID,
		CustomerID:  wo.CustomerID,
		VehicleID:   wo.VehicleID,
		Protocol:    wo.Protocol,
		TotalAmount: wo.TotalAmount.Amount,
	}

	event := events.NewEvent(
		models.ID(strconv.FormatInt(wo.ID, 10)),
		events.SendToProductionTopic,
		payload,
	)

	publishCtx, cancel := context.WithTimeout(ctx, uc.publishTimeout)
	defer cancel()

	if err := uc.eventPublisher.Publish(publishCtx, event); err != nil {
		return faults.Transport("publish send to production", err)
	}

	return nil
}
