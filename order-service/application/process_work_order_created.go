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

// ProcessWorkOrderCreatedCommand represents the saga's first step
type ProcessWorkOrderCreatedCommand struct {
	SagaID      string `json:"sagaId"`
	WorkOrderID int64  `json:"workOrderId"`
	TotalAmount int64  `json:"totalAmount"`
}

// ProcessWorkOrderCreated advances a freshly opened work order into
// diagnosis and hands the saga off to the budget step.
type ProcessWorkOrderCreated struct {
	workOrderRepository domain.WorkOrderRepository
	sagaEventLog        domain.SagaEventLog
	customerClient      domain.CustomerClient
	emailQueue          domain.EmailQueue
	eventPublisher      events.Publisher
	publishTimeout      time.Duration
	logger              *slog.Logger
}

// NewProcessWorkOrderCreated creates a new ProcessWorkOrderCreated use case
func NewProcessWorkOrderCreated(
	workOrderRepository domain.WorkOrderRepository,
	sagaEventLog domain.SagaEventLog,
	customerClient domain.CustomerClient,
	emailQueue domain.EmailQueue,
	eventPublisher events.Publisher,
	publishTimeout time.Duration,
	logger *slog.Logger,
) *ProcessWorkOrderCreated {
	return &ProcessWorkOrderCreated{
		workOrderRepository: workOrderRepository,
		sagaEventLog:        sagaEventLog,
		customerClient:      customerClient,
		emailQueue:          emailQueue,
		eventPublisher:      eventPublisher,
		publishTimeout:      publishTimeout,
		logger:              logger,
	}
}

// Execute applies the create step
func (uc *ProcessWorkOrderCreated) Execute(ctx context.Context, cmd *ProcessWorkOrderCreatedCommand) (err error) {
	if cmd.SagaID == "" {
		return faults.Validationf("sagaId is required")
	}
	if cmd.WorkOrderID <= 0 {
		return faults.Validationf("workOrderId must be positive")
	}

	applied, err := uc.sagaEventLog.MarkProcessed(ctx, cmd.SagaID, saga.StepCreate)
	if err != nil {
		return errors.Wrap(err, "failed to check saga log")
	}
	if !applied {
		uc.logger.InfoContext(ctx, "duplicate create step dropped",
			slog.String("saga_id", cmd.SagaID),
			slog.Int64("work_order_id", cmd.WorkOrderID),
		)
		return nil
	}

	// The marker only survives a step whose effects landed; a failed step
	// releases it so the broker's redelivery can retry.
	defer func() {
		if err != nil {
			releaseStep(ctx, uc.sagaEventLog, uc.logger, cmd.SagaID, saga.StepCreate)
		}
	}()

	wo, err := uc.workOrderRepository.FindByID(ctx, cmd.WorkOrderID)
	if err != nil {
		return NewStepError(cmd.SagaID, cmd.WorkOrderID, saga.StepCreate,
			errors.Wrap(err, "failed to find work order"))
	}
	if wo == nil {
		return faults.NotFoundf("work order %d not found", cmd.WorkOrderID)
	}

	from, to, _ := domain.NextStatus(saga.StepCreate)
	if err := uc.workOrderRepository.UpdateStatusFrom(ctx, wo.ID, from, to); err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			return err
		}
		return NewStepError(cmd.SagaID, cmd.WorkOrderID, saga.StepCreate, err)
	}

	log := domain.NewStatusLog(wo.ID, from, to, saga.StepCreate, "", false)
	if err := uc.workOrderRepository.AppendStatusLog(ctx, log); err != nil {
		return NewStepError(cmd.SagaID, cmd.WorkOrderID, saga.StepCreate,
			errors.Wrap(err, "failed to record status change"))
	}

	if err := uc.publishBudgetGenerated(ctx, cmd, wo); err != nil {
		return NewStepError(cmd.SagaID, cmd.WorkOrderID, saga.StepCreate, err)
	}

	uc.notifyReceived(ctx, wo)

	return nil
}

// publishBudgetGenerated hands the saga off to the budget step, bounded by
// the publish timeout. The inbound event may recompute the total; the stored
// total is the fallback.
func (uc *ProcessWorkOrderCreated) publishBudgetGenerated(ctx context.Context, cmd *ProcessWorkOrderCreatedCommand, wo *domain.WorkOrder) error {
	amount := cmd.TotalAmount
	if amount <= 0 {
		amount = wo.TotalAmount.Amount
	}

	payload := saga.BudgetGeneratedPayload{
		Context: saga.Context{
			SagaID:      cmd.SagaID,
			WorkOrderID: saga.FlexInt64(cmd.WorkOrderID),
			Step:        saga.StepBudgetGenerated,
			Timestamp:   time.Now(),
		},
		TotalAmount: saga.FlexInt64(amount),
	}

	event := events.NewEvent(
		models.ID(strconv.FormatInt(cmd.WorkOrderID, 10)),
		events.WorkOrderBudgetGeneratedTopic,
		payload,
	).WithCorrelationID(models.ID(cmd.SagaID))

	publishCtx, cancel := context.WithTimeout(ctx, uc.publishTimeout)
	defer cancel()

	if err := uc.eventPublisher.Publish(publishCtx, event); err != nil {
		return faults.Transport("publish budget generated", err)
	}

	return nil
}

// notifyReceived is best effort: a failed notification never fails the step.
func (uc *ProcessWorkOrderCreated) notifyReceived(ctx context.Context, wo *domain.WorkOrder) {
	customer, err := uc.customerClient.GetCustomer(ctx, wo.CustomerID)
	if err != nil {
		uc.logger.WarnContext(ctx, "skipping received notification",
			slog.Int64("work_order_id", wo.ID),
			slog.String("error", err.Error()),
		)
		return
	}

	err = uc.emailQueue.Enqueue(ctx, saga.EmailPayload{
		Recipient: customer.Email,
		Name:      customer.Name,
		Subject:   fmt.Sprintf("Work order %s received", wo.Protocol),
		Type:      "work_order_received",
	})
	if err != nil {
		uc.logger.WarnContext(ctx, "failed to enqueue received notification",
			slog.Int64("work_order_id", wo.ID),
			slog.String("error", err.Error()),
		)
	}
}
