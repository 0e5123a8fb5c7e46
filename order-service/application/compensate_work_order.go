package application

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/motorsmith/work-order-system/shared/faults"
	"github.com/motorsmith/work-order-system/shared/saga"

	"github.com/motorsmith/work-order-system/order-service/domain"
)

// CompensateWorkOrderCommand represents an inbound compensation request
type CompensateWorkOrderCommand struct {
	SagaID      string    `json:"sagaId"`
	WorkOrderID int64     `json:"workOrderId"`
	Step        saga.Step `json:"step"`
	Reason      string    `json:"reason"`
}

// CompensateWorkOrder handles compensation requests published by peer
// services when their part of a step fails.
type CompensateWorkOrder struct {
	compensator  *Compensator
	sagaEventLog domain.SagaEventLog
	logger       *slog.Logger
}

// NewCompensateWorkOrder creates a new CompensateWorkOrder use case
func NewCompensateWorkOrder(
	compensator *Compensator,
	sagaEventLog domain.SagaEventLog,
	logger *slog.Logger,
) *CompensateWorkOrder {
	return &CompensateWorkOrder{
		compensator:  compensator,
		sagaEventLog: sagaEventLog,
		logger:       logger,
	}
}

// Execute rolls the work order back for the failed step
func (uc *CompensateWorkOrder) Execute(ctx context.Context, cmd *CompensateWorkOrderCommand) error {
	if cmd.WorkOrderID <= 0 {
		return faults.Validationf("workOrderId must be positive")
	}
	if cmd.Step == "" {
		return faults.Validationf("step is required")
	}

	// Redelivered compensations would double up the history. The saga log
	// keys the rollback separately from the forward step.
	dedupStep := saga.Step("compensate." + cmd.Step.String())
	if cmd.SagaID != "" {
		applied, err := uc.sagaEventLog.MarkProcessed(ctx, cmd.SagaID, dedupStep)
		if err != nil {
			return errors.Wrap(err, "failed to check saga log")
		}
		if !applied {
			uc.logger.InfoContext(ctx, "duplicate compensation dropped",
				slog.String("saga_id", cmd.SagaID),
				slog.Int64("work_order_id", cmd.WorkOrderID),
				slog.String("step", cmd.Step.String()),
			)
			return nil
		}
	}

	reason := cmd.Reason
	if reason == "" {
		reason = "compensation requested"
	}

	if err := uc.compensator.Compensate(ctx, cmd.WorkOrderID, cmd.Step, reason); err != nil {
		// A rollback that did not land releases its marker so the redelivery
		// retries it instead of dropping it as a duplicate.
		if cmd.SagaID != "" {
			releaseStep(ctx, uc.sagaEventLog, uc.logger, cmd.SagaID, dedupStep)
		}
		return err
	}

	return nil
}
