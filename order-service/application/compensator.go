package application

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/motorsmith/work-order-system/order-service/domain"
	"github.com/motorsmith/work-order-system/shared/saga"
)

// Compensator rolls a work order back to the state preceding a failed saga
// step. It runs inline in the consumer that detected the failure, writes one
// history row, and emits no further saga events.
type Compensator struct {
	workOrderRepository domain.WorkOrderRepository
	logger              *slog.Logger
}

// NewCompensator creates a new Compensator
func NewCompensator(workOrderRepository domain.WorkOrderRepository, logger *slog.Logger) *Compensator {
	return &Compensator{
		workOrderRepository: workOrderRepository,
		logger:              logger,
	}
}

// Compensate rolls the work order back. Unrecognized steps reject the order.
// A missing work order is a no-op: there is nothing left to roll back, and
// retrying the rollback would loop.
func (c *Compensator) Compensate(ctx context.Context, workOrderID int64, step saga.Step, reason string) error {
	wo, err := c.workOrderRepository.FindByID(ctx, workOrderID)
	if err != nil {
		return errors.Wrap(err, "failed to find work order")
	}
	if wo == nil {
		c.logger.WarnContext(ctx, "compensation for missing work order skipped",
			slog.Int64("work_order_id", workOrderID),
			slog.String("step", step.String()),
			slog.String("reason", reason),
		)
		return nil
	}

	previous, target := wo.ApplyCompensation(step)

	// The rollback is unconditional: compensation must land even when the
	// status moved since the failing step read it.
	if err := c.workOrderRepository.UpdateStatus(ctx, wo.ID, target, nil, nil); err != nil {
		return errors.Wrap(err, "failed to roll back status")
	}

	log := domain.NewStatusLog(wo.ID, previous, target, step, reason, true)
	if err := c.workOrderRepository.AppendStatusLog(ctx, log); err != nil {
		return errors.Wrap(err, "failed to record compensation")
	}

	c.logger.WarnContext(ctx, "work order compensated",
		slog.Int64("work_order_id", wo.ID),
		slog.String("step", step.String()),
		slog.String("from", previous.String()),
		slog.String("to", target.String()),
		slog.String("reason", reason),
	)

	return nil
}
