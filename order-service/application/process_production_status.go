package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/motorsmith/work-order-system/order-service/domain"
	"github.com/motorsmith/work-order-system/shared/faults"
	"github.com/motorsmith/work-order-system/shared/saga"
)

// StepProduction tags history entries written from production reports.
const StepProduction = saga.Step("production")

// ProcessProductionStatusCommand represents a production status report
type ProcessProductionStatusCommand struct {
	WorkOrderID int64      `json:"workOrderId"`
	Status      string     `json:"status"`
	StartedAt   *time.Time `json:"startedAt"`
	FinishedAt  *time.Time `json:"finishedAt"`
}

// ProcessProductionStatus applies the production service's authoritative
// status report. The report overwrites whatever status the order holds.
type ProcessProductionStatus struct {
	workOrderRepository domain.WorkOrderRepository
	customerClient      domain.CustomerClient
	emailQueue          domain.EmailQueue
	logger              *slog.Logger
}

// NewProcessProductionStatus creates a new ProcessProductionStatus use case
func NewProcessProductionStatus(
	workOrderRepository domain.WorkOrderRepository,
	customerClient domain.CustomerClient,
	emailQueue domain.EmailQueue,
	logger *slog.Logger,
) *ProcessProductionStatus {
	return &ProcessProductionStatus{
		workOrderRepository: workOrderRepository,
		customerClient:      customerClient,
		emailQueue:          emailQueue,
		logger:              logger,
	}
}

// Execute applies the report
func (uc *ProcessProductionStatus) Execute(ctx context.Context, cmd *ProcessProductionStatusCommand) error {
	if cmd.WorkOrderID <= 0 {
		return faults.Validationf("workOrderId must be positive")
	}

	status, err := domain.ParseStatus(cmd.Status)
	if err != nil {
		return faults.Validationf("%v", err)
	}

	wo, err := uc.workOrderRepository.FindByID(ctx, cmd.WorkOrderID)
	if err != nil {
		return errors.Wrap(err, "failed to find work order")
	}
	if wo == nil {
		return faults.NotFoundf("work order %d not found", cmd.WorkOrderID)
	}

	previous := wo.ApplyProductionUpdate(status, cmd.StartedAt, cmd.FinishedAt)

	if err := uc.workOrderRepository.UpdateStatus(ctx, wo.ID, status, cmd.StartedAt, cmd.FinishedAt); err != nil {
		return errors.Wrap(err, "failed to update status")
	}

	if previous != status {
		log := domain.NewStatusLog(wo.ID, previous, status, StepProduction, "production report", false)
		if err := uc.workOrderRepository.AppendStatusLog(ctx, log); err != nil {
			return errors.Wrap(err, "failed to record status change")
		}
	}

	if status == domain.StatusFinished {
		uc.notifyFinished(ctx, wo)
	}

	return nil
}

// notifyFinished is best effort: a failed notification never fails the report.
func (uc *ProcessProductionStatus) notifyFinished(ctx context.Context, wo *domain.WorkOrder) {
	customer, err := uc.customerClient.GetCustomer(ctx, wo.CustomerID)
	if err != nil {
		uc.logger.WarnContext(ctx, "skipping finished notification",
			slog.Int64("work_order_id", wo.ID),
			slog.String("error", err.Error()),
		)
		return
	}

	err = uc.emailQueue.Enqueue(ctx, saga.EmailPayload{
		Recipient: customer.Email,
		Name:      customer.Name,
		Subject:   fmt.Sprintf("Work order %s is ready", wo.Protocol),
		Type:      "work_order_finished",
	})
	if err != nil {
		uc.logger.WarnContext(ctx, "failed to enqueue finished notification",
			slog.Int64("work_order_id", wo.ID),
			slog.String("error", err.Error()),
		)
	}
}
