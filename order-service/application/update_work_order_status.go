package application

import (
	"context"
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

// StepManual tags history entries written by operator status overrides.
const StepManual = saga.Step("manual")

// UpdateWorkOrderStatusCommand represents an operator status override
type UpdateWorkOrderStatusCommand struct {
	WorkOrderID int64  `json:"workOrderId"`
	Status      string `json:"status"`
	Reason      string `json:"reason"`
}

// UpdateWorkOrderStatus use case. Operator overrides bypass the saga's
// forward table but are recorded in the history like any other change.
// Moving an order into progress by hand still kicks the production service,
// best effort.
type UpdateWorkOrderStatus struct {
	workOrderRepository domain.WorkOrderRepository
	eventPublisher      events.Publisher
	publishTimeout      time.Duration
	logger              *slog.Logger
}

// NewUpdateWorkOrderStatus creates a new UpdateWorkOrderStatus use case
func NewUpdateWorkOrderStatus(
	workOrderRepository domain.WorkOrderRepository,
	eventPublisher events.Publisher,
	publishTimeout time.Duration,
	logger *slog.Logger,
) *UpdateWorkOrderStatus {
	return &UpdateWorkOrderStatus{
		workOrderRepository: workOrderRepository,
		eventPublisher:      eventPublisher,
		publishTimeout:      publishTimeout,
		logger:              logger,
	}
}

// Execute applies the override
func (uc *UpdateWorkOrderStatus) Execute(ctx context.Context, cmd *UpdateWorkOrderStatusCommand) error {
	if cmd.WorkOrderID <= 0 {
		return faults.Validationf("work order id must be positive")
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

	previous := wo.Status
	if previous == status {
		return nil
	}

	if err := uc.workOrderRepository.UpdateStatus(ctx, wo.ID, status, nil, nil); err != nil {
		return errors.Wrap(err, "failed to update status")
	}

	log := domain.NewStatusLog(wo.ID, previous, status, StepManual, cmd.Reason, false)
	if err := uc.workOrderRepository.AppendStatusLog(ctx, log); err != nil {
		return errors.Wrap(err, "failed to record status change")
	}

	if status == domain.StatusInProgress {
		uc.sendToProduction(ctx, wo)
	}

	uc.logger.InfoContext(ctx, "work order status overridden",
		slog.Int64("work_order_id", wo.ID),
		slog.String("from", previous.String()),
		slog.String("to", status.String()),
	)

	return nil
}

// sendToProduction is best effort here: the override already landed, and the
// hand-off can be replayed by patching the status again.
func (uc *UpdateWorkOrderStatus) sendToProduction(ctx context.Context, wo *domain.WorkOrder) {
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
		uc.logger.WarnContext(ctx, "failed to hand off to production",
			slog.Int64("work_order_id", wo.ID),
			slog.String("error", err.Error()),
		)
	}
}
