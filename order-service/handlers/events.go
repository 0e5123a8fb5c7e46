package handlers

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/motorsmith/work-order-system/order-service/application"
	"github.com/motorsmith/work-order-system/shared/events"
	"github.com/motorsmith/work-order-system/shared/saga"
)

// Handler keys referenced by queue bindings in the service config. Every
// consumed queue names one of these; unknown keys fail dependency wiring.
const (
	HandlerWorkOrderCreated = "work_order_created"
	HandlerBudgetGenerated  = "budget_generated"
	HandlerPaymentApproved  = "payment_approved"
	HandlerPaymentProcessed = "payment_processed"
	HandlerProductionStatus = "production_status"
	HandlerCompensate       = "compensate"
)

type eventHandlerFunc func(ctx context.Context, event *events.Event) error

func (f eventHandlerFunc) Handle(ctx context.Context, event *events.Event) error {
	return f(ctx, event)
}

// SagaEventHandlers routes consumed saga messages to their use cases. A step
// that fails with a compensable error is rolled back inline before the error
// goes back to the broker; every other failure goes back as is.
type SagaEventHandlers struct {
	processWorkOrderCreated *application.ProcessWorkOrderCreated
	processBudgetGenerated  *application.ProcessBudgetGenerated
	processPaymentApproved  *application.ProcessPaymentApproved
	processPaymentProcessed *application.ProcessPaymentProcessed
	processProductionStatus *application.ProcessProductionStatus
	compensateWorkOrder     *application.CompensateWorkOrder
	compensator             *application.Compensator
	logger                  *slog.Logger
}

// NewSagaEventHandlers creates new saga event handlers
func NewSagaEventHandlers(
	processWorkOrderCreated *application.ProcessWorkOrderCreated,
	processBudgetGenerated *application.ProcessBudgetGenerated,
	processPaymentApproved *application.ProcessPaymentApproved,
	processPaymentProcessed *application.ProcessPaymentProcessed,
	processProductionStatus *application.ProcessProductionStatus,
	compensateWorkOrder *application.CompensateWorkOrder,
	compensator *application.Compensator,
	logger *slog.Logger,
) *SagaEventHandlers {
	return &SagaEventHandlers{
		processWorkOrderCreated: processWorkOrderCreated,
		processBudgetGenerated:  processBudgetGenerated,
		processPaymentApproved:  processPaymentApproved,
		processPaymentProcessed: processPaymentProcessed,
		processProductionStatus: processProductionStatus,
		compensateWorkOrder:     compensateWorkOrder,
		compensator:             compensator,
		logger:                  logger,
	}
}

// HandlerFor resolves a queue binding's handler key to its event handler.
func (h *SagaEventHandlers) HandlerFor(key string) (events.EventHandler, error) {
	switch key {
	case HandlerWorkOrderCreated:
		return eventHandlerFunc(h.HandleWorkOrderCreated), nil
	case HandlerBudgetGenerated:
		return eventHandlerFunc(h.HandleBudgetGenerated), nil
	case HandlerPaymentApproved:
		return eventHandlerFunc(h.HandlePaymentApproved), nil
	case HandlerPaymentProcessed:
		return eventHandlerFunc(h.HandlePaymentProcessed), nil
	case HandlerProductionStatus:
		return eventHandlerFunc(h.HandleProductionStatus), nil
	case HandlerCompensate:
		return eventHandlerFunc(h.HandleCompensate), nil
	default:
		return nil, errors.Errorf("unknown event handler key %q", key)
	}
}

// HandleWorkOrderCreated handles the saga's create step
func (h *SagaEventHandlers) HandleWorkOrderCreated(ctx context.Context, event *events.Event) error {
	payload, err := saga.ParseWorkOrderCreated(event)
	if err != nil {
		return err
	}

	cmd := &application.ProcessWorkOrderCreatedCommand{
		SagaID:      payload.SagaID,
		WorkOrderID: payload.WorkOrderID.Int64(),
		TotalAmount: payload.TotalAmount.Int64(),
	}

	return h.finishStep(ctx, h.processWorkOrderCreated.Execute(ctx, cmd))
}

// HandleBudgetGenerated handles the saga's budget step
func (h *SagaEventHandlers) HandleBudgetGenerated(ctx context.Context, event *events.Event) error {
	payload, err := saga.ParseBudgetGenerated(event)
	if err != nil {
		return err
	}

	cmd := &application.ProcessBudgetGeneratedCommand{
		SagaID:      payload.SagaID,
		WorkOrderID: payload.WorkOrderID.Int64(),
		TotalAmount: payload.TotalAmount.Int64(),
	}

	return h.finishStep(ctx, h.processBudgetGenerated.Execute(ctx, cmd))
}

// HandlePaymentApproved handles approval callbacks from the payment service
func (h *SagaEventHandlers) HandlePaymentApproved(ctx context.Context, event *events.Event) error {
	payload, err := saga.ParsePaymentApproved(event)
	if err != nil {
		return err
	}

	cmd := &application.ProcessPaymentApprovedCommand{
		SagaID:      event.CorrelationID.String(),
		WorkOrderID: payload.WorkOrderID.Int64(),
		PaymentID:   payload.PaymentID,
	}

	return h.finishStep(ctx, h.processPaymentApproved.Execute(ctx, cmd))
}

// HandlePaymentProcessed handles preference-created callbacks from the
// payment service
func (h *SagaEventHandlers) HandlePaymentProcessed(ctx context.Context, event *events.Event) error {
	payload, err := saga.ParsePaymentProcessed(event)
	if err != nil {
		return err
	}

	cmd := &application.ProcessPaymentProcessedCommand{
		SagaID:      event.CorrelationID.String(),
		WorkOrderID: payload.WorkOrderID.Int64(),
		PaymentID:   payload.PaymentID,
		InitPoint:   payload.InitPoint,
		PayerEmail:  payload.PayerEmail,
		Error:       payload.Error,
	}

	return h.finishStep(ctx, h.processPaymentProcessed.Execute(ctx, cmd))
}

// HandleProductionStatus handles authoritative reports from the production
// service
func (h *SagaEventHandlers) HandleProductionStatus(ctx context.Context, event *events.Event) error {
	payload, err := saga.ParseProductionStatusUpdate(event)
	if err != nil {
		return err
	}

	cmd := &application.ProcessProductionStatusCommand{
		WorkOrderID: payload.WorkOrderID.Int64(),
		Status:      payload.Status,
		StartedAt:   payload.StartedAt,
		FinishedAt:  payload.FinishedAt,
	}

	return h.processProductionStatus.Execute(ctx, cmd)
}

// HandleCompensate handles rollback requests published by peer services
func (h *SagaEventHandlers) HandleCompensate(ctx context.Context, event *events.Event) error {
	payload, err := saga.ParseCompensate(event)
	if err != nil {
		return err
	}

	step := payload.FailedStep
	if step == "" {
		step = payload.Step
	}

	cmd := &application.CompensateWorkOrderCommand{
		SagaID:      payload.SagaID,
		WorkOrderID: payload.WorkOrderID.Int64(),
		Step:        step,
		Reason:      payload.Reason,
	}

	return h.compensateWorkOrder.Execute(ctx, cmd)
}

// finishStep rolls back compensable step failures inline, then returns the
// original error so the broker redelivers the message. A failed rollback goes
// back to the broker wrapped, so compensation itself is retried first.
func (h *SagaEventHandlers) finishStep(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	var stepErr *application.StepError
	if !errors.As(err, &stepErr) {
		return err
	}

	h.logger.ErrorContext(ctx, "saga step failed, compensating",
		slog.String("saga_id", stepErr.SagaID),
		slog.Int64("work_order_id", stepErr.WorkOrderID),
		slog.String("step", stepErr.Step.String()),
		slog.String("error", stepErr.Err.Error()),
	)

	if cerr := h.compensator.Compensate(ctx, stepErr.WorkOrderID, stepErr.Step, stepErr.Err.Error()); cerr != nil {
		return errors.Wrap(cerr, "compensation failed")
	}

	return err
}
