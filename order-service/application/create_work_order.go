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

// CreateWorkOrderCommand represents the command to open a work order
type CreateWorkOrderCommand struct {
	CustomerID  int64                      `json:"customerId"`
	VehicleID   int64                      `json:"vehicleId"`
	Description string                     `json:"description"`
	Items       []CreateWorkOrderItemInput `json:"items"`
}

// CreateWorkOrderItemInput is one requested budget line
type CreateWorkOrderItemInput struct {
	PartID   int64 `json:"partId"`
	Quantity int   `json:"quantity"`
}

// CreateWorkOrderResponse represents the response after opening a work order
type CreateWorkOrderResponse struct {
	WorkOrderID int64  `json:"workOrderId"`
	Protocol    string `json:"protocol"`
	Status      string `json:"status"`
	TotalAmount int64  `json:"totalAmount"`
	Currency    string `json:"currency"`
}

// CreateWorkOrder use case. Opening a work order starts a new saga run.
type CreateWorkOrder struct {
	workOrderRepository domain.WorkOrderRepository
	customerClient      domain.CustomerClient
	catalogClient       domain.CatalogClient
	eventPublisher      events.Publisher
	publishTimeout      time.Duration
	logger              *slog.Logger
}

// NewCreateWorkOrder creates a new CreateWorkOrder use case
func NewCreateWorkOrder(
	workOrderRepository domain.WorkOrderRepository,
	customerClient domain.CustomerClient,
	catalogClient domain.CatalogClient,
	eventPublisher events.Publisher,
	publishTimeout time.Duration,
	logger *slog.Logger,
) *CreateWorkOrder {
	return &CreateWorkOrder{
		workOrderRepository: workOrderRepository,
		customerClient:      customerClient,
		catalogClient:       catalogClient,
		eventPublisher:      eventPublisher,
		publishTimeout:      publishTimeout,
		logger:              logger,
	}
}

// Execute opens the work order and publishes the saga's first event
func (uc *CreateWorkOrder) Execute(ctx context.Context, cmd *CreateWorkOrderCommand) (*CreateWorkOrderResponse, error) {
	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	if _, err := uc.customerClient.GetCustomer(ctx, cmd.CustomerID); err != nil {
		return nil, errors.Wrap(err, "failed to verify customer")
	}

	items, err := uc.resolveItems(ctx, cmd.Items)
	if err != nil {
		return nil, err
	}

	wo, err := domain.CreateWorkOrder(cmd.CustomerID, cmd.VehicleID, cmd.Description, items)
	if err != nil {
		return nil, faults.Validationf("%v", err)
	}

	// The repository assigns the protocol from the generated id inside the
	// creation transaction.
	if err := uc.workOrderRepository.Create(ctx, wo); err != nil {
		return nil, errors.Wrap(err, "failed to save work order")
	}

	if err := uc.publishCreated(ctx, wo); err != nil {
		return nil, err
	}

	uc.logger.InfoContext(ctx, "work order created",
		slog.Int64("work_order_id", wo.ID),
		slog.String("protocol", wo.Protocol),
	)

	return &CreateWorkOrderResponse{
		WorkOrderID: wo.ID,
		Protocol:    wo.Protocol,
		Status:      wo.Status.String(),
		TotalAmount: wo.TotalAmount.Amount,
		Currency:    wo.TotalAmount.Currency,
	}, nil
}

// resolveItems prices the requested lines from the catalog and checks stock
func (uc *CreateWorkOrder) resolveItems(ctx context.Context, inputs []CreateWorkOrderItemInput) ([]domain.WorkOrderItem, error) {
	items := make([]domain.WorkOrderItem, 0, len(inputs))

	for _, input := range inputs {
		part, err := uc.catalogClient.GetPart(ctx, input.PartID)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to resolve part %d", input.PartID)
		}

		if part.Stock < input.Quantity {
			return nil, faults.Validationf(
				"insufficient stock for part %d: requested %d, available %d",
				input.PartID, input.Quantity, part.Stock)
		}

		items = append(items, domain.WorkOrderItem{
			PartID:      part.ID,
			Description: part.Name,
			Quantity:    input.Quantity,
			UnitPrice:   part.UnitPrice,
		})
	}

	return items, nil
}

// publishCreated emits the saga's first event, bounded by the publish timeout
func (uc *CreateWorkOrder) publishCreated(ctx context.Context, wo *domain.WorkOrder) error {
	sagaID := models.GenerateUUID().String()

	payload := saga.WorkOrderCreatedPayload{
		Context: saga.Context{
			SagaID:      sagaID,
			WorkOrderID: saga.FlexInt64(wo.ID),
			Step:        saga.StepCreate,
			Timestamp:   time.Now(),
		},
		CustomerID:  saga.FlexInt64(wo.CustomerID),
		VehicleID:   saga.FlexInt64(wo.VehicleID),
		Protocol:    wo.Protocol,
		TotalAmount: saga.FlexInt64(wo.TotalAmount.Amount),
	}

	event := events.NewEvent(
		models.ID(strconv.FormatInt(wo.ID, 10)),
		events.WorkOrderCreatedTopic,
		payload,
	).WithCorrelationID(models.ID(sagaID))

	publishCtx, cancel := context.WithTimeout(ctx, uc.publishTimeout)
	defer cancel()

	if err := uc.eventPublisher.Publish(publishCtx, event); err != nil {
		return faults.Transport("publish work order created", err)
	}

	return nil
}

// validateCommand validates the create work order command
func (uc *CreateWorkOrder) validateCommand(cmd *CreateWorkOrderCommand) error {
	if cmd.CustomerID <= 0 {
		return faults.Validationf("customer id is required")
	}

	if cmd.VehicleID <= 0 {
		return faults.Validationf("vehicle id is required")
	}

	if len(cmd.Items) == 0 {
		return faults.Validationf("at least one item is required")
	}

	for _, item := range cmd.Items {
		if item.PartID <= 0 {
			return faults.Validationf("part id is required")
		}
		if item.Quantity <= 0 {
			return faults.Validationf("item quantity must be positive")
		}
	}

	return nil
}
