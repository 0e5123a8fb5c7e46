package application

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/motorsmith/work-order-system/order-service/domain"
	"github.com/motorsmith/work-order-system/shared/faults"
)

// WorkOrderView is the read model returned by the query use cases
type WorkOrderView struct {
	ID          int64               `json:"id"`
	CustomerID  int64               `json:"customerId"`
	VehicleID   int64               `json:"vehicleId"`
	Protocol    string              `json:"protocol"`
	Description string              `json:"description"`
	Status      string              `json:"status"`
	TotalAmount int64               `json:"totalAmount"`
	Currency    string              `json:"currency"`
	InitPoint   string              `json:"initPoint,omitempty"`
	Items       []WorkOrderItemView `json:"items"`
	StartedAt   *time.Time          `json:"startedAt,omitempty"`
	FinishedAt  *time.Time          `json:"finishedAt,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// WorkOrderItemView is one budget line of the read model
type WorkOrderItemView struct {
	PartID      int64  `json:"partId"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
	Subtotal    int64  `json:"subtotal"`
}

// GetWorkOrder use case
type GetWorkOrder struct {
	workOrderRepository domain.WorkOrderRepository
}

// NewGetWorkOrder creates a new GetWorkOrder use case
func NewGetWorkOrder(workOrderRepository domain.WorkOrderRepository) *GetWorkOrder {
	return &GetWorkOrder{workOrderRepository: workOrderRepository}
}

// Execute returns the work order read model
func (uc *GetWorkOrder) Execute(ctx context.Context, workOrderID int64) (*WorkOrderView, error) {
	if workOrderID <= 0 {
		return nil, faults.Validationf("work order id must be positive")
	}

	wo, err := uc.workOrderRepository.FindByID(ctx, workOrderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find work order")
	}
	if wo == nil {
		return nil, faults.NotFoundf("work order %d not found", workOrderID)
	}

	return toWorkOrderView(wo), nil
}

func toWorkOrderView(wo *domain.WorkOrder) *WorkOrderView {
	items := make([]WorkOrderItemView, len(wo.Items))
	for i, item := range wo.Items {
		items[i] = WorkOrderItemView{
			PartID:      item.PartID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.Amount,
			Subtotal:    item.Subtotal().Amount,
		}
	}

	return &WorkOrderView{
		ID:          wo.ID,
		CustomerID:  wo.CustomerID,
		VehicleID:   wo.VehicleID,
		Protocol:    wo.Protocol,
		Description: wo.Description,
		Status:      wo.Status.String(),
		TotalAmount: wo.TotalAmount.Amount,
		Currency:    wo.TotalAmount.Currency,
		InitPoint:   wo.InitPoint,
		Items:       items,
		StartedAt:   wo.StartedAt,
		FinishedAt:  wo.FinishedAt,
		CreatedAt:   wo.Timestamps.CreatedAt,
		UpdatedAt:   wo.Timestamps.UpdatedAt,
	}
}
