package application

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/motorsmith/work-order-system/order-service/domain"
	"github.com/motorsmith/work-order-system/shared/faults"
)

// StatusLogView is one status history entry of the read model
type StatusLogView struct {
	FromStatus   string    `json:"fromStatus"`
	ToStatus     string    `json:"toStatus"`
	Step         string    `json:"step,omitempty"`
	Reason       string    `json:"reason,omitempty"`
	Compensation bool      `json:"compensation"`
	CreatedAt    time.Time `json:"createdAt"`
}

// GetWorkOrderHistory use case
type GetWorkOrderHistory struct {
	workOrderRepository domain.WorkOrderRepository
}

// NewGetWorkOrderHistory creates a new GetWorkOrderHistory use case
func NewGetWorkOrderHistory(workOrderRepository domain.WorkOrderRepository) *GetWorkOrderHistory {
	return &GetWorkOrderHistory{workOrderRepository: workOrderRepository}
}

// Execute returns the status history of a work order, oldest first
func (uc *GetWorkOrderHistory) Execute(ctx context.Context, workOrderID int64) ([]StatusLogView, error) {
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

	logs, err := uc.workOrderRepository.StatusHistory(ctx, workOrderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load status history")
	}

	views := make([]StatusLogView, len(logs))
	for i, log := range logs {
		views[i] = StatusLogView{
			FromStatus:   log.FromStatus.String(),
			ToStatus:     log.ToStatus.String(),
			Step:         log.Step.String(),
			Reason:       log.Reason,
			Compensation: log.Compensation,
			CreatedAt:    log.CreatedAt,
		}
	}

	return views, nil
}
