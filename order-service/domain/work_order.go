package domain

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/motorsmith/work-order-system/shared/models"
	"github.com/motorsmith/work-order-system/shared/saga"
)

// DefaultCurrency is the currency every budget is charged in.
const DefaultCurrency = "BRL"

// WorkOrder aggregate root. The ID is assigned by the database on insert.
type WorkOrder struct {
	ID          int64
	CustomerID  int64
	VehicleID   int64
	Protocol    string
	Description string
	Status      Status
	TotalAmount models.Money
	Items       []WorkOrderItem

	// Payment checkout link, set once the payment provider accepts the
	// preference request.
	InitPoint           string
	PaymentPreferenceID string

	// Production timeline, reported by the production service.
	StartedAt  *time.Time
	FinishedAt *time.Time

	Timestamps models.Timestamps
}

// WorkOrderItem is a budget line of a work order.
type WorkOrderItem struct {
	ID          int64
	WorkOrderID int64
	PartID      int64
	Description string
	Quantity    int
	UnitPrice   models.Money
}

// Subtotal returns quantity times unit price.
func (i WorkOrderItem) Subtotal() models.Money {
	return models.NewMoney(int64(i.Quantity)*i.UnitPrice.Amount, i.UnitPrice.Currency)
}

// StatusLog is one row of a work order's status history. Compensation rolls
// back in a single entry.
type StatusLog struct {
	ID           models.ID
	WorkOrderID  int64
	FromStatus   Status
	ToStatus     Status
	Step         saga.Step
	Reason       string
	Compensation bool
	CreatedAt    time.Time
}

// NewStatusLog builds a history entry for a status change.
func NewStatusLog(workOrderID int64, from, to Status, step saga.Step, reason string, compensation bool) *StatusLog {
	return &StatusLog{
		ID:           models.GenerateUUID(),
		WorkOrderID:  workOrderID,
		FromStatus:   from,
		ToStatus:     to,
		Step:         step,
		Reason:       reason,
		Compensation: compensation,
		CreatedAt:    time.Now(),
	}
}

// CreateWorkOrder factory method. The order starts in the received state with
// its total computed from the budget lines.
func CreateWorkOrder(customerID, vehicleID int64, description string, items []WorkOrderItem) (*WorkOrder, error) {
	if customerID <= 0 {
		return nil, errors.New("customer id must be positive")
	}
	if vehicleID <= 0 {
		return nil, errors.New("vehicle id must be positive")
	}
	if len(items) == 0 {
		return nil, errors.New("a work order needs at least one item")
	}

	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, errors.Errorf("item %q quantity must be positive", item.Description)
		}
		if !item.UnitPrice.IsPositive() {
			return nil, errors.Errorf("item %q unit price must be positive", item.Description)
		}
		if item.UnitPrice.Currency != DefaultCurrency {
			return nil, errors.Errorf("item %q must be priced in %s", item.Description, DefaultCurrency)
		}
	}

	wo := &WorkOrder{
		CustomerID:  customerID,
		VehicleID:   vehicleID,
		Description: description,
		Status:      StatusReceived,
		Items:       items,
		Timestamps:  models.NewTimestamps(),
	}
	wo.TotalAmount = wo.ComputeTotal()

	return wo, nil
}

// ComputeTotal sums the budget lines.
func (w *WorkOrder) ComputeTotal() models.Money {
	total := models.NewMoney(0, DefaultCurrency)
	for _, item := range w.Items {
		total, _ = total.Add(item.Subtotal())
	}
	return total
}

// ApplyStep advances the work order along a forward saga step. The order must
// currently sit at the step's source status.
func (w *WorkOrder) ApplyStep(step saga.Step) (previous Status, err error) {
	from, to, ok := NextStatus(step)
	if !ok {
		return w.Status, errors.Errorf("step %s has no forward transition", step)
	}

	if w.Status != from {
		return w.Status, errors.Wrapf(ErrInvalidTransition,
			"step %s expects status %s, work order %d is %s", step, from, w.ID, w.Status)
	}

	previous = w.Status
	w.Status = to
	w.Timestamps = w.Timestamps.Update()
	return previous, nil
}

// ApplyCompensation rolls the work order back to the state preceding the
// failed step. It always succeeds; unrecognized steps reject the order.
func (w *WorkOrder) ApplyCompensation(step saga.Step) (previous, target Status) {
	previous = w.Status
	target = CompensationTarget(step)
	w.Status = target
	w.Timestamps = w.Timestamps.Update()
	return previous, target
}

// ApplyProductionUpdate overwrites the status with the production service's
// authoritative report, regardless of the current status.
func (w *WorkOrder) ApplyProductionUpdate(status Status, startedAt, finishedAt *time.Time) (previous Status) {
	previous = w.Status
	w.Status = status
	if startedAt != nil {
		w.StartedAt = startedAt
	}
	if finishedAt != nil {
		w.FinishedAt = finishedAt
	}
	w.Timestamps = w.Timestamps.Update()
	return previous
}

// SetPaymentLink stores the checkout link returned by the payment provider.
func (w *WorkOrder) SetPaymentLink(initPoint, preferenceID string) {
	w.InitPoint = initPoint
	w.PaymentPreferenceID = preferenceID
	w.Timestamps = w.Timestamps.Update()
}

// GenerateProtocol builds the human-facing protocol number from the creation
// date and the database-assigned id.
func GenerateProtocol(at time.Time, id int64) string {
	return fmt.Sprintf("%s%06d", at.Format("20060102"), id)
}
