package domain

import (
	"context"
	"time"

	"github.com/motorsmith/work-order-system/shared/saga"
)

// WorkOrderRepository persists work orders and their status history.
type WorkOrderRepository interface {
	// Create inserts the work order, its items and the initial history entry
	// in one transaction, fills in the generated ids and derives the protocol
	// from the assigned id.
	Create(ctx context.Context, wo *WorkOrder) error

	// FindByID returns (nil, nil) when no work order exists with that id.
	FindByID(ctx context.Context, id int64) (*WorkOrder, error)

	// UpdateStatus overwrites the status unconditionally. Compensation and
	// production reports use this.
	UpdateStatus(ctx context.Context, id int64, status Status, startedAt, finishedAt *time.Time) error

	// UpdateStatusFrom advances the status only when the stored status still
	// equals expected. Returns ErrStatusConflict when the guard matches no row.
	UpdateStatusFrom(ctx context.Context, id int64, expected, next Status) error

	// SetPaymentLink stores the checkout link for a work order.
	SetPaymentLink(ctx context.Context, id int64, initPoint, preferenceID string) error

	// AppendStatusLog inserts one history entry.
	AppendStatusLog(ctx context.Context, log *StatusLog) error

	// StatusHistory returns the history entries of a work order, oldest first.
	StatusHistory(ctx context.Context, workOrderID int64) ([]*StatusLog, error)
}

// SagaEventLog records which saga steps have been applied so redelivered
// messages are dropped instead of reprocessed.
type SagaEventLog interface {
	// MarkProcessed records the (saga, step) pair. Returns applied=false when
	// the pair was already recorded.
	MarkProcessed(ctx context.Context, sagaID string, step saga.Step) (applied bool, err error)

	// Unmark removes a recorded (saga, step) pair so a redelivery of the
	// message can retry a step whose effects did not land.
	Unmark(ctx context.Context, sagaID string, step saga.Step) error
}
