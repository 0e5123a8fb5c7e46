package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/motorsmith/work-order-system/order-service/domain"
	"github.com/motorsmith/work-order-system/shared/saga"
)

// StepError marks a saga step failure that must be compensated. The
// dispatcher rolls the work order back based on the failed step; errors that
// are not StepError (validation, status conflicts) propagate to the broker
// instead.
type StepError struct {
	SagaID      string
	WorkOrderID int64
	Step        saga.Step
	Err         error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s failed for work order %d: %v", e.Step, e.WorkOrderID, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// NewStepError wraps err as a compensable step failure.
func NewStepError(sagaID string, workOrderID int64, step saga.Step, err error) *StepError {
	return &StepError{
		SagaID:      sagaID,
		WorkOrderID: workOrderID,
		Step:        step,
		Err:         err,
	}
}

// releaseStep returns a failed step's dedup slot so the broker's redelivery
// can retry it. Best effort: if the release itself fails, redeliveries are
// dropped and the step needs an operator replay.
func releaseStep(ctx context.Context, log domain.SagaEventLog, logger *slog.Logger, sagaID string, step saga.Step) {
	if err := log.Unmark(ctx, sagaID, step); err != nil {
		logger.ErrorContext(ctx, "failed to release saga step",
			slog.String("saga_id", sagaID),
			slog.String("step", step.String()),
			slog.String("error", err.Error()),
		)
	}
}
