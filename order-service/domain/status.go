package domain

import (
	"github.com/pkg/errors"

	"github.com/motorsmith/work-order-system/shared/saga"
)

// Status represents the lifecycle status of a work order
type Status string

const (
	StatusReceived         Status = "RECEIVED"
	StatusDiagnosing       Status = "DIAGNOSING"
	StatusAwaitingApproval Status = "AWAITING_APPROVAL"
	StatusInProgress       Status = "IN_PROGRESS"
	StatusFinished         Status = "FINISHED"
	StatusDelivered        Status = "DELIVERED"
	StatusRejected         Status = "REJECTED"
)

var (
	// ErrInvalidTransition signals a forward step applied to a work order that
	// is not in the step's expected source status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrStatusConflict signals a guarded update that matched no row because
	// the stored status changed underneath it.
	ErrStatusConflict = errors.New("status changed concurrently")
)

func (s Status) String() string {
	return string(s)
}

// Known reports whether s is a recognized work order status.
func (s Status) Known() bool {
	switch s {
	case StatusReceived, StatusDiagnosing, StatusAwaitingApproval,
		StatusInProgress, StatusFinished, StatusDelivered, StatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further forward transition leaves s.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusRejected
}

// ParseStatus converts a wire value into a canonical Status.
func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.Known() {
		return "", errors.Errorf("unknown work order status %q", v)
	}
	return s, nil
}

// forwardTransitions maps each saga step to its source and target status.
// A step only advances a work order that currently sits at the source status.
var forwardTransitions = map[saga.Step]struct {
	From Status
	To   Status
}{
	saga.StepCreate:           {From: StatusReceived, To: StatusDiagnosing},
	saga.StepBudgetGenerated:  {From: StatusDiagnosing, To: StatusAwaitingApproval},
	saga.StepAwaitingApproval: {From: StatusAwaitingApproval, To: StatusInProgress},
}

// NextStatus returns the source and target status of a forward saga step.
func NextStatus(step saga.Step) (from Status, to Status, ok bool) {
	t, ok := forwardTransitions[step]
	return t.From, t.To, ok
}

// compensationTargets maps a failed saga step to the status the work order
// rolls back to. Steps outside the table roll back to the rejected state.
var compensationTargets = map[saga.Step]Status{
	saga.StepCreate:           StatusRejected,
	saga.StepBudgetGenerated:  StatusReceived,
	saga.StepAwaitingApproval: StatusDiagnosing,
	saga.StepSendToProduction: StatusAwaitingApproval,
}

// CompensationTarget returns the status a work order is rolled back to when
// the given step fails. Unrecognized steps reject the work order.
func CompensationTarget(step saga.Step) Status {
	if target, ok := compensationTargets[step]; ok {
		return target
	}
	return StatusRejected
}
