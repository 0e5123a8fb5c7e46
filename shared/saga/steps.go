// Package saga defines the work-order saga contracts: the ordered step
// identifiers and the typed payload schema of every message exchanged between
// the order, production and payment services.
package saga

import "fmt"

// Step identifies one forward stage of the work-order saga.
// Order: create -> budget_generated -> awaiting_approval -> send_to_production.
type Step string

const (
	StepCreate           Step = "create"
	StepBudgetGenerated  Step = "budget_generated"
	StepAwaitingApproval Step = "awaiting_approval"
	StepSendToProduction Step = "send_to_production"
)

func (s Step) String() string {
	return string(s)
}

// Known reports whether s is one of the canonical saga steps. Unknown steps
// still compensate (to the rejected state), so payload parsing does not treat
// them as malformed.
func (s Step) Known() bool {
	switch s {
	case StepCreate, StepBudgetGenerated, StepAwaitingApproval, StepSendToProduction:
		return true
	}
	return false
}

// ParseStep converts a wire value into a canonical Step.
func ParseStep(v string) (Step, error) {
	s := Step(v)
	if !s.Known() {
		return "", fmt.Errorf("unknown saga step %q", v)
	}
	return s, nil
}
