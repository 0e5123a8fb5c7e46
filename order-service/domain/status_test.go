package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motorsmith/work-order-system/shared/saga"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		name     string
		step     saga.Step
		wantFrom Status
		wantTo   Status
		wantOK   bool
	}{
		{
			name:     "create advances received to diagnosing",
			step:     saga.StepCreate,
			wantFrom: StatusReceived,
			wantTo:   StatusDiagnosing,
			wantOK:   true,
		},
		{
			name:     "budget generated advances diagnosing to awaiting approval",
			step:     saga.StepBudgetGenerated,
			wantFrom: StatusDiagnosing,
			wantTo:   StatusAwaitingApproval,
			wantOK:   true,
		},
		{
			name:     "awaiting approval advances to in progress",
			step:     saga.StepAwaitingApproval,
			wantFrom: StatusAwaitingApproval,
			wantTo:   StatusInProgress,
			wantOK:   true,
		},
		{
			name:   "send to production has no forward transition",
			step:   saga.StepSendToProduction,
			wantOK: false,
		},
		{
			name:   "unknown step has no forward transition",
			step:   saga.Step("bogus"),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, ok := NextStatus(tt.step)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantFrom, from)
				assert.Equal(t, tt.wantTo, to)
			}
		})
	}
}

func TestCompensationTarget(t *testing.T) {
	tests := []struct {
		name string
		step saga.Step
		want Status
	}{
		{name: "create rolls back to rejected", step: saga.StepCreate, want: StatusRejected},
		{name: "budget generated rolls back to received", step: saga.StepBudgetGenerated, want: StatusReceived},
		{name: "awaiting approval rolls back to diagnosing", step: saga.StepAwaitingApproval, want: StatusDiagnosing},
		{name: "send to production rolls back to awaiting approval", step: saga.StepSendToProduction, want: StatusAwaitingApproval},
		{name: "unrecognized step rejects the order", step: saga.Step("teleport"), want: StatusRejected},
		{name: "empty step rejects the order", step: saga.Step(""), want: StatusRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompensationTarget(tt.step))
		})
	}
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("IN_PROGRESS")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, status)

	_, err = ParseStatus("in_progress")
	assert.Error(t, err)

	_, err = ParseStatus("")
	assert.Error(t, err)
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.False(t, StatusReceived.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
}
