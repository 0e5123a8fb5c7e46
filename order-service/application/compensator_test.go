package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/motorsmith/work-order-system/order-service/mocks"
	"github.com/motorsmith/work-order-system/shared/saga"
)

func TestCompensateMissingWorkOrderIsNoOp(t *testing.T) {
	repo := mocks.NewMockWorkOrderRepository(t)
	repo.EXPECT().FindByID(mock.Anything, int64(5)).Return(nil, nil).Once()

	compensator := NewCompensator(repo, testLogger())

	err := compensator.Compensate(context.Background(), 5, saga.StepCreate, "downstream failure")

	// Nothing left to roll back; retrying would loop forever.
	require.NoError(t, err)
}
