package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motorsmith/work-order-system/shared/models"
	"github.com/motorsmith/work-order-system/shared/saga"
)

func testItems() []WorkOrderItem {
	return []WorkOrderItem{
		{PartID: 1, Description: "brake pads", Quantity: 2, UnitPrice: models.NewMoney(15000, DefaultCurrency)},
		{PartID: 2, Description: "labor", Quantity: 1, UnitPrice: models.NewMoney(20000, DefaultCurrency)},
	}
}

func TestCreateWorkOrder(t *testing.T) {
	wo, err := CreateWorkOrder(10, 20, "front brakes grinding", testItems())
	require.NoError(t, err)

	assert.Equal(t, StatusReceived, wo.Status)
	assert.Equal(t, int64(10), wo.CustomerID)
	assert.Equal(t, int64(20), wo.VehicleID)
	assert.Equal(t, int64(50000), wo.TotalAmount.Amount)
	assert.Equal(t, DefaultCurrency, wo.TotalAmount.Currency)
}

func TestCreateWorkOrderValidation(t *testing.T) {
	tests := []struct {
		name       string
		customerID int64
		vehicleID  int64
		items      []WorkOrderItem
	}{
		{name: "missing customer", customerID: 0, vehicleID: 20, items: testItems()},
		{name: "missing vehicle", customerID: 10, vehicleID: 0, items: testItems()},
		{name: "no items", customerID: 10, vehicleID: 20, items: nil},
		{
			name:       "zero quantity",
			customerID: 10,
			vehicleID:  20,
			items: []WorkOrderItem{
				{Description: "oil", Quantity: 0, UnitPrice: models.NewMoney(5000, DefaultCurrency)},
			},
		},
		{
			name:       "zero price",
			customerID: 10,
			vehicleID:  20,
			items: []WorkOrderItem{
				{Description: "oil", Quantity: 1, UnitPrice: models.NewMoney(0, DefaultCurrency)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateWorkOrder(tt.customerID, tt.vehicleID, "", tt.items)
			assert.Error(t, err)
		})
	}
}

func TestApplyStep(t *testing.T) {
	wo, err := CreateWorkOrder(10, 20, "", testItems())
	require.NoError(t, err)

	previous, err := wo.ApplyStep(saga.StepCreate)
	require.NoError(t, err)
	assert.Equal(t, StatusReceived, previous)
	assert.Equal(t, StatusDiagnosing, wo.Status)

	previous, err = wo.ApplyStep(saga.StepBudgetGenerated)
	require.NoError(t, err)
	assert.Equal(t, StatusDiagnosing, previous)
	assert.Equal(t, StatusAwaitingApproval, wo.Status)
}

func TestApplyStepWrongSource(t *testing.T) {
	wo, err := CreateWorkOrder(10, 20, "", testItems())
	require.NoError(t, err)

	// Still received, budget step expects diagnosing.
	_, err = wo.ApplyStep(saga.StepBudgetGenerated)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusReceived, wo.Status)
}

func TestApplyStepNoForwardTransition(t *testing.T) {
	wo, err := CreateWorkOrder(10, 20, "", testItems())
	require.NoError(t, err)

	_, err = wo.ApplyStep(saga.StepSendToProduction)
	assert.Error(t, err)
}

func TestApplyCompensation(t *testing.T) {
	wo, err := CreateWorkOrder(10, 20, "", testItems())
	require.NoError(t, err)
	wo.Status = StatusAwaitingApproval

	previous, target := wo.ApplyCompensation(saga.StepAwaitingApproval)
	assert.Equal(t, StatusAwaitingApproval, previous)
	assert.Equal(t, StatusDiagnosing, target)
	assert.Equal(t, StatusDiagnosing, wo.Status)
}

func TestApplyProductionUpdateOverwrites(t *testing.T) {
	wo, err := CreateWorkOrder(10, 20, "", testItems())
	require.NoError(t, err)
	wo.Status = StatusInProgress

	started := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	finished := time.Date(2025, 3, 1, 17, 30, 0, 0, time.UTC)

	previous := wo.ApplyProductionUpdate(StatusFinished, &started, &finished)
	assert.Equal(t, StatusInProgress, previous)
	assert.Equal(t, StatusFinished, wo.Status)
	require.NotNil(t, wo.StartedAt)
	require.NotNil(t, wo.FinishedAt)
	assert.Equal(t, started, *wo.StartedAt)
	assert.Equal(t, finished, *wo.FinishedAt)

	// The report is authoritative even against a terminal status.
	previous = wo.ApplyProductionUpdate(StatusDelivered, nil, nil)
	assert.Equal(t, StatusFinished, previous)
	assert.Equal(t, StatusDelivered, wo.Status)
	assert.Equal(t, started, *wo.StartedAt)
}

func TestGenerateProtocol(t *testing.T) {
	at := time.Date(2025, 7, 9, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, "20250709000042", GenerateProtocol(at, 42))
	assert.Equal(t, "20250709123456", GenerateProtocol(at, 123456))
}
