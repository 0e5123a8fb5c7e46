package application

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/motorsmith/work-order-system/order-service/domain"
	"github.com/motorsmith/work-order-system/order-service/mocks"
	"github.com/motorsmith/work-order-system/shared/faults"
	"github.com/motorsmith/work-order-system/shared/saga"
)

func TestCompensateWorkOrder_Execute(t *testing.T) {
	const sagaID = "saga-1"

	tests := []struct {
		name       string
		command    *CompensateWorkOrderCommand
		setupMocks func(*mocks.MockWorkOrderRepository, *mocks.MockSagaEventLog)
		checkError func(*testing.T, error)
	}{
		{
			name:    "budget step rolls back to received",
			command: &CompensateWorkOrderCommand{SagaID: sagaID, WorkOrderID: 42, Step: saga.StepBudgetGenerated, Reason: "peer failed"},
			setupMocks: func(repo *mocks.MockWorkOrderRepository, log *mocks.MockSagaEventLog) {
				log.EXPECT().MarkProcessed(mock.Anything, sagaID, saga.Step("compensate.budget_generated")).Return(true, nil).Once()
				wo := diagnosedWorkOrder(42)
				repo.EXPECT().FindByID(mock.Anything, int64(42)).Return(wo, nil).Once()
				repo.EXPECT().UpdateStatus(mock.Anything, int64(42), domain.StatusReceived, (*time.Time)(nil), (*time.Time)(nil)).Return(nil).Once()
				repo.EXPECT().AppendStatusLog(mock.Anything, mock.MatchedBy(func(entry *domain.StatusLog) bool {
					return entry.Compensation &&
						entry.ToStatus == domain.StatusReceived &&
						entry.Reason == "peer failed"
				})).Return(nil).Once()
			},
		},
		{
			name:    "create step rejects the order",
			command: &CompensateWorkOrderCommand{SagaID: sagaID, WorkOrderID: 42, Step: saga.StepCreate},
			setupMocks: func(repo *mocks.MockWorkOrderRepository, log *mocks.MockSagaEventLog) {
				log.EXPECT().MarkProcessed(mock.Anything, sagaID, saga.Step("compensate.create")).Return(true, nil).Once()
				repo.EXPECT().FindByID(mock.Anything, int64(42)).Return(receivedWorkOrder(42), nil).Once()
				repo.EXPECT().UpdateStatus(mock.Anything, int64(42), domain.StatusRejected, (*time.Time)(nil), (*time.Time)(nil)).Return(nil).Once()
				repo.EXPECT().AppendStatusLog(mock.Anything, mock.MatchedBy(func(entry *domain.StatusLog) bool {
					return entry.Compensation &&
						entry.ToStatus == domain.StatusRejected &&
						entry.Reason == "compensation requested"
				})).Return(nil).Once()
			},
		},
		{
			name:    "unrecognized step rejects the order",
			command: &CompensateWorkOrderCommand{SagaID: sagaID, WorkOrderID: 42, Step: saga.Step("teleport")},
			setupMocks: func(repo *mocks.MockWorkOrderRepository, log *mocks.MockSagaEventLog) {
				log.EXPECT().MarkProcessed(mock.Anything, sagaID, saga.Step("compensate.teleport")).Return(true, nil).Once()
				repo.EXPECT().FindByID(mock.Anything, int64(42)).Return(diagnosedWorkOrder(42), nil).Once()
				repo.EXPECT().UpdateStatus(mock.Anything, int64(42), domain.StatusRejected, (*time.Time)(nil), (*time.Time)(nil)).Return(nil).Once()
				repo.EXPECT().AppendStatusLog(mock.Anything, mock.Anything).Return(nil).Once()
			},
		},
		{
			name:    "redelivered compensation is dropped",
			command: &CompensateWorkOrderCommand{SagaID: sagaID, WorkOrderID: 42, Step: saga.StepBudgetGenerated},
			setupMocks: func(repo *mocks.MockWorkOrderRepository, log *mocks.MockSagaEventLog) {
				log.EXPECT().MarkProcessed(mock.Anything, sagaID, saga.Step("compensate.budget_generated")).Return(false, nil).Once()
			},
		},
		{
			name:    "missing saga id still compensates",
			command: &CompensateWorkOrderCommand{WorkOrderID: 42, Step: saga.StepAwaitingApproval},
			setupMocks: func(repo *mocks.MockWorkOrderRepository, log *mocks.MockSagaEventLog) {
				repo.EXPECT().FindByID(mock.Anything, int64(42)).Return(awaitingApprovalWorkOrder(42), nil).Once()
				repo.EXPECT().UpdateStatus(mock.Anything, int64(42), domain.StatusDiagnosing, (*time.Time)(nil), (*time.Time)(nil)).Return(nil).Once()
				repo.EXPECT().AppendStatusLog(mock.Anything, mock.Anything).Return(nil).Once()
			},
		},
		{
			name:    "missing work order is a no-op",
			command: &CompensateWorkOrderCommand{SagaID: sagaID, WorkOrderID: 42, Step: saga.StepBudgetGenerated, Reason: "peer failed"},
			setupMocks: func(repo *mocks.MockWorkOrderRepository, log *mocks.MockSagaEventLog) {
				log.EXPECT().MarkProcessed(mock.Anything, sagaID, saga.Step("compensate.budget_generated")).Return(true, nil).Once()
				repo.EXPECT().FindByID(mock.Anything, int64(42)).Return(nil, nil).Once()
			},
		},
		{
			name:       "missing step is malformed",
			command:    &CompensateWorkOrderCommand{SagaID: sagaID, WorkOrderID: 42},
			setupMocks: func(*mocks.MockWorkOrderRepository, *mocks.MockSagaEventLog) {},
			checkError: func(t *testing.T, err error) {
				assert.True(t, faults.IsValidation(err))
			},
		},
		{
			name:    "rollback failure propagates",
			command: &CompensateWorkOrderCommand{SagaID: sagaID, WorkOrderID: 42, Step: saga.StepBudgetGenerated},
			setupMocks: func(repo *mocks.MockWorkOrderRepository, log *mocks.MockSagaEventLog) {
				log.EXPECT().MarkProcessed(mock.Anything, sagaID, saga.Step("compensate.budget_generated")).Return(true, nil).Once()
				repo.EXPECT().FindByID(mock.Anything, int64(42)).Return(diagnosedWorkOrder(42), nil).Once()
				repo.EXPECT().UpdateStatus(mock.Anything, int64(42), domain.StatusReceived, (*time.Time)(nil), (*time.Time)(nil)).
					Return(errors.New("connection reset")).Once()
				log.EXPECT().Unmark(mock.Anything, sagaID, saga.Step("compensate.budget_generated")).Return(nil).Once()
			},
			checkError: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "failed to roll back status")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockWorkOrderRepository(t)
			log := mocks.NewMockSagaEventLog(t)

			tt.setupMocks(repo, log)

			compensator := NewCompensator(repo, testLogger())
			useCase := NewCompensateWorkOrder(compensator, log, testLogger())
			err := useCase.Execute(context.Background(), tt.command)

			if tt.checkError != nil {
				require.Error(t, err)
				tt.checkError(t, err)
				return
			}

			require.NoError(t, err)
		})
	}
}
