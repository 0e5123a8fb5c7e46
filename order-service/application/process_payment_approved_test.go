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
	"github.com/motorsmith/work-order-system/shared/events"
	"github.com/motorsmith/work-order-system/shared/models"
	"github.com/motorsmith/work-order-system/shared/saga"
)

func awaitingApprovalWorkOrder(id int64) *domain.WorkOrder {
	return &domain.WorkOrder{
		ID:          id,
		CustomerID:  10,
		VehicleID:   20,
		Protocol:    "20260828000042",
		Status:      domain.StatusAwaitingApproval,
		TotalAmount: models.NewMoney(30000, "BRL"),
	}
}

func TestProcessPaymentApproved_Execute(t *testing.T) {
	const sagaID = "saga-1"

	tests := []struct {
		name       string
		command    *ProcessPaymentApprovedCommand
		setupMocks func(*mocks.MockWorkOrderRepository, *mocks.MockSagaEventLog, *mocks.MockPublisher)
		checkError func(*testing.T, error)
	}{
		{
			name:    "advances to in progress and hands off to production",
			command: &ProcessPaymentApprovedCommand{SagaID: sagaID, WorkOrderID: 42, PaymentID: "pay-1"},
			setupMocks: func(repo *mocks.MockWorkOrderRepository, log *mocks.MockSagaEventLog, publisher *mocks.MockPublisher) {
				log.EXPECT().MarkProcessed(mock.Anything, sagaID, saga.StepAwaitingApproval).Return(true, nil).Once()
				repo.EXPECT().FindByID(mock.Anything, int64(42)).Return(awaitingApprovalWorkOrder(42), nil).Once()
				repo.EXPECT().UpdateStatusFrom(mock.Anything, int64(42), domain.StatusAwaitingApproval, domain.StatusInProgress).Return(nil).Once()
				repo.EXPECT().AppendStatusLog(mock.Anything, mock.Anything).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
					return evt.Topic == events.SendToProductionTopic
				})).Return(nil).Once()
			},
		},
		{
			name:    "callback without saga id dedups on a per-order key",
			command: &ProcessPaymentApprovedCommand{WorkOrderID: 42, PaymentID: "pay-1"},
			setupMocks: func(repo *mocks.MockWorkOrderRepository, log *mocks.MockSagaEventLog, publisher *mocks.MockPublisher) {
				log.EXPECT().MarkProcessed(mock.Anything, "work-order-42", saga.StepAwaitingApproval).Return(true, nil).Once()
				repo.EXPECT().FindByID(mock.Anything, int64(42)).Return(awaitingApprovalWorkOrder(42), nil).Once()
				repo.EXPECT().UpdateStatusFrom(mock.Anything, int64(42), domain.StatusAwaitingApproval, domain.StatusInProgress).Return(nil).Once()
				repo.EXPECT().AppendStatusLog(mock.Anything, mock.Anything).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()
			},
		},
		{
			name:    "duplicate delivery is dropped",
			command: &ProcessPaymentApprovedCommand{SagaID: sagaID, WorkOrderID: 42},
			setupMocks: func(repo *mocks.MockWorkOrderRepository, log *mocks.MockSagaEventLog, publisher *mocks.MockPublisher) {
				log.EXPECT().MarkProcessed(mock.Anything, sagaID, saga.StepAwaitingApproval).Return(false, nil).Once()
			},
		},
		{
			name:    "production hand-off failure compensates as the production step",
			command: &ProcessPaymentApprovedCommand{SagaID: sagaID, WorkOrderID: 42},
			setupMocks: func(repo *mocks.MockWorkOrderRepository, log *mocks.MockSagaEventLog, publisher *mocks.MockPublisher) {
				log.EXPECT().MarkProcessed(mock.Anything, sagaID, saga.StepAwaitingApproval).Return(true, nil).Once()
				repo.EXPECT().FindByID(mock.Anything, int64(42)).Return(awaitingApprovalWorkOrder(42), nil).Once()
				repo.EXPECT().UpdateStatusFrom(mock.Anything, int64(42), domain.StatusAwaitingApproval, domain.StatusInProgress).Return(nil).Once()
				repo.EXPECT().AppendStatusLog(mock.Anything, mock.Anything).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.Anything).
					Return(errors.New("broker unavailable")).Once()
				log.EXPECT().Unmark(mock.Anything, sagaID, saga.StepAwaitingApproval).Return(nil).Once()
			},
			checkError: func(t *testing.T, err error) {
				var stepErr *StepError
				require.True(t, errors.As(err, &stepErr))
				assert.Equal(t, saga.StepSendToProduction, stepErr.Step)
			},
		},
		{
			name:    "status conflict surfaces uncompensated",
			command: &ProcessPaymentApprovedCommand{SagaID: sagaID, WorkOrderID: 42},
			setupMocks: func(repo *mocks.MockWorkOrderRepository, log *mocks.MockSagaEventLog, publisher *mocks.MockPublisher) {
				log.EXPECT().MarkProcessed(mock.Anything, sagaID, saga.StepAwaitingApproval).Return(true, nil).Once()
				repo.EXPECT().FindByID(mock.Anything, int64(42)).Return(awaitingApprovalWorkOrder(42), nil).Once()
				repo.EXPECT().UpdateStatusFrom(mock.Anything, int64(42), domain.StatusAwaitingApproval, domain.StatusInProgress).
					Return(domain.ErrStatusConflict).Once()
				log.EXPECT().Unmark(mock.Anything, sagaID, saga.StepAwaitingApproval).Return(nil).Once()
			},
			checkError: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, domain.ErrStatusConflict))
				var stepErr *StepError
				assert.False(t, errors.As(err, &stepErr))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockWorkOrderRepository(t)
			log := mocks.NewMockSagaEventLog(t)
			publisher := mocks.NewMockPublisher(t)

			tt.setupMocks(repo, log, publisher)

			useCase := NewProcessPaymentApproved(repo, log, publisher, 8*time.Second, testLogger())
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
