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

func diagnosedWorkOrder(id int64) *domain.WorkOrder {
	return &domain.WorkOrder{
		ID:          id,
		CustomerID:  10,
		VehicleID:   20,
		Protocol:    "20260828000042",
		Status:      domain.StatusDiagnosing,
		TotalAmount: models.NewMoney(30000, "BRL"),
	}
}

type budgetMocks struct {
	repo      *mocks.MockWorkOrderRepository
	log       *mocks.MockSagaEventLog
	customers *mocks.MockCustomerClient
	payments  *mocks.MockPaymentClient
	requester *mocks.MockPaymentRequester
	emails    *mocks.MockEmailQueue
	publisher *mocks.MockPublisher
}

func TestProcessBudgetGenerated_Execute(t *testing.T) {
	const sagaID = "saga-1"

	customer := &domain.Customer{ID: 10, Name: "Ada", Email: "ada@example.com"}
	link := &domain.PaymentLink{PreferenceID: "pref-1", InitPoint: "https://pay.example.com/pref-1"}

	expectTransition := func(m budgetMocks) {
		m.log.EXPECT().MarkProcessed(mock.Anything, sagaID, saga.StepBudgetGenerated).Return(true, nil).Once()
		m.repo.EXPECT().FindByID(mock.Anything, int64(42)).Return(diagnosedWorkOrder(42), nil).Once()
		m.repo.EXPECT().UpdateStatusFrom(mock.Anything, int64(42), domain.StatusDiagnosing, domain.StatusAwaitingApproval).Return(nil).Once()
		m.repo.EXPECT().AppendStatusLog(mock.Anything, mock.Anything).Return(nil).Once()
	}

	tests := []struct {
		name       string
		command    *ProcessBudgetGeneratedCommand
		setupMocks func(budgetMocks)
		checkError func(*testing.T, error)
	}{
		{
			name:    "advances to awaiting approval and runs the payment side channel",
			command: &ProcessBudgetGeneratedCommand{SagaID: sagaID, WorkOrderID: 42},
			setupMocks: func(m budgetMocks) {
				expectTransition(m)
				m.publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
					return evt.Topic == events.WorkOrderAwaitingApprovalTopic
				})).Return(nil).Once()
				m.customers.EXPECT().GetCustomer(mock.Anything, int64(10)).Return(customer, nil).Once()
				m.payments.EXPECT().CreatePaymentLink(mock.Anything, mock.MatchedBy(func(req domain.PaymentLinkRequest) bool {
					return req.WorkOrderID == 42 && req.UnitPrice.Amount == 30000
				})).Return(link, nil).Once()
				m.repo.EXPECT().SetPaymentLink(mock.Anything, int64(42), link.InitPoint, link.PreferenceID).Return(nil).Once()
				m.requester.EXPECT().RequestPayment(mock.Anything, mock.MatchedBy(func(p saga.PaymentRequestPayload) bool {
					return p.WorkOrderID == 42 && p.UnitPrice == 30000 && p.CurrencyID == "BRL"
				})).Return(nil).Once()
				m.emails.EXPECT().Enqueue(mock.Anything, mock.MatchedBy(func(p saga.EmailPayload) bool {
					return p.Type == "budget_generated" && p.Body == link.InitPoint
				})).Return(nil).Once()
			},
		},
		{
			name:    "command amount overrides the stored total for the charge",
			command: &ProcessBudgetGeneratedCommand{SagaID: sagaID, WorkOrderID: 42, TotalAmount: 45000},
			setupMocks: func(m budgetMocks) {
				expectTransition(m)
				m.publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()
				m.customers.EXPECT().GetCustomer(mock.Anything, int64(10)).Return(customer, nil).Once()
				m.payments.EXPECT().CreatePaymentLink(mock.Anything, mock.MatchedBy(func(req domain.PaymentLinkRequest) bool {
					return req.UnitPrice.Amount == 45000 && req.UnitPrice.Currency == "BRL"
				})).Return(link, nil).Once()
				m.repo.EXPECT().SetPaymentLink(mock.Anything, int64(42), link.InitPoint, link.PreferenceID).Return(nil).Once()
				m.requester.EXPECT().RequestPayment(mock.Anything, mock.MatchedBy(func(p saga.PaymentRequestPayload) bool {
					return p.UnitPrice == 45000
				})).Return(nil).Once()
				m.emails.EXPECT().Enqueue(mock.Anything, mock.Anything).Return(nil).Once()
			},
		},
		{
			name:    "duplicate delivery is dropped",
			command: &ProcessBudgetGeneratedCommand{SagaID: sagaID, WorkOrderID: 42},
			setupMocks: func(m budgetMocks) {
				m.log.EXPECT().MarkProcessed(mock.Anything, sagaID, saga.StepBudgetGenerated).Return(false, nil).Once()
			},
		},
		{
			name:    "side channel failure still completes the step",
			command: &ProcessBudgetGeneratedCommand{SagaID: sagaID, WorkOrderID: 42},
			setupMocks: func(m budgetMocks) {
				expectTransition(m)
				m.publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()
				m.customers.EXPECT().GetCustomer(mock.Anything, int64(10)).Return(customer, nil).Once()
				m.payments.EXPECT().CreatePaymentLink(mock.Anything, mock.Anything).
					Return(nil, errors.New("payment provider down")).Once()
			},
		},
		{
			name:    "publish failure becomes a step error",
			command: &ProcessBudgetGeneratedCommand{SagaID: sagaID, WorkOrderID: 42},
			setupMocks: func(m budgetMocks) {
				expectTransition(m)
				m.publisher.EXPECT().Publish(mock.Anything, mock.Anything).
					Return(errors.New("broker unavailable")).Once()
				m.log.EXPECT().Unmark(mock.Anything, sagaID, saga.StepBudgetGenerated).Return(nil).Once()
			},
			checkError: func(t *testing.T, err error) {
				var stepErr *StepError
				require.True(t, errors.As(err, &stepErr))
				assert.Equal(t, saga.StepBudgetGenerated, stepErr.Step)
			},
		},
		{
			name:    "status conflict surfaces uncompensated",
			command: &ProcessBudgetGeneratedCommand{SagaID: sagaID, WorkOrderID: 42},
			setupMocks: func(m budgetMocks) {
				m.log.EXPECT().MarkProcessed(mock.Anything, sagaID, saga.StepBudgetGenerated).Return(true, nil).Once()
				m.repo.EXPECT().FindByID(mock.Anything, int64(42)).Return(diagnosedWorkOrder(42), nil).Once()
				m.repo.EXPECT().UpdateStatusFrom(mock.Anything, int64(42), domain.StatusDiagnosing, domain.StatusAwaitingApproval).
					Return(domain.ErrStatusConflict).Once()
				m.log.EXPECT().Unmark(mock.Anything, sagaID, saga.StepBudgetGenerated).Return(nil).Once()
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
			m := budgetMocks{
				repo:      mocks.NewMockWorkOrderRepository(t),
				log:       mocks.NewMockSagaEventLog(t),
				customers: mocks.NewMockCustomerClient(t),
				payments:  mocks.NewMockPaymentClient(t),
				requester: mocks.NewMockPaymentRequester(t),
				emails:    mocks.NewMockEmailQueue(t),
				publisher: mocks.NewMockPublisher(t),
			}

			tt.setupMocks(m)

			useCase := NewProcessBudgetGenerated(
				m.repo, m.log, m.customers, m.payments, m.requester,
				m.emails, m.publisher, 8*time.Second, testLogger(),
			)
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
