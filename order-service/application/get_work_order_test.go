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
	"github.com/motorsmith/work-order-system/shared/faults"
	"github.com/motorsmith/work-order-system/shared/models"
	"github.com/motorsmith/work-order-system/shared/saga"
)

func TestGetWorkOrder_Execute(t *testing.T) {
	t.Run("returns the read model", func(t *testing.T) {
		repo := mocks.NewMockWorkOrderRepository(t)

		wo := diagnosedWorkOrder(42)
		wo.InitPoint = "https://pay.example.com/pref-1"
		wo.Items = []domain.WorkOrderItem{
			{PartID: 7, Description: "brake pads", Quantity: 2, UnitPrice: models.NewMoney(15000, "BRL")},
		}
		repo.EXPECT().FindByID(mock.Anything, int64(42)).Return(wo, nil).Once()

		view, err := NewGetWorkOrder(repo).Execute(context.Background(), 42)

		require.NoError(t, err)
		assert.Equal(t, int64(42), view.ID)
		assert.Equal(t, domain.StatusDiagnosing.String(), view.Status)
		assert.Equal(t, "https://pay.example.com/pref-1", view.InitPoint)
		require.Len(t, view.Items, 1)
		assert.Equal(t, int64(30000), view.Items[0].Subtotal)
	})

	t.Run("missing work order", func(t *testing.T) {
		repo := mocks.NewMockWorkOrderRepository(t)
		repo.EXPECT().FindByID(mock.Anything, int64(99)).Return(nil, nil).Once()

		view, err := NewGetWorkOrder(repo).Execute(context.Background(), 99)

		require.Error(t, err)
		assert.True(t, faults.IsNotFound(err))
		assert.Nil(t, view)
	})

	t.Run("invalid id", func(t *testing.T) {
		repo := mocks.NewMockWorkOrderRepository(t)

		_, err := NewGetWorkOrder(repo).Execute(context.Background(), 0)

		require.Error(t, err)
		assert.True(t, faults.IsValidation(err))
	})
}

func TestGetWorkOrderHistory_Execute(t *testing.T) {
	t.Run("returns the history oldest first", func(t *testing.T) {
		repo := mocks.NewMockWorkOrderRepository(t)

		repo.EXPECT().FindByID(mock.Anything, int64(42)).Return(diagnosedWorkOrder(42), nil).Once()
		repo.EXPECT().StatusHistory(mock.Anything, int64(42)).Return([]*domain.StatusLog{
			domain.NewStatusLog(42, domain.StatusReceived, domain.StatusDiagnosing, saga.StepCreate, "", false),
			domain.NewStatusLog(42, domain.StatusDiagnosing, domain.StatusReceived, saga.StepBudgetGenerated, "peer failed", true),
		}, nil).Once()

		views, err := NewGetWorkOrderHistory(repo).Execute(context.Background(), 42)

		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.False(t, views[0].Compensation)
		assert.True(t, views[1].Compensation)
		assert.Equal(t, domain.StatusReceived.String(), views[1].ToStatus)
	})

	t.Run("missing work order", func(t *testing.T) {
		repo := mocks.NewMockWorkOrderRepository(t)
		repo.EXPECT().FindByID(mock.Anything, int64(99)).Return(nil, nil).Once()

		_, err := NewGetWorkOrderHistory(repo).Execute(context.Background(), 99)

		require.Error(t, err)
		assert.True(t, faults.IsNotFound(err))
	})
}

func TestUpdateWorkOrderStatus_Execute(t *testing.T) {
	newUseCase := func(repo *mocks.MockWorkOrderRepository, publisher *mocks.MockPublisher) *UpdateWorkOrderStatus {
		return NewUpdateWorkOrderStatus(repo, publisher, 8*time.Second, testLogger())
	}

	t.Run("override is applied and recorded", func(t *testing.T) {
		repo := mocks.NewMockWorkOrderRepository(t)
		publisher := mocks.NewMockPublisher(t)

		repo.EXPECT().FindByID(mock.Anything, int64(42)).Return(diagnosedWorkOrder(42), nil).Once()
		repo.EXPECT().UpdateStatus(mock.Anything, int64(42), domain.StatusRejected, (*time.Time)(nil), (*time.Time)(nil)).Return(nil).Once()
		repo.EXPECT().AppendStatusLog(mock.Anything, mock.MatchedBy(func(entry *domain.StatusLog) bool {
			return entry.Step == StepManual && entry.Reason == "customer cancelled"
		})).Return(nil).Once()

		err := newUseCase(repo, publisher).Execute(context.Background(), &UpdateWorkOrderStatusCommand{
			WorkOrderID: 42, Status: "REJECTED", Reason: "customer cancelled",
		})

		require.NoError(t, err)
	})

	t.Run("moving into progress hands off to production", func(t *testing.T) {
		repo := mocks.NewMockWorkOrderRepository(t)
		publisher := mocks.NewMockPublisher(t)

		repo.EXPECT().FindByID(mock.Anything, int64(42)).Return(awaitingApprovalWorkOrder(42), nil).Once()
		repo.EXPECT().UpdateStatus(mock.Anything, int64(42), domain.StatusInProgress, (*time.Time)(nil), (*time.Time)(nil)).Return(nil).Once()
		repo.EXPECT().AppendStatusLog(mock.Anything, mock.Anything).Return(nil).Once()
		publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
			return evt.Topic == events.SendToProductionTopic
		})).Return(nil).Once()

		err := newUseCase(repo, publisher).Execute(context.Background(), &UpdateWorkOrderStatusCommand{
			WorkOrderID: 42, Status: "IN_PROGRESS",
		})

		require.NoError(t, err)
	})

	t.Run("failed hand-off does not fail the override", func(t *testing.T) {
		repo := mocks.NewMockWorkOrderRepository(t)
		publisher := mocks.NewMockPublisher(t)

		repo.EXPECT().FindByID(mock.Anything, int64(42)).Return(awaitingApprovalWorkOrder(42), nil).Once()
		repo.EXPECT().UpdateStatus(mock.Anything, int64(42), domain.StatusInProgress, (*time.Time)(nil), (*time.Time)(nil)).Return(nil).Once()
		repo.EXPECT().AppendStatusLog(mock.Anything, mock.Anything).Return(nil).Once()
		publisher.EXPECT().Publish(mock.Anything, mock.Anything).
			Return(errors.New("broker unavailable")).Once()

		err := newUseCase(repo, publisher).Execute(context.Background(), &UpdateWorkOrderStatusCommand{
			WorkOrderID: 42, Status: "IN_PROGRESS",
		})

		require.NoError(t, err)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		repo := mocks.NewMockWorkOrderRepository(t)
		publisher := mocks.NewMockPublisher(t)
		repo.EXPECT().FindByID(mock.Anything, int64(42)).Return(diagnosedWorkOrder(42), nil).Once()

		err := newUseCase(repo, publisher).Execute(context.Background(), &UpdateWorkOrderStatusCommand{
			WorkOrderID: 42, Status: "DIAGNOSING",
		})

		require.NoError(t, err)
	})

	t.Run("unknown status", func(t *testing.T) {
		repo := mocks.NewMockWorkOrderRepository(t)
		publisher := mocks.NewMockPublisher(t)

		err := newUseCase(repo, publisher).Execute(context.Background(), &UpdateWorkOrderStatusCommand{
			WorkOrderID: 42, Status: "LOST",
		})

		require.Error(t, err)
		assert.True(t, faults.IsValidation(err))
	})
}
