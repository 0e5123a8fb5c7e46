package infrastructure

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motorsmith/work-order-system/order-service/domain"
	"github.com/motorsmith/work-order-system/shared/models"
	"github.com/motorsmith/work-order-system/shared/saga"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "postgres"), mock
}

func TestCreateWorkOrderInsertsOrderAndItems(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresWorkOrderRepository(db)

	wo, err := domain.CreateWorkOrder(10, 20, "engine noise", []domain.WorkOrderItem{
		{PartID: 7, Description: "spark plugs", Quantity: 4, UnitPrice: models.NewMoney(2500, domain.DefaultCurrency)},
	})
	require.NoError(t, err)

	wantProtocol := domain.GenerateProtocol(wo.Timestamps.CreatedAt, 42)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO work_orders").
		WithArgs(
			wo.CustomerID, wo.VehicleID, wo.Description,
			string(domain.StatusReceived), wo.TotalAmount.Amount, wo.TotalAmount.Currency,
			sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))
	mock.ExpectExec("UPDATE work_orders SET protocol").
		WithArgs(wantProtocol, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO work_order_items").
		WithArgs(int64(42), int64(7), "spark plugs", 4, int64(2500), domain.DefaultCurrency).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectExec("INSERT INTO work_order_status_logs").
		WithArgs(
			sqlmock.AnyArg(), int64(42), "RECEIVED", "RECEIVED", "", "",
			false, sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.Create(context.Background(), wo)
	require.NoError(t, err)

	assert.Equal(t, int64(42), wo.ID)
	assert.Equal(t, wantProtocol, wo.Protocol)
	assert.Equal(t, int64(42), wo.Items[0].WorkOrderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDNotFoundReturnsNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresWorkOrderRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM work_orders").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	wo, err := repo.FindByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, wo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDLoadsItems(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresWorkOrderRepository(db)

	now := time.Now()
	orderColumns := []string{
		"id", "customer_id", "vehicle_id", "protocol", "description", "status",
		"total_amount", "currency", "init_point", "payment_preference_id",
		"started_at", "finished_at", "created_at", "updated_at",
	}
	itemColumns := []string{"id", "work_order_id", "part_id", "description", "quantity", "unit_price", "currency"}

	mock.ExpectQuery("SELECT (.+) FROM work_orders").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(orderColumns).AddRow(
			int64(42), int64(10), int64(20), "20250709000042", "engine noise",
			"AWAITING_APPROVAL", int64(10000), "BRL", "https://pay.example/42", "pref-42",
			nil, nil, now, now,
		))
	mock.ExpectQuery("SELECT (.+) FROM work_order_items").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(itemColumns).
			AddRow(int64(1), int64(42), int64(7), "spark plugs", 4, int64(2500), "BRL"))

	wo, err := repo.FindByID(context.Background(), 42)
	require.NoError(t, err)
	require.NotNil(t, wo)

	assert.Equal(t, domain.StatusAwaitingApproval, wo.Status)
	assert.Equal(t, "https://pay.example/42", wo.InitPoint)
	require.Len(t, wo.Items, 1)
	assert.Equal(t, int64(2500), wo.Items[0].UnitPrice.Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusFromConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresWorkOrderRepository(db)

	mock.ExpectExec("UPDATE work_orders").
		WithArgs("DIAGNOSING", sqlmock.AnyArg(), int64(42), "RECEIVED").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatusFrom(context.Background(), 42, domain.StatusReceived, domain.StatusDiagnosing)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStatusConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusFromAdvances(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresWorkOrderRepository(db)

	mock.ExpectExec("UPDATE work_orders").
		WithArgs("DIAGNOSING", sqlmock.AnyArg(), int64(42), "RECEIVED").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatusFrom(context.Background(), 42, domain.StatusReceived, domain.StatusDiagnosing)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusHistoryOrdersOldestFirst(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresWorkOrderRepository(db)

	columns := []string{"id", "work_order_id", "from_status", "to_status", "step", "reason", "compensation", "created_at"}
	first := time.Now().Add(-time.Hour)
	second := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM work_order_status_logs").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("0b06ba27-6181-4c5c-9722-2b8d9a596e70", int64(42), "RECEIVED", "DIAGNOSING", "create", "", false, first).
			AddRow("7e39c6e8-6ef5-40a8-93bd-67e5bb8724fb", int64(42), "DIAGNOSING", "RECEIVED", "budget_generated", "budget rejected", true, second))

	logs, err := repo.StatusHistory(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	assert.Equal(t, domain.StatusDiagnosing, logs[0].ToStatus)
	assert.Equal(t, saga.StepBudgetGenerated, logs[1].Step)
	assert.True(t, logs[1].Compensation)
}

func TestMarkProcessedDedup(t *testing.T) {
	db, mock := newMockDB(t)
	log := NewPostgresSagaEventLog(db)

	mock.ExpectExec("INSERT INTO saga_event_log").
		WithArgs("saga-1", "create").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO saga_event_log").
		WithArgs("saga-1", "create").
		WillReturnResult(sqlmock.NewResult(0, 0))

	applied, err := log.MarkProcessed(context.Background(), "saga-1", saga.StepCreate)
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = log.MarkProcessed(context.Background(), "saga-1", saga.StepCreate)
	require.NoError(t, err)
	assert.False(t, applied)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnmarkReleasesStepForRetry(t *testing.T) {
	db, mock := newMockDB(t)
	log := NewPostgresSagaEventLog(db)

	mock.ExpectExec("DELETE FROM saga_event_log").
		WithArgs("saga-1", "create").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO saga_event_log").
		WithArgs("saga-1", "create").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, log.Unmark(context.Background(), "saga-1", saga.StepCreate))

	// A released step applies again on redelivery.
	applied, err := log.MarkProcessed(context.Background(), "saga-1", saga.StepCreate)
	require.NoError(t, err)
	assert.True(t, applied)

	assert.NoError(t, mock.ExpectationsWereMet())
}
