package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/motorsmith/work-order-system/order-service/domain"
	"github.com/motorsmith/work-order-system/shared/models"
	"github.com/motorsmith/work-order-system/shared/saga"
)

// PostgresWorkOrderRepository implements WorkOrderRepository using PostgreSQL
type PostgresWorkOrderRepository struct {
	db *sqlx.DB
}

// NewPostgresWorkOrderRepository creates a new PostgresWorkOrderRepository
func NewPostgresWorkOrderRepository(db *sqlx.DB) *PostgresWorkOrderRepository {
	return &PostgresWorkOrderRepository{db: db}
}

// postgresWorkOrder represents a work order in the database
type postgresWorkOrder struct {
	ID                  int64      `db:"id"`
	CustomerID          int64      `db:"customer_id"`
	VehicleID           int64      `db:"vehicle_id"`
	Protocol            string     `db:"protocol"`
	Description         string     `db:"description"`
	Status              string     `db:"status"`
	TotalAmount         int64      `db:"total_amount"`
	Currency            string     `db:"currency"`
	InitPoint           *string    `db:"init_point"`
	PaymentPreferenceID *string    `db:"payment_preference_id"`
	StartedAt           *time.Time `db:"started_at"`
	FinishedAt          *time.Time `db:"finished_at"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`
}

// postgresWorkOrderItem represents a budget line in the database
type postgresWorkOrderItem struct {
	ID          int64  `db:"id"`
	WorkOrderID int64  `db:"work_order_id"`
	PartID      int64  `db:"part_id"`
	Description string `db:"description"`
	Quantity    int    `db:"quantity"`
	UnitPrice   int64  `db:"unit_price"`
	Currency    string `db:"currency"`
}

// postgresStatusLog represents a status history entry in the database
type postgresStatusLog struct {
	ID           string    `db:"id"`
	WorkOrderID  int64     `db:"work_order_id"`
	FromStatus   string    `db:"from_status"`
	ToStatus     string    `db:"to_status"`
	Step         string    `db:"step"`
	Reason       string    `db:"reason"`
	Compensation bool      `db:"compensation"`
	CreatedAt    time.Time `db:"created_at"`
}

// Create inserts the work order, its items and the initial history entry in
// one transaction. The protocol is derived from the id the database assigns,
// inside the same transaction, so concurrent creates cannot collide on it.
func (r *PostgresWorkOrderRepository) Create(ctx context.Context, wo *domain.WorkOrder) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	query := `
		INSERT INTO work_orders (
			customer_id, vehicle_id, description, status,
			total_amount, currency, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err = tx.QueryRowxContext(ctx, query,
		wo.CustomerID,
		wo.VehicleID,
		wo.Description,
		string(wo.Status),
		wo.TotalAmount.Amount,
		wo.TotalAmount.Currency,
		wo.Timestamps.CreatedAt,
		wo.Timestamps.UpdatedAt,
	).Scan(&wo.ID)
	if err != nil {
		return errors.Wrap(err, "failed to insert work order")
	}

	wo.Protocol = domain.GenerateProtocol(wo.Timestamps.CreatedAt, wo.ID)
	_, err = tx.ExecContext(ctx,
		`UPDATE work_orders SET protocol = $1 WHERE id = $2`,
		wo.Protocol, wo.ID,
	)
	if err != nil {
		return errors.Wrap(err, "failed to assign protocol")
	}

	itemQuery := `
		INSERT INTO work_order_items (
			work_order_id, part_id, description, quantity, unit_price, currency
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	for i := range wo.Items {
		item := &wo.Items[i]
		item.WorkOrderID = wo.ID

		err = tx.QueryRowxContext(ctx, itemQuery,
			item.WorkOrderID,
			item.PartID,
			item.Description,
			item.Quantity,
			item.UnitPrice.Amount,
			item.UnitPrice.Currency,
		).Scan(&item.ID)
		if err != nil {
			return errors.Wrap(err, "failed to insert work order item")
		}
	}

	initial := domain.NewStatusLog(wo.ID, wo.Status, wo.Status, "", "", false)
	if _, err := tx.NamedExecContext(ctx, statusLogInsertQuery, r.logToPostgres(initial)); err != nil {
		return errors.Wrap(err, "failed to insert initial status log")
	}

	return tx.Commit()
}

// FindByID finds a work order by ID, items included
func (r *PostgresWorkOrderRepository) FindByID(ctx context.Context, id int64) (*domain.WorkOrder, error) {
	query := `
		SELECT id, customer_id, vehicle_id, protocol, description, status,
			   total_amount, currency, init_point, payment_preference_id,
			   started_at, finished_at, created_at, updated_at
		FROM work_orders
		WHERE id = $1`

	var pgWO postgresWorkOrder
	err := r.db.GetContext(ctx, &pgWO, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Work order not found
		}
		return nil, errors.Wrap(err, "failed to find work order")
	}

	itemQuery := `
		SELECT id, work_order_id, part_id, description, quantity, unit_price, currency
		FROM work_order_items
		WHERE work_order_id = $1
		ORDER BY id ASC`

	var pgItems []postgresWorkOrderItem
	err = r.db.SelectContext(ctx, &pgItems, itemQuery, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find work order items")
	}

	return r.toDomain(&pgWO, pgItems), nil
}

// UpdateStatus overwrites the status unconditionally
func (r *PostgresWorkOrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.Status, startedAt, finishedAt *time.Time) error {
	query := `
		UPDATE work_orders
		SET status = :status,
			started_at = COALESCE(:started_at, started_at),
			finished_at = COALESCE(:finished_at, finished_at),
			updated_at = :updated_at
		WHERE id = :id`

	_, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":          id,
		"status":      string(status),
		"started_at":  startedAt,
		"finished_at": finishedAt,
		"updated_at":  time.Now(),
	})
	if err != nil {
		return errors.Wrap(err, "failed to update work order status")
	}

	return nil
}

// UpdateStatusFrom advances the status only when the stored status still
// equals expected
func (r *PostgresWorkOrderRepository) UpdateStatusFrom(ctx context.Context, id int64, expected, next domain.Status) error {
	query := `
		UPDATE work_orders
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4`

	res, err := r.db.ExecContext(ctx, query, string(next), time.Now(), id, string(expected))
	if err != nil {
		return errors.Wrap(err, "failed to update work order status")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}

	if affected == 0 {
		return errors.Wrapf(domain.ErrStatusConflict,
			"work order %d no longer in status %s", id, expected)
	}

	return nil
}

// SetPaymentLink stores the checkout link for a work order
func (r *PostgresWorkOrderRepository) SetPaymentLink(ctx context.Context, id int64, initPoint, preferenceID string) error {
	query := `
		UPDATE work_orders
		SET init_point = $1, payment_preference_id = $2, updated_at = $3
		WHERE id = $4`

	_, err := r.db.ExecContext(ctx, query, initPoint, preferenceID, time.Now(), id)
	if err != nil {
		return errors.Wrap(err, "failed to set payment link")
	}

	return nil
}

const statusLogInsertQuery = `
	INSERT INTO work_order_status_logs (
		id, work_order_id, from_status, to_status, step, reason,
		compensation, created_at
	) VALUES (
		:id, :work_order_id, :from_status, :to_status, :step, :reason,
		:compensation, :created_at
	)`

// AppendStatusLog inserts one history entry
func (r *PostgresWorkOrderRepository) AppendStatusLog(ctx context.Context, log *domain.StatusLog) error {
	_, err := r.db.NamedExecContext(ctx, statusLogInsertQuery, r.logToPostgres(log))
	if err != nil {
		return errors.Wrap(err, "failed to insert status log")
	}

	return nil
}

// StatusHistory returns the history entries of a work order, oldest first
func (r *PostgresWorkOrderRepository) StatusHistory(ctx context.Context, workOrderID int64) ([]*domain.StatusLog, error) {
	query := `
		SELECT id, work_order_id, from_status, to_status, step, reason,
			   compensation, created_at
		FROM work_order_status_logs
		WHERE work_order_id = $1
		ORDER BY created_at ASC`

	var pgLogs []postgresStatusLog
	err := r.db.SelectContext(ctx, &pgLogs, query, workOrderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find status history")
	}

	logs := make([]*domain.StatusLog, len(pgLogs))
	for i, pgLog := range pgLogs {
		logs[i] = r.logToDomain(&pgLog)
	}

	return logs, nil
}

// toDomain converts postgres models to a domain work order
func (r *PostgresWorkOrderRepository) toDomain(pgWO *postgresWorkOrder, pgItems []postgresWorkOrderItem) *domain.WorkOrder {
	items := make([]domain.WorkOrderItem, len(pgItems))
	for i, pgItem := range pgItems {
		items[i] = domain.WorkOrderItem{
			ID:          pgItem.ID,
			WorkOrderID: pgItem.WorkOrderID,
			PartID:      pgItem.PartID,
			Description: pgItem.Description,
			Quantity:    pgItem.Quantity,
			UnitPrice:   models.NewMoney(pgItem.UnitPrice, pgItem.Currency),
		}
	}

	wo := &domain.WorkOrder{
		ID:          pgWO.ID,
		CustomerID:  pgWO.CustomerID,
		VehicleID:   pgWO.VehicleID,
		Protocol:    pgWO.Protocol,
		Description: pgWO.Description,
		Status:      domain.Status(pgWO.Status),
		TotalAmount: models.NewMoney(pgWO.TotalAmount, pgWO.Currency),
		Items:       items,
		StartedAt:   pgWO.StartedAt,
		FinishedAt:  pgWO.FinishedAt,
		Timestamps: models.Timestamps{
			CreatedAt: pgWO.CreatedAt,
			UpdatedAt: pgWO.UpdatedAt,
		},
	}

	if pgWO.InitPoint != nil {
		wo.InitPoint = *pgWO.InitPoint
	}
	if pgWO.PaymentPreferenceID != nil {
		wo.PaymentPreferenceID = *pgWO.PaymentPreferenceID
	}

	return wo
}

// logToPostgres converts a domain status log to the postgres model
func (r *PostgresWorkOrderRepository) logToPostgres(log *domain.StatusLog) *postgresStatusLog {
	return &postgresStatusLog{
		ID:           log.ID.String(),
		WorkOrderID:  log.WorkOrderID,
		FromStatus:   string(log.FromStatus),
		ToStatus:     string(log.ToStatus),
		Step:         log.Step.String(),
		Reason:       log.Reason,
		Compensation: log.Compensation,
		CreatedAt:    log.CreatedAt,
	}
}

// logToDomain converts the postgres model to a domain status log
func (r *PostgresWorkOrderRepository) logToDomain(pgLog *postgresStatusLog) *domain.StatusLog {
	return &domain.StatusLog{
		ID:           models.ID(pgLog.ID),
		WorkOrderID:  pgLog.WorkOrderID,
		FromStatus:   domain.Status(pgLog.FromStatus),
		ToStatus:     domain.Status(pgLog.ToStatus),
		Step:         saga.Step(pgLog.Step),
		Reason:       pgLog.Reason,
		Compensation: pgLog.Compensation,
		CreatedAt:    pgLog.CreatedAt,
	}
}
