package infrastructure

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/motorsmith/work-order-system/shared/saga"
)

// PostgresSagaEventLog implements SagaEventLog using PostgreSQL. The unique
// index on (saga_id, step) makes MarkProcessed the dedup gate for redelivered
// messages.
type PostgresSagaEventLog struct {
	db *sqlx.DB
}

// NewPostgresSagaEventLog creates a new PostgresSagaEventLog
func NewPostgresSagaEventLog(db *sqlx.DB) *PostgresSagaEventLog {
	return &PostgresSagaEventLog{db: db}
}

// MarkProcessed records the (saga, step) pair. Returns applied=false when the
// pair was already recorded.
func (l *PostgresSagaEventLog) MarkProcessed(ctx context.Context, sagaID string, step saga.Step) (bool, error) {
	query := `
		INSERT INTO saga_event_log (saga_id, step, processed_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (saga_id, step) DO NOTHING`

	res, err := l.db.ExecContext(ctx, query, sagaID, step.String())
	if err != nil {
		return false, errors.Wrap(err, "failed to record saga step")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "failed to read affected rows")
	}

	return affected > 0, nil
}

// Unmark removes a recorded (saga, step) pair. A step whose effects failed to
// land releases its marker so the broker's redelivery can retry it.
func (l *PostgresSagaEventLog) Unmark(ctx context.Context, sagaID string, step saga.Step) error {
	query := `DELETE FROM saga_event_log WHERE saga_id = $1 AND step = $2`

	if _, err := l.db.ExecContext(ctx, query, sagaID, step.String()); err != nil {
		return errors.Wrap(err, "failed to release saga step")
	}

	return nil
}
