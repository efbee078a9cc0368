package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plannery/backend/domain"
	"github.com/plannery/backend/repository"
)

type historyRepository struct {
	pool *pgxpool.Pool
}

// NewTaskHistoryRepository returns a Postgres-backed task audit trail.
func NewTaskHistoryRepository(pool *pgxpool.Pool) repository.TaskHistoryRepository {
	return &historyRepository{pool: pool}
}

func (r *historyRepository) Record(ctx context.Context, entry *domain.TaskHistory) error {
	if entry == nil || entry.TaskID == "" || entry.Action == "" {
		return domain.ErrInvalidPayload
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	const query = `
	INSERT INTO task_history (id, task_id, action, changes, created_at)
	VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.TaskID,
		entry.Action,
		marshalMap(entry.Changes),
		entry.CreatedAt,
	)
	return err
}

func (r *historyRepository) ListByTask(ctx context.Context, taskID string, limit int) ([]domain.TaskHistory, error) {
	const query = `
	SELECT id, task_id, action, changes, created_at
	FROM task_history
	WHERE task_id = $1
	ORDER BY created_at DESC
	LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, taskID, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.TaskHistory
	for rows.Next() {
		var entry domain.TaskHistory
		var changes []byte
		if err := rows.Scan(&entry.ID, &entry.TaskID, &entry.Action, &changes, &entry.CreatedAt); err != nil {
			return nil, err
		}
		if len(changes) > 0 {
			_ = json.Unmarshal(changes, &entry.Changes)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
