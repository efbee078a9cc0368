package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plannery/backend/domain"
	"github.com/plannery/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

const taskColumns = `id, user_id, title, description, estimated_duration, manual_duration,
	category, priority, due_date, scheduled_date, scheduled_time, completed, completed_at,
	created_at, updated_at`

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	return scanTask(row)
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	query := `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE ($1 = '' OR user_id = $1)
	  AND ($2 = '' OR category = $2)
	  AND ($3::date IS NULL OR due_date = $3)
	  AND ($4::boolean IS NULL OR (scheduled_date IS NOT NULL) = $4)
	  AND ($5::boolean IS NULL OR completed = $5)
	ORDER BY due_date ASC NULLS LAST, created_at DESC
	LIMIT $6 OFFSET $7
	`
	rows, err := r.pool.Query(ctx, query,
		filter.UserID,
		filter.Category,
		nullDate(filter.DueDate),
		filter.Scheduled,
		filter.Completed,
		clampLimit(filter.Limit),
		filter.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tasks (id, user_id, title, description, estimated_duration, manual_duration,
		category, priority, due_date, scheduled_date, scheduled_time, completed, completed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	RETURNING created_at, updated_at
	`

	schedDate, schedTime := scheduleParams(task.Schedule)

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.EstimatedDuration,
		task.ManualDuration,
		string(task.Category),
		string(task.Priority),
		nullDate(task.DueDate),
		schedDate,
		schedTime,
		task.Completed,
		task.CompletedAt,
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE tasks
	SET title = $2,
		description = $3,
		estimated_duration = $4,
		manual_duration = $5,
		category = $6,
		priority = $7,
		due_date = $8,
		scheduled_date = $9,
		scheduled_time = $10,
		completed = $11,
		completed_at = $12,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`

	schedDate, schedTime := scheduleParams(task.Schedule)

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.EstimatedDuration,
		task.ManualDuration,
		string(task.Category),
		string(task.Priority),
		nullDate(task.DueDate),
		schedDate,
		schedTime,
		task.Completed,
		task.CompletedAt,
	).Scan(&task.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}

	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// scheduleParams splits the schedule value into its two columns; both are
// NULL or both are set, matching the tasks_schedule_paired check constraint.
func scheduleParams(s *domain.Schedule) (interface{}, interface{}) {
	if s == nil {
		return nil, nil
	}
	return nullDate(s.Date), s.Time
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	var (
		due       *time.Time
		schedDate *time.Time
		schedTime *string
	)

	if err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.EstimatedDuration,
		&task.ManualDuration,
		&task.Category,
		&task.Priority,
		&due,
		&schedDate,
		&schedTime,
		&task.Completed,
		&task.CompletedAt,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.DueDate = dateString(due)
	if schedDate != nil && schedTime != nil {
		task.Schedule = &domain.Schedule{Date: dateString(schedDate), Time: *schedTime}
	}

	return &task, nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 100
	}
	return limit
}
