package repository

import (
	"context"

	"github.com/plannery/backend/domain"
)

type TaskHistoryRepository interface {
	Record(ctx context.Context, entry *domain.TaskHistory) error
	ListByTask(ctx context.Context, taskID string, limit int) ([]domain.TaskHistory, error)
}
