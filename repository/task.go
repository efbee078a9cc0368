package repository

import (
	"context"

	"github.com/plannery/backend/domain"
)

// TaskFilter narrows task listings. Pointer fields are tri-state: nil means
// "don't filter".
type TaskFilter struct {
	UserID    string
	DueDate   string // "2006-01-02"
	Category  string
	Scheduled *bool
	Completed *bool
	Limit     int
	Offset    int
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
}
