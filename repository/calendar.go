package repository

import (
	"context"
	"time"

	"github.com/plannery/backend/domain"
)

// EventFilter selects cached external events inside a time range, optionally
// restricted to one provider.
type EventFilter struct {
	UserID   string
	From     time.Time
	To       time.Time
	Provider string
	Limit    int
}

type CalendarRepository interface {
	ListConnections(ctx context.Context, userID string) ([]domain.CalendarConnection, error)
	GetConnection(ctx context.Context, id string) (*domain.CalendarConnection, error)
	TouchSynced(ctx context.Context, connectionID string, at time.Time) error
	ListEvents(ctx context.Context, filter EventFilter) ([]domain.ExternalEvent, error)
	ReplaceEvents(ctx context.Context, connectionID string, events []domain.ExternalEvent) error
}
