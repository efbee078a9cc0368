package calendar

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/plannery/backend/domain"
	"github.com/plannery/backend/repository"
)

// SyncResult reports the outcome of a sync pass.
type SyncResult struct {
	SyncedConnections int       `json:"synced_connections"`
	LastSyncedAt      time.Time `json:"last_synced_at"`
}

// EventSource fetches the current events for one connection from its
// provider. Implementations own OAuth token handling.
type EventSource interface {
	FetchEvents(ctx context.Context, conn domain.CalendarConnection) ([]domain.ExternalEvent, error)
}

type UseCase struct {
	calendars repository.CalendarRepository
	source    EventSource
	logger    *zap.Logger
	now       func() time.Time
}

func New(calendars repository.CalendarRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		calendars: calendars,
		logger:    logger,
		now:       time.Now,
	}
}

// WithSource attaches the provider fetcher. Without one, Sync only refreshes
// the bookkeeping and the cache keeps its last contents.
func (uc *UseCase) WithSource(source EventSource) *UseCase {
	uc.source = source
	return uc
}

// ListEvents returns cached external events inside the range. The cache is
// read-only; this service never mutates provider data.
func (uc *UseCase) ListEvents(ctx context.Context, filter repository.EventFilter) ([]domain.ExternalEvent, error) {
	if filter.From.IsZero() || filter.To.IsZero() || filter.To.Before(filter.From) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "event range requires from <= to")
	}
	if filter.Provider != "" && filter.Provider != domain.ProviderGoogle && filter.Provider != domain.ProviderMicrosoft {
		return nil, domain.NewError(domain.ErrCodeInvalid, "unknown calendar provider")
	}
	return uc.calendars.ListEvents(ctx, filter)
}

func (uc *UseCase) ListConnections(ctx context.Context, userID string) ([]domain.CalendarConnection, error) {
	return uc.calendars.ListConnections(ctx, userID)
}

// Sync refreshes the user's connections (or one connection when connectionID
// is set): when an event source is attached the cached events are replaced
// with the provider's current set, then last_synced_at is stamped.
func (uc *UseCase) Sync(ctx context.Context, userID, connectionID string) (*SyncResult, error) {
	var connections []domain.CalendarConnection
	if connectionID != "" {
		conn, err := uc.calendars.GetConnection(ctx, connectionID)
		if err != nil {
			return nil, err
		}
		if conn.UserID != userID {
			return nil, domain.ErrConnectionNotFound
		}
		connections = []domain.CalendarConnection{*conn}
	} else {
		var err error
		connections, err = uc.calendars.ListConnections(ctx, userID)
		if err != nil {
			return nil, err
		}
	}
	if len(connections) == 0 {
		return nil, domain.ErrConnectionNotFound
	}

	now := uc.now()
	synced := 0
	for _, conn := range connections {
		if uc.source != nil {
			events, err := uc.source.FetchEvents(ctx, conn)
			if err != nil {
				uc.logger.Warn("provider fetch failed, keeping cached events",
					zap.String("connection_id", conn.ID), zap.Error(err))
				continue
			}
			for i := range events {
				events[i].UserID = conn.UserID
				events[i].ConnectionID = conn.ID
			}
			if err := uc.calendars.ReplaceEvents(ctx, conn.ID, events); err != nil {
				uc.logger.Warn("failed to replace cached events",
					zap.String("connection_id", conn.ID), zap.Error(err))
				continue
			}
		}
		if err := uc.calendars.TouchSynced(ctx, conn.ID, now); err != nil {
			uc.logger.Warn("failed to stamp calendar sync",
				zap.String("connection_id", conn.ID), zap.Error(err))
			continue
		}
		synced++
	}

	return &SyncResult{SyncedConnections: synced, LastSyncedAt: now}, nil
}
