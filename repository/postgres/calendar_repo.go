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

type calendarRepository struct {
	pool *pgxpool.Pool
}

// NewCalendarRepository returns a Postgres-backed calendar cache repository.
func NewCalendarRepository(pool *pgxpool.Pool) repository.CalendarRepository {
	return &calendarRepository{pool: pool}
}

func (r *calendarRepository) ListConnections(ctx context.Context, userID string) ([]domain.CalendarConnection, error) {
	const query = `
	SELECT id, user_id, provider, calendar_id, last_synced_at, created_at
	FROM calendar_connections
	WHERE user_id = $1
	ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var connections []domain.CalendarConnection
	for rows.Next() {
		conn, err := scanConnection(rows)
		if err != nil {
			return nil, err
		}
		connections = append(connections, *conn)
	}
	return connections, rows.Err()
}

func (r *calendarRepository) GetConnection(ctx context.Context, id string) (*domain.CalendarConnection, error) {
	const query = `
	SELECT id, user_id, provider, calendar_id, last_synced_at, created_at
	FROM calendar_connections
	WHERE id = $1
	`
	return scanConnection(r.pool.QueryRow(ctx, query, id))
}

func (r *calendarRepository) TouchSynced(ctx context.Context, connectionID string, at time.Time) error {
	const query = `UPDATE calendar_connections SET last_synced_at = $2 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, connectionID, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConnectionNotFound
	}
	return nil
}

func (r *calendarRepository) ListEvents(ctx context.Context, filter repository.EventFilter) ([]domain.ExternalEvent, error) {
	const query = `
	SELECT e.id, e.user_id, e.connection_id, e.external_id, e.title, e.description,
		e.start_time, e.end_time, e.is_all_day, e.location, c.provider, e.synced_at
	FROM external_events e
	JOIN calendar_connections c ON c.id = e.connection_id
	WHERE e.user_id = $1
	  AND e.start_time >= $2
	  AND e.end_time <= $3
	  AND ($4 = '' OR c.provider = $4)
	ORDER BY e.start_time ASC
	LIMIT $5
	`
	rows, err := r.pool.Query(ctx, query,
		filter.UserID,
		filter.From,
		filter.To,
		filter.Provider,
		clampLimit(filter.Limit),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.ExternalEvent
	for rows.Next() {
		var event domain.ExternalEvent
		var description, location *string
		if err := rows.Scan(
			&event.ID,
			&event.UserID,
			&event.ConnectionID,
			&event.ExternalID,
			&event.Title,
			&description,
			&event.StartTime,
			&event.EndTime,
			&event.AllDay,
			&location,
			&event.Provider,
			&event.SyncedAt,
		); err != nil {
			return nil, err
		}
		if description != nil {
			event.Description = *description
		}
		if location != nil {
			event.Location = *location
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// ReplaceEvents swaps the cached event set for one connection inside a single
// transaction, so readers never observe a half-synced cache.
func (r *calendarRepository) ReplaceEvents(ctx context.Context, connectionID string, events []domain.ExternalEvent) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM external_events WHERE connection_id = $1`, connectionID); err != nil {
		return err
	}

	const insert = `
	INSERT INTO external_events (id, user_id, connection_id, external_id, title, description,
		start_time, end_time, is_all_day, location, synced_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	for i := range events {
		event := &events[i]
		if event.ID == "" {
			event.ID = uuid.NewString()
		}
		if event.SyncedAt.IsZero() {
			event.SyncedAt = time.Now()
		}
		if _, err := tx.Exec(ctx, insert,
			event.ID,
			event.UserID,
			connectionID,
			event.ExternalID,
			event.Title,
			nullString(event.Description),
			event.StartTime,
			event.EndTime,
			event.AllDay,
			nullString(event.Location),
			event.SyncedAt,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func scanConnection(row pgx.Row) (*domain.CalendarConnection, error) {
	var conn domain.CalendarConnection
	var calendarID *string

	if err := row.Scan(
		&conn.ID,
		&conn.UserID,
		&conn.Provider,
		&calendarID,
		&conn.LastSyncedAt,
		&conn.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrConnectionNotFound
		}
		return nil, err
	}
	if calendarID != nil {
		conn.CalendarID = *calendarID
	}
	return &conn, nil
}
