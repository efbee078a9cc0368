package postgres

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/plannery/backend/pkg/timegrid"
)

// isUniqueViolation reports a Postgres 23505 error (duplicate key).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// marshalMap encodes a string map for a JSONB NOT NULL column. Empty input
// must become an empty object, not SQL NULL.
func marshalMap(data map[string]string) []byte {
	if len(data) == 0 {
		return []byte("{}")
	}
	b, err := json.Marshal(data)
	if err != nil {
		return []byte("{}")
	}
	return b
}

// nullDate converts a wall-clock date string to a DATE parameter, or NULL.
func nullDate(value string) interface{} {
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(timegrid.DateLayout, value)
	if err != nil {
		return nil
	}
	return parsed
}

// dateString converts a scanned DATE back to the wall-clock string form.
func dateString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timegrid.DateLayout)
}

func nullString(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}
