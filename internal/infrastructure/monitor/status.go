package monitor

import "time"

// Status is a point-in-time snapshot of dependency health. BufferSize counts
// writes waiting to be replayed into Postgres.
type Status struct {
	PostgreSQL bool      `json:"postgresql"`
	Redis      bool      `json:"redis"`
	Buffer     bool      `json:"buffer"`
	BufferSize int       `json:"buffer_size"`
	LastCheck  time.Time `json:"last_check"`
}
