package domain

import "time"

// Calendar providers the service can mirror events from.
const (
	ProviderGoogle    = "google"
	ProviderMicrosoft = "microsoft"
)

// CalendarConnection records a linked external calendar account. Token
// exchange happens in the OAuth collaborator; this service only tracks the
// connection and its sync bookkeeping.
type CalendarConnection struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	Provider     string     `json:"provider"`
	CalendarID   string     `json:"calendar_id,omitempty"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ExternalEvent is a read-only cached event from a connected calendar. It is
// rendered alongside scheduled tasks but never mutated here.
type ExternalEvent struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ConnectionID string    `json:"connection_id"`
	ExternalID   string    `json:"external_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	AllDay       bool      `json:"is_all_day"`
	Location     string    `json:"location,omitempty"`
	Provider     string    `json:"source"`
	SyncedAt     time.Time `json:"synced_at"`
}
