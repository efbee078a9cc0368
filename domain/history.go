package domain

import "time"

// Task history actions.
const (
	HistoryCreated     = "created"
	HistoryUpdated     = "updated"
	HistoryScheduled   = "scheduled"
	HistoryUnscheduled = "unscheduled"
	HistoryCompleted   = "completed"
)

// TaskHistory is one audit record of a task transition. Changes holds the
// fields that moved, keyed by name, with prior values under "previous_*" keys.
type TaskHistory struct {
	ID        string            `json:"id"`
	TaskID    string            `json:"task_id"`
	Action    string            `json:"action"`
	Changes   map[string]string `json:"changes,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
