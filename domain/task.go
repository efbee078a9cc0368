package domain

import (
	"encoding/json"
	"time"

	"github.com/plannery/backend/pkg/timegrid"
)

// Category classifies a task for filtering and display.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryHealth   Category = "health"
)

// Priority represents the importance level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultDurationMinutes is used whenever neither the estimator nor the user
// supplied a duration.
const DefaultDurationMinutes = 30

func IsValidCategory(c Category) bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryHealth:
		return true
	default:
		return false
	}
}

func IsValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Schedule places a task on the calendar grid. Both fields are always set
// together; a partially-filled schedule never exists.
type Schedule struct {
	Date string `json:"date"` // "2006-01-02"
	Time string `json:"time"` // "15:04", quarter-aligned within the grid
}

// Task is the core planning entity.
type Task struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	Title             string     `json:"title"`
	Description       string     `json:"description,omitempty"`
	EstimatedDuration *int       `json:"estimated_duration,omitempty"` // minutes, estimator-provided
	ManualDuration    *int       `json:"manual_duration,omitempty"`    // minutes, user override
	Category          Category   `json:"category"`
	Priority          Priority   `json:"priority"`
	DueDate           string     `json:"due_date,omitempty"` // "2006-01-02"
	Schedule          *Schedule  `json:"schedule,omitempty"`
	Completed         bool       `json:"completed"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// MarshalJSON adds the rendered duration so clients show "1h 30m" style
// labels without reimplementing the formatting rules.
func (t Task) MarshalJSON() ([]byte, error) {
	type taskAlias Task
	return json.Marshal(struct {
		taskAlias
		DurationDisplay string `json:"duration_display"`
	}{
		taskAlias:       taskAlias(t),
		DurationDisplay: timegrid.FormatDuration(t.EffectiveDuration()),
	})
}

// EffectiveDuration returns the manual override when set, otherwise the
// estimate, otherwise the 30-minute default. Always positive.
func (t *Task) EffectiveDuration() int {
	if t == nil {
		return DefaultDurationMinutes
	}
	if t.ManualDuration != nil && *t.ManualDuration > 0 {
		return *t.ManualDuration
	}
	if t.EstimatedDuration != nil && *t.EstimatedDuration > 0 {
		return *t.EstimatedDuration
	}
	return DefaultDurationMinutes
}

// IsScheduled reports whether the task holds a calendar slot.
func (t *Task) IsScheduled() bool {
	return t != nil && t.Schedule != nil
}

// PlacementDate resolves which day the task belongs to on the calendar:
// the scheduled date wins, the due date applies only when no schedule exists.
func (t *Task) PlacementDate() string {
	if t == nil {
		return ""
	}
	if t.Schedule != nil {
		return t.Schedule.Date
	}
	return t.DueDate
}

// ScheduleAt assigns (or replaces) the task's calendar slot. The minute must
// already be snapped to a quarter boundary and the hour must fall inside the
// visible grid. Scheduling twice with identical arguments leaves the task in
// the same state.
func (t *Task) ScheduleAt(date string, hour, minute int) error {
	if t == nil {
		return ErrInvalidPayload
	}
	if date == "" {
		return NewError(ErrCodeInvalid, "schedule requires a date")
	}
	if _, err := time.Parse(timegrid.DateLayout, date); err != nil {
		return WrapError(ErrCodeInvalid, "malformed schedule date", err)
	}
	if !timegrid.InGrid(hour) {
		return NewError(ErrCodeInvalid, "schedule hour outside the day grid")
	}
	if !timegrid.ValidQuarter(minute) {
		return NewError(ErrCodeInvalid, "schedule minute not on a quarter boundary")
	}
	t.Schedule = &Schedule{Date: date, Time: timegrid.FormatTime(hour, minute)}
	return nil
}

// Unschedule returns the task to the backlog. Completion and every other
// field stay untouched.
func (t *Task) Unschedule() {
	if t == nil {
		return
	}
	t.Schedule = nil
}

// SetCompleted toggles completion, stamping or clearing completed-at.
// Completing a task does not unschedule it.
func (t *Task) SetCompleted(done bool, now time.Time) {
	if t == nil {
		return
	}
	if done && !t.Completed {
		t.CompletedAt = &now
	}
	if !done {
		t.CompletedAt = nil
	}
	t.Completed = done
}
