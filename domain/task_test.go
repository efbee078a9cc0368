package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func TestEffectiveDuration(t *testing.T) {
	tests := []struct {
		name string
		task Task
		want int
	}{
		{"default when nothing set", Task{}, 30},
		{"estimate wins over default", Task{EstimatedDuration: intPtr(45)}, 45},
		{"manual wins over estimate", Task{EstimatedDuration: intPtr(45), ManualDuration: intPtr(90)}, 90},
		{"non-positive manual ignored", Task{ManualDuration: intPtr(0), EstimatedDuration: intPtr(20)}, 20},
		{"non-positive estimate falls back", Task{EstimatedDuration: intPtr(-5)}, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.EffectiveDuration(); got != tt.want {
				t.Fatalf("EffectiveDuration() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScheduleUnscheduleRoundTrip(t *testing.T) {
	task := Task{ID: "t1", Title: "Write report", DueDate: "2024-03-01", Priority: PriorityHigh}
	before := task

	if err := task.ScheduleAt("2024-03-01", 14, 30); err != nil {
		t.Fatalf("ScheduleAt: %v", err)
	}
	if !task.IsScheduled() {
		t.Fatal("task should be scheduled")
	}
	if task.Schedule.Date != "2024-03-01" || task.Schedule.Time != "14:30" {
		t.Fatalf("schedule = %+v, want (2024-03-01, 14:30)", *task.Schedule)
	}

	task.Unschedule()
	if task.IsScheduled() {
		t.Fatal("task should be unscheduled after round trip")
	}
	if task.Title != before.Title || task.DueDate != before.DueDate || task.Priority != before.Priority || task.Completed != before.Completed {
		t.Fatal("unschedule touched non-schedule fields")
	}
}

func TestScheduleReplacesExisting(t *testing.T) {
	var task Task
	if err := task.ScheduleAt("2024-03-01", 9, 0); err != nil {
		t.Fatalf("first schedule: %v", err)
	}
	if err := task.ScheduleAt("2024-03-02", 16, 45); err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if task.Schedule.Date != "2024-03-02" || task.Schedule.Time != "16:45" {
		t.Fatalf("schedule = %+v, want the latest assignment", *task.Schedule)
	}
}

func TestScheduleAtIdempotent(t *testing.T) {
	var task Task
	if err := task.ScheduleAt("2024-03-01", 14, 30); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	first := *task.Schedule
	if err := task.ScheduleAt("2024-03-01", 14, 30); err != nil {
		t.Fatalf("repeat schedule: %v", err)
	}
	if *task.Schedule != first {
		t.Fatalf("repeated schedule changed state: %+v vs %+v", *task.Schedule, first)
	}
}

func TestScheduleAtRejectsInvalidSlots(t *testing.T) {
	tests := []struct {
		name   string
		date   string
		hour   int
		minute int
	}{
		{"missing date", "", 14, 30},
		{"malformed date", "03/01/2024", 14, 30},
		{"hour before grid", "2024-03-01", 5, 0},
		{"hour after grid", "2024-03-01", 23, 0},
		{"minute off the quarter", "2024-03-01", 14, 20},
		{"minute rolled past the hour", "2024-03-01", 14, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var task Task
			if err := task.ScheduleAt(tt.date, tt.hour, tt.minute); err == nil {
				t.Fatal("expected a validation error")
			}
			if task.IsScheduled() {
				t.Fatal("failed schedule must leave the task unscheduled")
			}
		})
	}
}

func TestCompletionKeepsSchedule(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	var task Task
	if err := task.ScheduleAt("2024-03-01", 10, 15); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	task.SetCompleted(true, now)
	if !task.Completed || task.CompletedAt == nil || !task.CompletedAt.Equal(now) {
		t.Fatal("completion not recorded")
	}
	if !task.IsScheduled() {
		t.Fatal("completing must not unschedule")
	}
	task.SetCompleted(false, now)
	if task.Completed || task.CompletedAt != nil {
		t.Fatal("reopening must clear completed_at")
	}
}

func TestPlacementDatePrecedence(t *testing.T) {
	scheduled := Task{DueDate: "2024-03-05"}
	if err := scheduled.ScheduleAt("2024-03-01", 9, 0); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if got := scheduled.PlacementDate(); got != "2024-03-01" {
		t.Fatalf("scheduled date should win, got %q", got)
	}
	unscheduled := Task{DueDate: "2024-03-05"}
	if got := unscheduled.PlacementDate(); got != "2024-03-05" {
		t.Fatalf("due date should apply without a schedule, got %q", got)
	}
}

func TestTaskJSONRendersDuration(t *testing.T) {
	tests := []struct {
		name string
		task Task
		want string
	}{
		{"manual override", Task{ID: "t1", Title: "Deep work", ManualDuration: intPtr(90)}, `"duration_display":"1h 30m"`},
		{"estimate", Task{ID: "t2", Title: "Email", EstimatedDuration: intPtr(15)}, `"duration_display":"15min"`},
		{"default", Task{ID: "t3", Title: "Errand"}, `"duration_display":"30min"`},
		{"whole hours", Task{ID: "t4", Title: "Workshop", ManualDuration: intPtr(120)}, `"duration_display":"2h"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := json.Marshal(tt.task)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if !strings.Contains(string(encoded), tt.want) {
				t.Fatalf("payload %s missing %s", encoded, tt.want)
			}
		})
	}
}

func TestEnumValidation(t *testing.T) {
	if !IsValidCategory(CategoryWork) || !IsValidCategory(CategoryHealth) {
		t.Error("known categories rejected")
	}
	if IsValidCategory("chores") || IsValidCategory("") {
		t.Error("unknown categories accepted")
	}
	if !IsValidPriority(PriorityLow) || !IsValidPriority(PriorityHigh) {
		t.Error("known priorities rejected")
	}
	if IsValidPriority("urgent") {
		t.Error("unknown priority accepted")
	}
}
