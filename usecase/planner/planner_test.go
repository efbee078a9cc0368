package planner

import (
	"context"
	"testing"
	"time"

	"github.com/plannery/backend/domain"
	"github.com/plannery/backend/repository"
)

type staticTaskRepo struct {
	tasks []domain.Task
}

func (r *staticTaskRepo) GetByID(context.Context, string) (*domain.Task, error) {
	return nil, domain.ErrTaskNotFound
}

func (r *staticTaskRepo) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	var out []domain.Task
	for _, task := range r.tasks {
		if filter.UserID != "" && task.UserID != filter.UserID {
			continue
		}
		out = append(out, task)
	}
	return out, nil
}

func (r *staticTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	return task, nil
}
func (r *staticTaskRepo) Update(context.Context, *domain.Task) error { return nil }
func (r *staticTaskRepo) Delete(context.Context, string) error       { return nil }

func plannerFixture(t *testing.T) *UseCase {
	t.Helper()
	scheduled := domain.Task{ID: "t3", UserID: "u1", Title: "Gym", DueDate: "2024-03-02"}
	if err := scheduled.ScheduleAt("2024-03-01", 7, 0); err != nil {
		t.Fatalf("fixture schedule: %v", err)
	}
	repo := &staticTaskRepo{tasks: []domain.Task{
		{ID: "t1", UserID: "u1", Title: "Write report", DueDate: "2024-03-01"},
		{ID: "t2", UserID: "u1", Title: "Done thing", DueDate: "2024-03-01", Completed: true},
		scheduled,
		{ID: "t4", UserID: "u1", Title: "Taxes", DueDate: "2024-03-10"},
		{ID: "t9", UserID: "u2", Title: "Someone else's", DueDate: "2024-03-01"},
	}}
	return New(repo, nil).WithClock(func() time.Time {
		return time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	})
}

func TestDayView(t *testing.T) {
	uc := plannerFixture(t)

	view, err := uc.Day(context.Background(), "u1", "2024-03-01")
	if err != nil {
		t.Fatalf("Day: %v", err)
	}
	if len(view.OnDay) != 3 { // t1 and t2 by due date, t3 by schedule
		t.Fatalf("OnDay = %d tasks, want 3", len(view.OnDay))
	}
	if len(view.Backlog) != 2 { // t1 and t4; t3 is scheduled, t2 completed
		t.Fatalf("Backlog = %d tasks, want 2", len(view.Backlog))
	}
}

func TestDayViewCarriesHourLabels(t *testing.T) {
	uc := plannerFixture(t)

	view, err := uc.Day(context.Background(), "u1", "2024-03-01")
	if err != nil {
		t.Fatalf("Day: %v", err)
	}
	if len(view.Hours) != 17 { // 6 AM through 10 PM inclusive
		t.Fatalf("Hours = %d rows, want 17", len(view.Hours))
	}
	first, last := view.Hours[0], view.Hours[len(view.Hours)-1]
	if first.Hour != 6 || first.Label != "6 AM" {
		t.Fatalf("first row = %+v, want 6 AM", first)
	}
	if last.Hour != 22 || last.Label != "10 PM" {
		t.Fatalf("last row = %+v, want 10 PM", last)
	}
}

func TestDayDefaultsToToday(t *testing.T) {
	uc := plannerFixture(t)

	view, err := uc.Day(context.Background(), "u1", "")
	if err != nil {
		t.Fatalf("Day: %v", err)
	}
	if view.Date != "2024-03-01" {
		t.Fatalf("Date = %q, want clock's today", view.Date)
	}
}

func TestDayRejectsMalformedDate(t *testing.T) {
	uc := plannerFixture(t)
	if _, err := uc.Day(context.Background(), "u1", "03/01/2024"); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("want INVALID, got %v", err)
	}
}

func TestHomeOverview(t *testing.T) {
	uc := plannerFixture(t)

	overview, err := uc.Home(context.Background(), "u1", "2024-03-01")
	if err != nil {
		t.Fatalf("Home: %v", err)
	}
	if len(overview.DueToday) != 1 || overview.DueToday[0].ID != "t1" {
		t.Fatalf("DueToday = %v", overview.DueToday)
	}
	if len(overview.Preview) != 3 {
		t.Fatalf("Preview = %d tasks, want 3 incomplete", len(overview.Preview))
	}
	if len(overview.Upcoming) != 2 { // t3 (due 03-02) and t4
		t.Fatalf("Upcoming = %d tasks, want 2", len(overview.Upcoming))
	}
	if len(overview.Completed) != 1 || overview.Completed[0].ID != "t2" {
		t.Fatalf("Completed = %v", overview.Completed)
	}
}
