package planner

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/plannery/backend/domain"
	"github.com/plannery/backend/pkg/timegrid"
	"github.com/plannery/backend/repository"
)

// DayView is the calendar screen payload: the labelled hour rows of the grid,
// tasks placed on the viewed day, plus the unscheduled sidebar.
type DayView struct {
	Date    string        `json:"date"`
	Hours   []HourRow     `json:"hours"`
	OnDay   []domain.Task `json:"on_day"`
	Backlog []domain.Task `json:"backlog"`
}

// HourRow labels one grid row on the 12-hour clock.
type HourRow struct {
	Hour  int    `json:"hour"`
	Label string `json:"label"`
}

func gridHours() []HourRow {
	rows := make([]HourRow, 0, timegrid.EndHour-timegrid.StartHour+1)
	for hour := timegrid.StartHour; hour <= timegrid.EndHour; hour++ {
		rows = append(rows, HourRow{Hour: hour, Label: timegrid.FormatHour(hour)})
	}
	return rows
}

// Overview is the home screen payload.
type Overview struct {
	Today     string        `json:"today"`
	DueToday  []domain.Task `json:"due_today"`
	Preview   []domain.Task `json:"upcoming_preview"`
	Upcoming  []domain.Task `json:"upcoming"`
	Completed []domain.Task `json:"completed"`
}

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
	now    func() time.Time
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the time source, used by tests.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Day assembles the calendar view for one date. An empty date means today.
// Projections are recomputed from the repository on every call; nothing is
// cached between requests.
func (uc *UseCase) Day(ctx context.Context, userID, viewedDate string) (*DayView, error) {
	viewedDate, err := uc.resolveDate(viewedDate)
	if err != nil {
		return nil, err
	}

	tasks, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &DayView{
		Date:    viewedDate,
		Hours:   gridHours(),
		OnDay:   domain.OnDay(tasks, viewedDate),
		Backlog: domain.Backlog(tasks),
	}, nil
}

// Home assembles the overview projections relative to the reference day.
func (uc *UseCase) Home(ctx context.Context, userID, today string) (*Overview, error) {
	today, err := uc.resolveDate(today)
	if err != nil {
		return nil, err
	}

	tasks, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Overview{
		Today:     today,
		DueToday:  domain.DueToday(tasks, today),
		Preview:   domain.HomePreview(tasks),
		Upcoming:  domain.Upcoming(tasks, today),
		Completed: domain.CompletedTasks(tasks),
	}, nil
}

func (uc *UseCase) load(ctx context.Context, userID string) ([]domain.Task, error) {
	return uc.tasks.List(ctx, repository.TaskFilter{UserID: userID})
}

func (uc *UseCase) resolveDate(value string) (string, error) {
	if value == "" {
		return uc.now().Format(timegrid.DateLayout), nil
	}
	if _, err := time.Parse(timegrid.DateLayout, value); err != nil {
		return "", domain.WrapError(domain.ErrCodeInvalid, "malformed date", err)
	}
	return value, nil
}
