package task

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plannery/backend/domain"
	"github.com/plannery/backend/repository"
	"github.com/plannery/backend/usecase"
)

// ManualDurationMax caps user-supplied durations at eight hours.
const (
	ManualDurationMin = 5
	ManualDurationMax = 480
)

type UseCase struct {
	tasks     repository.TaskRepository
	estimator usecase.Estimator
	buffer    usecase.OperationBuffer
	history   repository.TaskHistoryRepository
	logger    *zap.Logger
	now       func() time.Time
}

func New(tasks repository.TaskRepository, estimator usecase.Estimator, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:     tasks,
		estimator: estimator,
		buffer:    buffer,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the time source, used by tests.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// WithHistory enables the audit trail. Without it, transitions simply go
// unrecorded.
func (uc *UseCase) WithHistory(history repository.TaskHistoryRepository) *UseCase {
	uc.history = history
	return uc
}

func (uc *UseCase) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	return uc.tasks.List(ctx, filter)
}

func (uc *UseCase) GetTask(ctx context.Context, userID, id string) (*domain.Task, error) {
	return uc.owned(ctx, userID, id)
}

// CreateTask validates a new task, runs the duration estimator and persists
// the result. Estimator failure downgrades to the default duration instead of
// failing creation.
func (uc *UseCase) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if err := validate(task); err != nil {
		return nil, err
	}

	if uc.estimator != nil {
		description := task.Title
		if task.Description != "" {
			description += " - " + task.Description
		}
		if estimate, err := uc.estimator.Estimate(ctx, description); err != nil {
			uc.logger.Warn("duration estimation failed, using default", zap.Error(err))
		} else if estimate.Minutes > 0 {
			minutes := estimate.Minutes
			task.EstimatedDuration = &minutes
		}
	}

	// Assign the ID up front so a buffered create and its response agree on
	// which task was made.
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationCreate, task) {
			uc.record(ctx, task.ID, domain.HistoryCreated, nil)
			return task, nil
		}
		return nil, err
	}
	uc.record(ctx, created.ID, domain.HistoryCreated, nil)
	return created, nil
}

// UpdateTask applies edits to an owned task. The schedule is never touched
// here; it changes only through ScheduleTask and UnscheduleTask.
func (uc *UseCase) UpdateTask(ctx context.Context, incoming *domain.Task) (*domain.Task, error) {
	if incoming == nil || incoming.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if err := validate(incoming); err != nil {
		return nil, err
	}

	existing, err := uc.owned(ctx, incoming.UserID, incoming.ID)
	if err != nil {
		return nil, err
	}

	completedNow := incoming.Completed && !existing.Completed

	existing.Title = incoming.Title
	existing.Description = incoming.Description
	existing.ManualDuration = incoming.ManualDuration
	existing.Category = incoming.Category
	existing.Priority = incoming.Priority
	existing.DueDate = incoming.DueDate
	existing.SetCompleted(incoming.Completed, uc.now())

	if err := uc.persist(ctx, existing); err != nil {
		return nil, err
	}
	if completedNow {
		uc.record(ctx, existing.ID, domain.HistoryCompleted, nil)
	} else {
		uc.record(ctx, existing.ID, domain.HistoryUpdated, nil)
	}
	return existing, nil
}

func (uc *UseCase) DeleteTask(ctx context.Context, userID, id string) error {
	if _, err := uc.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := uc.tasks.Delete(ctx, id); err != nil {
		if err == domain.ErrTaskNotFound {
			return err
		}
		if uc.shouldBuffer(ctx, usecase.OperationDelete, &domain.Task{ID: id, UserID: userID}) {
			return nil
		}
		return err
	}
	return nil
}

// ScheduleTask assigns the task its calendar slot. Callers resolve bare times
// to a concrete date before this point; the minute must already be snapped.
func (uc *UseCase) ScheduleTask(ctx context.Context, userID, id, date string, hour, minute int) (*domain.Task, error) {
	task, err := uc.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	previous := task.Schedule
	if err := task.ScheduleAt(date, hour, minute); err != nil {
		return nil, err
	}
	if err := uc.persist(ctx, task); err != nil {
		return nil, err
	}
	uc.record(ctx, task.ID, domain.HistoryScheduled, scheduleChanges(task.Schedule, previous))
	return task, nil
}

// UnscheduleTask returns the task to the backlog, leaving every other field
// (including completion) untouched.
func (uc *UseCase) UnscheduleTask(ctx context.Context, userID, id string) (*domain.Task, error) {
	task, err := uc.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	previous := task.Schedule
	task.Unschedule()
	if err := uc.persist(ctx, task); err != nil {
		return nil, err
	}
	uc.record(ctx, task.ID, domain.HistoryUnscheduled, scheduleChanges(nil, previous))
	return task, nil
}

// TaskHistory returns the audit trail for an owned task, newest first.
func (uc *UseCase) TaskHistory(ctx context.Context, userID, id string, limit int) ([]domain.TaskHistory, error) {
	if _, err := uc.owned(ctx, userID, id); err != nil {
		return nil, err
	}
	if uc.history == nil {
		return nil, nil
	}
	return uc.history.ListByTask(ctx, id, limit)
}

// EstimateDuration previews an estimate without creating a task.
func (uc *UseCase) EstimateDuration(ctx context.Context, description string) (domain.DurationEstimate, error) {
	if strings.TrimSpace(description) == "" {
		return domain.DurationEstimate{}, domain.NewError(domain.ErrCodeInvalid, "description must not be empty")
	}
	if uc.estimator == nil {
		return domain.DurationEstimate{}, domain.NewError(domain.ErrCodeInternal, "estimator not configured")
	}
	return uc.estimator.Estimate(ctx, description)
}

func (uc *UseCase) owned(ctx context.Context, userID, id string) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if userID != "" && task.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

func (uc *UseCase) persist(ctx context.Context, task *domain.Task) error {
	if err := uc.tasks.Update(ctx, task); err != nil {
		if err == domain.ErrTaskNotFound {
			return err
		}
		if uc.shouldBuffer(ctx, usecase.OperationUpdate, task) {
			return nil
		}
		return err
	}
	return nil
}

// record appends an audit entry. The trail is best-effort: a history failure
// never fails the operation it describes.
func (uc *UseCase) record(ctx context.Context, taskID, action string, changes map[string]string) {
	if uc.history == nil {
		return
	}
	entry := &domain.TaskHistory{
		TaskID:    taskID,
		Action:    action,
		Changes:   changes,
		CreatedAt: uc.now(),
	}
	if err := uc.history.Record(ctx, entry); err != nil {
		uc.logger.Warn("failed to record task history",
			zap.String("task_id", taskID), zap.String("action", action), zap.Error(err))
	}
}

func scheduleChanges(current, previous *domain.Schedule) map[string]string {
	changes := map[string]string{}
	if current != nil {
		changes["scheduled_date"] = current.Date
		changes["scheduled_time"] = current.Time
	}
	if previous != nil {
		changes["previous_date"] = previous.Date
		changes["previous_time"] = previous.Time
	}
	return changes
}

func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, task *domain.Task) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferTask(ctx, operation, task); err != nil {
		uc.logger.Error("failed to buffer task operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("task operation buffered", zap.String("operation", operation), zap.String("task_id", task.ID))
	return true
}

// validate rejects malformed input before it can reach the scheduler or the
// projections, and fills enum defaults.
func validate(task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		return domain.ErrMissingTitle
	}
	if task.ManualDuration != nil {
		if *task.ManualDuration < ManualDurationMin || *task.ManualDuration > ManualDurationMax {
			return domain.ErrInvalidDuration
		}
	}
	if task.Category == "" {
		task.Category = domain.CategoryPersonal
	}
	if !domain.IsValidCategory(task.Category) {
		return domain.NewError(domain.ErrCodeInvalid, "unknown category")
	}
	if task.Priority == "" {
		task.Priority = domain.PriorityMedium
	}
	if !domain.IsValidPriority(task.Priority) {
		return domain.NewError(domain.ErrCodeInvalid, "unknown priority")
	}
	return nil
}
