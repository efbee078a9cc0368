package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/plannery/backend/api/transport"
	"github.com/plannery/backend/domain"
	"github.com/plannery/backend/pkg/httpcontext"
	"github.com/plannery/backend/pkg/timegrid"
	"github.com/plannery/backend/repository"
	taskUC "github.com/plannery/backend/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc  *taskUC.UseCase
	now func() time.Time
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		now:         time.Now,
	}
}

// @Summary List tasks
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	args := ctx.QueryArgs()
	filter := repository.TaskFilter{
		UserID:    userID,
		DueDate:   string(args.Peek("due_date")),
		Category:  string(args.Peek("category")),
		Scheduled: parseBoolArg(args.Peek("scheduled")),
		Completed: parseBoolArg(args.Peek("completed")),
		Limit:     parseInt(string(args.Peek("limit")), 50),
		Offset:    parseInt(string(args.Peek("offset")), 0),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListTasks(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, tasks)
}

// @Summary Get task
// @Tags tasks
// @Router /api/v1/tasks/{id} [get]
func (h *TaskHandler) GetTask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.GetTask(stdCtx, userID, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Create task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	task, ok := h.parseTask(ctx, userID)
	if !ok {
		return
	}
	task.ID = ""

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateTask(stdCtx, task)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update task
// @Tags tasks
// @Router /api/v1/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	task, ok := h.parseTask(ctx, userID)
	if !ok {
		return
	}
	if id, _ := ctx.UserValue("id").(string); id != "" {
		task.ID = id
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateTask(stdCtx, task)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete task
// @Tags tasks
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteTask(stdCtx, userID, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Schedule task onto the day grid
// @Tags tasks
// @Router /api/v1/tasks/{id}/schedule [post]
func (h *TaskHandler) ScheduleTask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}

	var req transport.ScheduleRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	date, hour, minute, ok := h.resolveSlot(ctx, req)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.ScheduleTask(stdCtx, userID, id, date, hour, minute)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Remove task from the calendar
// @Tags tasks
// @Router /api/v1/tasks/{id}/schedule [delete]
func (h *TaskHandler) UnscheduleTask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.UnscheduleTask(stdCtx, userID, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Task audit trail
// @Tags tasks
// @Router /api/v1/tasks/{id}/history [get]
func (h *TaskHandler) GetTaskHistory(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	entries, err := h.uc.TaskHistory(stdCtx, userID, id, parseInt(string(ctx.QueryArgs().Peek("limit")), 50))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, entries)
}

// @Summary Preview a duration estimate
// @Tags tasks
// @Router /api/v1/tasks/estimate [post]
func (h *TaskHandler) EstimateDuration(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.EstimateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	estimate, err := h.uc.EstimateDuration(stdCtx, req.Description)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, estimate)
}

// resolveSlot turns a schedule request into a concrete (date, hour, minute)
// slot. A bare time with no date means today; drop geometry is snapped to the
// quarter grid here so the clamp rule lives in one place.
func (h *TaskHandler) resolveSlot(ctx *fasthttp.RequestCtx, req transport.ScheduleRequest) (string, int, int, bool) {
	date := req.Date
	if date == "" {
		date = h.now().Format(timegrid.DateLayout)
	}

	if req.Time != "" {
		hour, minute, err := timegrid.ParseTime(req.Time)
		if err != nil {
			h.respondInvalid(ctx, "malformed time, want HH:MM")
			return "", 0, 0, false
		}
		return date, hour, timegrid.SnapMinute(minute), true
	}

	if req.Hour == nil || req.OffsetPx == nil || req.RowHeightPx == nil {
		h.respondInvalid(ctx, "provide either time or hour with drop geometry")
		return "", 0, 0, false
	}
	minute := timegrid.SnapOffsetToQuarter(*req.OffsetPx, *req.RowHeightPx)
	return date, *req.Hour, minute, true
}

func (h *TaskHandler) parseTask(ctx *fasthttp.RequestCtx, userID string) (*domain.Task, bool) {
	var req transport.TaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return nil, false
	}

	return &domain.Task{
		ID:             req.ID,
		UserID:         userID,
		Title:          req.Title,
		Description:    req.Description,
		ManualDuration: req.ManualDuration,
		Category:       domain.Category(req.Category),
		Priority:       domain.Priority(req.Priority),
		DueDate:        req.DueDate,
		Completed:      req.Completed,
	}, true
}

func parseBoolArg(raw []byte) *bool {
	if len(raw) == 0 {
		return nil
	}
	parsed, err := strconv.ParseBool(string(raw))
	if err != nil {
		return nil
	}
	return &parsed
}

func parseInt(value string, fallback int) int {
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return fallback
}
