package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/plannery/backend/pkg/httpcontext"
	"github.com/plannery/backend/repository"
	calendarUC "github.com/plannery/backend/usecase/calendar"
)

type CalendarHandler struct {
	baseHandler
	uc *calendarUC.UseCase
}

func NewCalendarHandler(uc *calendarUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *CalendarHandler {
	return &CalendarHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List cached external events
// @Tags calendar
// @Router /api/v1/calendar/events [get]
func (h *CalendarHandler) GetEvents(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	args := ctx.QueryArgs()
	from, err := time.Parse(time.RFC3339, string(args.Peek("from")))
	if err != nil {
		h.respondInvalid(ctx, "malformed from, want RFC 3339")
		return
	}
	to, err := time.Parse(time.RFC3339, string(args.Peek("to")))
	if err != nil {
		h.respondInvalid(ctx, "malformed to, want RFC 3339")
		return
	}

	filter := repository.EventFilter{
		UserID:   userID,
		From:     from,
		To:       to,
		Provider: string(args.Peek("provider")),
		Limit:    parseInt(string(args.Peek("limit")), 0),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	events, err := h.uc.ListEvents(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, events)
}

// @Summary List calendar connections
// @Tags calendar
// @Router /api/v1/calendar/connections [get]
func (h *CalendarHandler) GetConnections(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	connections, err := h.uc.ListConnections(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, connections)
}

// @Summary Trigger a calendar sync
// @Tags calendar
// @Router /api/v1/calendar/sync [post]
func (h *CalendarHandler) Sync(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.Sync(stdCtx, userID, string(ctx.QueryArgs().Peek("connection_id")))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}
