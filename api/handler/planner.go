package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/plannery/backend/pkg/httpcontext"
	plannerUC "github.com/plannery/backend/usecase/planner"
)

type PlannerHandler struct {
	baseHandler
	uc *plannerUC.UseCase
}

func NewPlannerHandler(uc *plannerUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *PlannerHandler {
	return &PlannerHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Calendar day view
// @Tags planner
// @Router /api/v1/planner/day [get]
func (h *PlannerHandler) Day(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.Day(stdCtx, userID, string(ctx.QueryArgs().Peek("date")))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, view)
}

// @Summary Home overview
// @Tags planner
// @Router /api/v1/planner/overview [get]
func (h *PlannerHandler) Overview(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	overview, err := h.uc.Home(stdCtx, userID, string(ctx.QueryArgs().Peek("date")))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, overview)
}
