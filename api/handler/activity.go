package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/vitaboard/backend/api/transport"
	"github.com/vitaboard/backend/domain"
	"github.com/vitaboard/backend/pkg/httpcontext"
	activityUC "github.com/vitaboard/backend/usecase/activity"
)

type ActivityHandler struct {
	baseHandler
	svc *activityUC.Service
}

func NewActivityHandler(svc *activityUC.Service, adapter *httpcontext.Adapter, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		baseHandler: newBaseHandler(adapter, logger),
		svc:         svc,
	}
}

// @Summary List all activities
// @Tags activities
// @Router /api/v1/activities [get]
func (h *ActivityHandler) List(ctx *fasthttp.RequestCtx) {
	engine, _, cancel, ok := h.engine(ctx)
	if !ok {
		return
	}
	defer cancel()
	h.respondSuccess(ctx, http.StatusOK, engine.Activities())
}

// @Summary Add an activity or expand a routine
// @Tags activities
// @Router /api/v1/activities [post]
func (h *ActivityHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.ActivityCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}
	if req.Title == "" || req.Date == "" {
		h.respondInvalid(ctx, "title and date are required")
		return
	}
	if domain.ActivityType(req.Type) == domain.TypeRoutine && len(req.WeekDays) == 0 {
		h.respondInvalid(ctx, "routine requires at least one weekday")
		return
	}

	engine, stdCtx, cancel, ok := h.engine(ctx)
	if !ok {
		return
	}
	defer cancel()

	created, err := engine.Add(stdCtx, activityUC.AddInput{
		Title:             req.Title,
		Description:       req.Description,
		Date:              req.Date,
		Time:              req.Time,
		Type:              domain.ActivityType(req.Type),
		Priority:          domain.ActivityPriority(req.Priority),
		Category:          req.Category,
		Frequency:         req.Frequency,
		EndDate:           req.EndDate,
		WeekDays:          req.WeekDays,
		EstimatedDuration: req.EstimatedDuration,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Partially update an activity
// @Tags activities
// @Router /api/v1/activities/{id} [put]
func (h *ActivityHandler) Update(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx, "id")
	if !ok {
		return
	}

	var patch domain.ActivityPatch
	if err := json.Unmarshal(ctx.PostBody(), &patch); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	engine, stdCtx, cancel, ok := h.engine(ctx)
	if !ok {
		return
	}
	defer cancel()

	updated, err := engine.Update(stdCtx, id, patch)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Toggle an activity between pending and completed
// @Tags activities
// @Router /api/v1/activities/{id}/toggle [post]
func (h *ActivityHandler) Toggle(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx, "id")
	if !ok {
		return
	}

	engine, stdCtx, cancel, ok := h.engine(ctx)
	if !ok {
		return
	}
	defer cancel()

	toggled, err := engine.ToggleStatus(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, toggled)
}

// @Summary Delete one activity
// @Tags activities
// @Router /api/v1/activities/{id} [delete]
func (h *ActivityHandler) Delete(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx, "id")
	if !ok {
		return
	}

	engine, stdCtx, cancel, ok := h.engine(ctx)
	if !ok {
		return
	}
	defer cancel()

	if err := engine.Delete(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Delete every instance of a routine
// @Tags activities
// @Router /api/v1/routines/{routineId} [delete]
func (h *ActivityHandler) DeleteRoutine(ctx *fasthttp.RequestCtx) {
	routineID, ok := h.pathID(ctx, "routineId")
	if !ok {
		return
	}

	engine, stdCtx, cancel, ok := h.engine(ctx)
	if !ok {
		return
	}
	defer cancel()

	removed, err := engine.DeleteRoutine(stdCtx, routineID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]int64{"removed": removed})
}

// @Summary Delete every activity for the owner
// @Tags activities
// @Router /api/v1/activities [delete]
func (h *ActivityHandler) ClearAll(ctx *fasthttp.RequestCtx) {
	engine, stdCtx, cancel, ok := h.engine(ctx)
	if !ok {
		return
	}
	defer cancel()

	if err := engine.ClearAll(stdCtx); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Today's daily and routine activities
// @Tags activities
// @Router /api/v1/activities/daily [get]
func (h *ActivityHandler) Daily(ctx *fasthttp.RequestCtx) {
	engine, _, cancel, ok := h.engine(ctx)
	if !ok {
		return
	}
	defer cancel()
	h.respondSuccess(ctx, http.StatusOK, engine.Daily())
}

// @Summary Goal activities by priority
// @Tags activities
// @Router /api/v1/activities/goals [get]
func (h *ActivityHandler) Goals(ctx *fasthttp.RequestCtx) {
	engine, _, cancel, ok := h.engine(ctx)
	if !ok {
		return
	}
	defer cancel()
	h.respondSuccess(ctx, http.StatusOK, engine.Goals())
}

// @Summary Priority activities for the current week
// @Tags activities
// @Router /api/v1/activities/priority [get]
func (h *ActivityHandler) Priority(ctx *fasthttp.RequestCtx) {
	engine, _, cancel, ok := h.engine(ctx)
	if !ok {
		return
	}
	defer cancel()
	h.respondSuccess(ctx, http.StatusOK, engine.PriorityThisWeek())
}

// @Summary Activities on one calendar date
// @Tags activities
// @Router /api/v1/activities/by-date [get]
func (h *ActivityHandler) ByDate(ctx *fasthttp.RequestCtx) {
	date := string(ctx.QueryArgs().Peek("date"))
	if date == "" {
		h.respondInvalid(ctx, "missing date parameter")
		return
	}

	engine, _, cancel, ok := h.engine(ctx)
	if !ok {
		return
	}
	defer cancel()

	activities, err := engine.ByDate(date)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, activities)
}

// @Summary Completion rate over today's activities
// @Tags activities
// @Router /api/v1/activities/completion [get]
func (h *ActivityHandler) Completion(ctx *fasthttp.RequestCtx) {
	engine, _, cancel, ok := h.engine(ctx)
	if !ok {
		return
	}
	defer cancel()
	h.respondSuccess(ctx, http.StatusOK, engine.Completion())
}

// @Summary Trailing seven-day productivity series
// @Tags activities
// @Router /api/v1/activities/productivity [get]
func (h *ActivityHandler) Productivity(ctx *fasthttp.RequestCtx) {
	engine, _, cancel, ok := h.engine(ctx)
	if !ok {
		return
	}
	defer cancel()
	h.respondSuccess(ctx, http.StatusOK, engine.Productivity())
}

// @Summary Export the owner's activity set
// @Tags activities
// @Router /api/v1/activities/export [get]
func (h *ActivityHandler) Export(ctx *fasthttp.RequestCtx) {
	engine, _, cancel, ok := h.engine(ctx)
	if !ok {
		return
	}
	defer cancel()

	body, err := json.Marshal(engine.Export())
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(http.StatusOK)
	ctx.SetBody(body)
}

// @Summary Import a previously exported activity set
// @Tags activities
// @Router /api/v1/activities/import [post]
func (h *ActivityHandler) Import(ctx *fasthttp.RequestCtx) {
	engine, stdCtx, cancel, ok := h.engine(ctx)
	if !ok {
		return
	}
	defer cancel()

	count, err := engine.Import(stdCtx, ctx.PostBody())
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, map[string]int{"imported": count})
}

func (h *ActivityHandler) engine(ctx *fasthttp.RequestCtx) (*activityUC.Engine, context.Context, context.CancelFunc, bool) {
	ownerID := h.ownerID(ctx)
	if ownerID == "" {
		return nil, nil, nil, false
	}

	stdCtx, cancel := h.requestContext(ctx)
	engine, err := h.svc.ForOwner(stdCtx, ownerID)
	if err != nil {
		cancel()
		h.respondError(ctx, err)
		return nil, nil, nil, false
	}
	return engine, stdCtx, cancel, true
}

func (h *ActivityHandler) pathID(ctx *fasthttp.RequestCtx, key string) (string, bool) {
	id, _ := ctx.UserValue(key).(string)
	if id == "" {
		h.respondInvalid(ctx, "missing "+key)
		return "", false
	}
	return id, true
}
