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
	healthUC "github.com/vitaboard/backend/usecase/health"
)

type WellnessHandler struct {
	baseHandler
	svc *healthUC.Service
}

func NewWellnessHandler(svc *healthUC.Service, adapter *httpcontext.Adapter, logger *zap.Logger) *WellnessHandler {
	return &WellnessHandler{
		baseHandler: newBaseHandler(adapter, logger),
		svc:         svc,
	}
}

// @Summary Get health profile
// @Tags wellness
// @Router /api/v1/wellness/profile [get]
func (h *WellnessHandler) GetProfile(ctx *fasthttp.RequestCtx) {
	engine, _, cancel, ok := h.engine(ctx)
	if !ok {
		return
	}
	defer cancel()
	h.respondSuccess(ctx, http.StatusOK, engine.Profile())
}

// @Summary Merge partial fields into the health profile
// @Tags wellness
// @Router /api/v1/wellness/profile [put]
func (h *WellnessHandler) UpdateProfile(ctx *fasthttp.RequestCtx) {
	var patch domain.HealthProfilePatch
	if err := json.Unmarshal(ctx.PostBody(), &patch); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	engine, stdCtx, cancel, ok := h.engine(ctx)
	if !ok {
		return
	}
	defer cancel()

	profile, err := engine.UpdateProfile(stdCtx, patch)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, profile)
}

// @Summary List tracked metrics
// @Tags wellness
// @Router /api/v1/wellness/metrics [get]
func (h *WellnessHandler) Metrics(ctx *fasthttp.RequestCtx) {
	engine, _, cancel, ok := h.engine(ctx)
	if !ok {
		return
	}
	defer cancel()
	h.respondSuccess(ctx, http.StatusOK, engine.Metrics())
}

// @Summary Set one metric's value
// @Tags wellness
// @Router /api/v1/wellness/metrics/{id} [put]
func (h *WellnessHandler) SetMetric(ctx *fasthttp.RequestCtx) {
	id, ok := h.metricID(ctx)
	if !ok {
		return
	}
	var req transport.MetricValueRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	engine, stdCtx, cancel, ok := h.engine(ctx)
	if !ok {
		return
	}
	defer cancel()

	metric, err := engine.SetMetricValue(stdCtx, id, req.Value)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, metric)
}

// @Summary Increment one metric's value
// @Tags wellness
// @Router /api/v1/wellness/metrics/{id}/increment [post]
func (h *WellnessHandler) IncrementMetric(ctx *fasthttp.RequestCtx) {
	h.applyDelta(ctx, func(engine *healthUC.Engine, stdCtx context.Context, id string, amount float64) (*domain.Metric, error) {
		return engine.IncrementMetric(stdCtx, id, amount)
	})
}

// @Summary Decrement one metric's value
// @Tags wellness
// @Router /api/v1/wellness/metrics/{id}/decrement [post]
func (h *WellnessHandler) DecrementMetric(ctx *fasthttp.RequestCtx) {
	h.applyDelta(ctx, func(engine *healthUC.Engine, stdCtx context.Context, id string, amount float64) (*domain.Metric, error) {
		return engine.DecrementMetric(stdCtx, id, amount)
	})
}

// @Summary Derived per-metric goals
// @Tags wellness
// @Router /api/v1/wellness/goals [get]
func (h *WellnessHandler) Goals(ctx *fasthttp.RequestCtx) {
	engine, _, cancel, ok := h.engine(ctx)
	if !ok {
		return
	}
	defer cancel()
	h.respondSuccess(ctx, http.StatusOK, engine.Goals())
}

// @Summary Current wellbeing score
// @Tags wellness
// @Router /api/v1/wellness/score [get]
func (h *WellnessHandler) Score(ctx *fasthttp.RequestCtx) {
	engine, _, cancel, ok := h.engine(ctx)
	if !ok {
		return
	}
	defer cancel()
	h.respondSuccess(ctx, http.StatusOK, map[string]int{"score": engine.Score()})
}

// @Summary Ranked recommendations
// @Tags wellness
// @Router /api/v1/wellness/recommendations [get]
func (h *WellnessHandler) Recommendations(ctx *fasthttp.RequestCtx) {
	engine, _, cancel, ok := h.engine(ctx)
	if !ok {
		return
	}
	defer cancel()
	h.respondSuccess(ctx, http.StatusOK, engine.Recommendations())
}

func (h *WellnessHandler) applyDelta(ctx *fasthttp.RequestCtx, apply func(*healthUC.Engine, context.Context, string, float64) (*domain.Metric, error)) {
	id, ok := h.metricID(ctx)
	if !ok {
		return
	}
	var req transport.MetricDeltaRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}
	if req.Amount == 0 {
		req.Amount = 1
	}

	engine, stdCtx, cancel, ok := h.engine(ctx)
	if !ok {
		return
	}
	defer cancel()

	metric, err := apply(engine, stdCtx, id, req.Amount)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, metric)
}

func (h *WellnessHandler) engine(ctx *fasthttp.RequestCtx) (*healthUC.Engine, context.Context, context.CancelFunc, bool) {
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

func (h *WellnessHandler) metricID(ctx *fasthttp.RequestCtx) (string, bool) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing metric id")
		return "", false
	}
	return id, true
}
