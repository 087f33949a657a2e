package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/vitaboard/backend/api/transport"
	"github.com/vitaboard/backend/internal/infrastructure/monitor"
	"github.com/vitaboard/backend/pkg/httpcontext"
)

type StatusHandler struct {
	baseHandler
	monitor *monitor.Monitor
}

func NewStatusHandler(mon *monitor.Monitor, adapter *httpcontext.Adapter, logger *zap.Logger) *StatusHandler {
	return &StatusHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
	}
}

// @Summary Service health check
// @Tags status
// @Router /health [get]
func (h *StatusHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.GetStatus()
	payload := map[string]interface{}{
		"timestamp": time.Now().UTC(),
		"services": map[string]interface{}{
			"postgresql": status.PostgreSQL,
			"redis":      status.Redis,
			"localstore": status.Localstore,
		},
	}

	if status.PostgreSQL && status.Redis && status.Localstore {
		h.respondSuccess(ctx, http.StatusOK, payload)
		return
	}
	h.respondJSON(ctx, http.StatusServiceUnavailable, transport.NewError("DEGRADED", "dependencies unhealthy", payload))
}
