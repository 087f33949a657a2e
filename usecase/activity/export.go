package activity

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/vitaboard/backend/domain"
)

// ExportEnvelope is the export/import payload format.
type ExportEnvelope struct {
	Activities []domain.Activity `json:"activities"`
	ExportDate time.Time         `json:"exportDate"`
}

// Export serializes the owner's full activity set.
func (e *Engine) Export() ExportEnvelope {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ExportEnvelope{
		Activities: e.snapshot(),
		ExportDate: e.now(),
	}
}

// Import validates and inserts a previously exported payload. Incoming ids
// are discarded so every imported record gets a fresh one; missing creation
// timestamps default to now. Returns the number of imported activities.
func (e *Engine) Import(ctx context.Context, payload []byte) (int, error) {
	if e.ownerID == "" {
		return 0, domain.ErrUnauthorized
	}

	var raw struct {
		Activities json.RawMessage `json:"activities"`
		ExportDate string          `json:"exportDate"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return 0, domain.WrapError(domain.ErrCodeInvalid, "import payload is not valid JSON", err)
	}
	value := bytes.TrimSpace(raw.Activities)
	if len(value) == 0 || value[0] != '[' {
		// Missing, null, or non-array activities key.
		return 0, domain.ErrInvalidImport
	}
	var incoming []domain.Activity
	if err := json.Unmarshal(value, &incoming); err != nil {
		return 0, domain.ErrInvalidImport
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	for i := range incoming {
		incoming[i].ID = ""
		incoming[i].OwnerID = e.ownerID
		if incoming[i].CreatedAt.IsZero() {
			incoming[i].CreatedAt = now
		}
		if incoming[i].Status == "" {
			incoming[i].Status = domain.StatusPending
		}
	}

	if len(incoming) > 0 {
		if _, err := e.repo.CreateBatch(ctx, incoming); err != nil {
			e.logger.Error("failed to import activities", zap.Error(err))
			return 0, err
		}
	}
	if err := e.reload(ctx); err != nil {
		return 0, err
	}
	e.logger.Info("activities imported", zap.Int("count", len(incoming)))
	return len(incoming), nil
}
