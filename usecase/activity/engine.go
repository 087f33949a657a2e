package activity

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vitaboard/backend/domain"
	"github.com/vitaboard/backend/repository"
)

// routineDefaultHorizonDays bounds a routine expansion when no end date is
// given: the range defaults to the start date plus 90 days.
const routineDefaultHorizonDays = 90

// AddInput is the activity data accepted by Add: everything except id, owner,
// status and timestamps, which the engine assigns.
type AddInput struct {
	Title             string
	Description       string
	Date              string
	Time              string
	Type              domain.ActivityType
	Priority          domain.ActivityPriority
	Category          string
	Frequency         string
	EndDate           string
	WeekDays          []string
	EstimatedDuration int
}

// Engine owns the in-memory activity snapshot for a single owner. Every
// mutation persists through the repository and then re-reads the full
// collection, so derived views always reflect stored state. All operations on
// one engine are serialized by its mutex.
type Engine struct {
	repo    repository.ActivityRepository
	logger  *zap.Logger
	ownerID string
	now     func() time.Time

	mu         sync.Mutex
	loaded     bool
	activities []domain.Activity
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock overrides the engine's time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine builds an engine for one owner. The snapshot is loaded lazily on
// first use.
func NewEngine(repo repository.ActivityRepository, ownerID string, logger *zap.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		repo:    repo,
		logger:  logger.With(zap.String("owner_id", ownerID)),
		ownerID: ownerID,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load fetches the owner's full collection from the store.
func (e *Engine) Load(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reload(ctx)
}

func (e *Engine) ensureLoaded(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.loaded {
		return nil
	}
	return e.reload(ctx)
}

// reload must be called with the mutex held.
func (e *Engine) reload(ctx context.Context) error {
	activities, err := e.repo.ListByOwner(ctx, e.ownerID)
	if err != nil {
		e.logger.Error("failed to load activities", zap.Error(err))
		return err
	}
	e.activities = activities
	e.loaded = true
	return nil
}

// Invalidate drops the cached snapshot so the next use reloads from the
// store. Called after out-of-band writes such as the overdue sweep.
func (e *Engine) Invalidate() {
	e.mu.Lock()
	e.loaded = false
	e.mu.Unlock()
}

// Activities returns a copy of the current snapshot.
func (e *Engine) Activities() []domain.Activity {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

// snapshot must be called with the mutex held.
func (e *Engine) snapshot() []domain.Activity {
	out := make([]domain.Activity, len(e.activities))
	copy(out, e.activities)
	return out
}

// Add inserts one activity, or one instance per matching calendar day when
// the input describes a routine with a weekday selection. All inserted
// records receive the same display order, equal to the snapshot size at
// insertion time.
func (e *Engine) Add(ctx context.Context, in AddInput) ([]domain.Activity, error) {
	if e.ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	records, err := e.expand(in)
	if err != nil {
		return nil, err
	}

	created, err := e.repo.CreateBatch(ctx, records)
	if err != nil {
		e.logger.Error("failed to add activity", zap.String("title", in.Title), zap.Error(err))
		return nil, err
	}
	if err := e.reload(ctx); err != nil {
		return nil, err
	}

	e.logger.Info("activities added",
		zap.Int("count", len(created)),
		zap.String("type", string(in.Type)))
	return created, nil
}

func (e *Engine) expand(in AddInput) ([]domain.Activity, error) {
	order := len(e.activities)
	base := domain.Activity{
		OwnerID:           e.ownerID,
		Title:             in.Title,
		Description:       in.Description,
		Date:              in.Date,
		Time:              in.Time,
		Type:              in.Type,
		Status:            domain.StatusPending,
		Priority:          in.Priority,
		Category:          in.Category,
		Frequency:         in.Frequency,
		EndDate:           in.EndDate,
		WeekDays:          in.WeekDays,
		Order:             order,
		EstimatedDuration: in.EstimatedDuration,
	}

	if in.Type != domain.TypeRoutine || len(in.WeekDays) == 0 {
		return []domain.Activity{base}, nil
	}

	start, err := time.Parse(domain.DateFormat, in.Date)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "invalid start date", err)
	}
	end := start.AddDate(0, 0, routineDefaultHorizonDays)
	if in.EndDate != "" {
		end, err = time.Parse(domain.DateFormat, in.EndDate)
		if err != nil {
			return nil, domain.WrapError(domain.ErrCodeInvalid, "invalid end date", err)
		}
	}
	if end.Before(start) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "end date precedes start date")
	}

	routineID := uuid.NewString()
	var records []domain.Activity
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if !matchesWeekdays(in.WeekDays, day) {
			continue
		}
		instance := base
		instance.Date = day.Format(domain.DateFormat)
		instance.IsRoutine = true
		instance.RoutineID = routineID
		records = append(records, instance)
	}
	return records, nil
}

// ToggleStatus flips one activity between pending and completed, stamping
// CompletedAt on completion and clearing it on the way back. Toggling is
// involutive: two toggles restore both fields.
func (e *Engine) ToggleStatus(ctx context.Context, id string) (*domain.Activity, error) {
	if e.ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	current := e.find(id)
	if current == nil {
		return nil, domain.ErrActivityNotFound
	}

	var patch domain.ActivityPatch
	if current.Status == domain.StatusCompleted {
		status := domain.StatusPending
		patch.Status = &status
		patch.ClearCompletedAt = true
	} else {
		status := domain.StatusCompleted
		completedAt := e.now()
		patch.Status = &status
		patch.CompletedAt = &completedAt
	}

	if err := e.repo.Update(ctx, e.ownerID, id, patch); err != nil {
		e.logger.Error("failed to toggle activity", zap.String("activity_id", id), zap.Error(err))
		return nil, err
	}
	if err := e.reload(ctx); err != nil {
		return nil, err
	}
	return e.find(id), nil
}

// Update merges partial fields into one stored activity.
func (e *Engine) Update(ctx context.Context, id string, patch domain.ActivityPatch) (*domain.Activity, error) {
	if e.ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.find(id) == nil {
		return nil, domain.ErrActivityNotFound
	}
	if err := e.repo.Update(ctx, e.ownerID, id, patch); err != nil {
		e.logger.Error("failed to update activity", zap.String("activity_id", id), zap.Error(err))
		return nil, err
	}
	if err := e.reload(ctx); err != nil {
		return nil, err
	}
	return e.find(id), nil
}

// Delete removes exactly one activity.
func (e *Engine) Delete(ctx context.Context, id string) error {
	if e.ownerID == "" {
		return domain.ErrUnauthorized
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.repo.Delete(ctx, e.ownerID, id); err != nil {
		e.logger.Error("failed to delete activity", zap.String("activity_id", id), zap.Error(err))
		return err
	}
	return e.reload(ctx)
}

// DeleteRoutine removes every instance sharing the routine id.
func (e *Engine) DeleteRoutine(ctx context.Context, routineID string) (int64, error) {
	if e.ownerID == "" {
		return 0, domain.ErrUnauthorized
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	removed, err := e.repo.DeleteByRoutine(ctx, e.ownerID, routineID)
	if err != nil {
		e.logger.Error("failed to delete routine", zap.String("routine_id", routineID), zap.Error(err))
		return 0, err
	}
	if err := e.reload(ctx); err != nil {
		return removed, err
	}
	e.logger.Info("routine deleted", zap.String("routine_id", routineID), zap.Int64("removed", removed))
	return removed, nil
}

// ClearAll deletes every activity for the owner and resets the snapshot.
func (e *Engine) ClearAll(ctx context.Context) error {
	if e.ownerID == "" {
		return domain.ErrUnauthorized
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.repo.DeleteByOwner(ctx, e.ownerID); err != nil {
		e.logger.Error("failed to clear activities", zap.Error(err))
		return err
	}
	e.activities = nil
	e.loaded = true
	e.logger.Info("all activities cleared")
	return nil
}

// find must be called with the mutex held.
func (e *Engine) find(id string) *domain.Activity {
	for i := range e.activities {
		if e.activities[i].ID == id {
			a := e.activities[i]
			return &a
		}
	}
	return nil
}

func matchesWeekdays(weekDays []string, day time.Time) bool {
	name := domain.WeekdayName(day)
	for _, wd := range weekDays {
		if strings.EqualFold(wd, name) {
			return true
		}
	}
	return false
}
