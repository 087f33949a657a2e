package health

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vitaboard/backend/domain"
	"github.com/vitaboard/backend/repository"
)

// Engine owns one owner's health profile and metric set. Every mutation runs
// the full derivation pipeline: goals are rederived and written back onto the
// metrics (once onboarding is complete), state is persisted, and score and
// recommendations are recomputed on demand from the fresh state.
type Engine struct {
	repo    repository.HealthStateRepository
	logger  *zap.Logger
	ownerID string
	now     func() time.Time

	mu      sync.Mutex
	loaded  bool
	profile *domain.HealthProfile
	metrics []domain.Metric
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

// NewEngine builds a health engine for one owner.
func NewEngine(repo repository.HealthStateRepository, ownerID string, logger *zap.Logger, opts ...Option) *Engine {
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

func (e *Engine) ensureLoaded(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.loaded {
		return nil
	}
	profile, err := e.repo.LoadProfile(ctx, e.ownerID)
	if err != nil {
		e.logger.Error("failed to load health profile", zap.Error(err))
		return err
	}
	metrics, err := e.repo.LoadMetrics(ctx, e.ownerID)
	if err != nil {
		e.logger.Error("failed to load health metrics", zap.Error(err))
		return err
	}
	e.profile = profile
	e.metrics = metrics
	e.loaded = true
	return nil
}

// Profile returns a copy of the stored profile, or nil before onboarding
// starts.
func (e *Engine) Profile() *domain.HealthProfile {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.profile == nil {
		return nil
	}
	p := *e.profile
	return &p
}

// Metrics returns a copy of the tracked metric set.
func (e *Engine) Metrics() []domain.Metric {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.Metric, len(e.metrics))
	copy(out, e.metrics)
	return out
}

// Goals returns the currently derived per-metric targets.
func (e *Engine) Goals() Goals {
	e.mu.Lock()
	defer e.mu.Unlock()
	return DeriveGoals(e.profile)
}

// Score returns the current wellbeing score.
func (e *Engine) Score() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ComputeScore(e.profile, e.metrics)
}

// Recommendations regenerates the full ranked advisory list.
func (e *Engine) Recommendations() []domain.Recommendation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return GenerateRecommendations(e.profile, e.metrics, ComputeScore(e.profile, e.metrics))
}

// UpdateProfile merges partial fields into the profile, persists it, and
// rederives metric goals.
func (e *Engine) UpdateProfile(ctx context.Context, patch domain.HealthProfilePatch) (*domain.HealthProfile, error) {
	if e.ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	profile := e.profile
	if profile == nil {
		profile = &domain.HealthProfile{}
	}
	patch.Apply(profile)

	if err := e.repo.SaveProfile(ctx, e.ownerID, profile); err != nil {
		e.logger.Error("failed to save health profile", zap.Error(err))
		return nil, err
	}
	e.profile = profile

	if err := e.syncGoals(ctx); err != nil {
		return nil, err
	}
	copied := *profile
	return &copied, nil
}

// SetMetricValue overwrites one metric's value, clamped at zero, and stamps
// its last-updated time.
func (e *Engine) SetMetricValue(ctx context.Context, id string, value float64) (*domain.Metric, error) {
	return e.mutateMetric(ctx, id, func(m *domain.Metric) {
		m.Value = value
	})
}

// IncrementMetric adds delta to one metric's value.
func (e *Engine) IncrementMetric(ctx context.Context, id string, delta float64) (*domain.Metric, error) {
	return e.mutateMetric(ctx, id, func(m *domain.Metric) {
		m.Value += delta
	})
}

// DecrementMetric subtracts delta from one metric's value, never below zero.
func (e *Engine) DecrementMetric(ctx context.Context, id string, delta float64) (*domain.Metric, error) {
	return e.mutateMetric(ctx, id, func(m *domain.Metric) {
		m.Value -= delta
	})
}

func (e *Engine) mutateMetric(ctx context.Context, id string, mutate func(*domain.Metric)) (*domain.Metric, error) {
	if e.ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	var target *domain.Metric
	for i := range e.metrics {
		if e.metrics[i].ID == id {
			target = &e.metrics[i]
			break
		}
	}
	if target == nil {
		return nil, domain.ErrMetricNotFound
	}

	mutate(target)
	if target.Value < 0 {
		target.Value = 0
	}
	target.LastUpdated = e.now()

	if err := e.syncGoals(ctx); err != nil {
		return nil, err
	}
	copied := *target
	return &copied, nil
}

// syncGoals overwrites each metric's stored goal with the freshly derived
// target (once onboarding is complete) and persists the metric set. Must be
// called with the mutex held.
func (e *Engine) syncGoals(ctx context.Context) error {
	if e.profile != nil && e.profile.HasCompletedOnboarding {
		goals := DeriveGoals(e.profile)
		for i := range e.metrics {
			e.metrics[i].Goal = goals.ForMetric(e.metrics[i].ID)
		}
	}
	if err := e.repo.SaveMetrics(ctx, e.ownerID, e.metrics); err != nil {
		e.logger.Error("failed to save health metrics", zap.Error(err))
		return err
	}
	return nil
}
