package health

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vitaboard/backend/domain"
)

// fakeStateRepo is an in-memory HealthStateRepository.
type fakeStateRepo struct {
	mu       sync.Mutex
	profiles map[string]*domain.HealthProfile
	metrics  map[string][]domain.Metric
	saves    int
}

func newFakeStateRepo() *fakeStateRepo {
	return &fakeStateRepo{
		profiles: make(map[string]*domain.HealthProfile),
		metrics:  make(map[string][]domain.Metric),
	}
}

func (r *fakeStateRepo) LoadProfile(_ context.Context, ownerID string) (*domain.HealthProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.profiles[ownerID]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeStateRepo) SaveProfile(_ context.Context, ownerID string, profile *domain.HealthProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *profile
	r.profiles[ownerID] = &copied
	return nil
}

func (r *fakeStateRepo) LoadMetrics(_ context.Context, ownerID string) ([]domain.Metric, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.metrics[ownerID]; ok {
		out := make([]domain.Metric, len(m))
		copy(out, m)
		return out, nil
	}
	return domain.DefaultMetrics(), nil
}

func (r *fakeStateRepo) SaveMetrics(_ context.Context, ownerID string, metrics []domain.Metric) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := make([]domain.Metric, len(metrics))
	copy(stored, metrics)
	r.metrics[ownerID] = stored
	r.saves++
	return nil
}

func healthClock() time.Time {
	return time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
}

func newTestHealthEngine(t *testing.T, repo *fakeStateRepo) *Engine {
	t.Helper()
	engine := NewEngine(repo, "owner-1", zap.NewNop(), WithClock(healthClock))
	require.NoError(t, engine.ensureLoaded(context.Background()))
	return engine
}

// completeOnboarding pushes the full profile through UpdateProfile.
func completeOnboarding(t *testing.T, engine *Engine) {
	t.Helper()
	gender := domain.GenderMale
	level := domain.LevelModerate
	goal := domain.GoalMaintain
	done := true
	_, err := engine.UpdateProfile(context.Background(), domain.HealthProfilePatch{
		WeightKg:               floatPtr(70),
		HeightCm:               floatPtr(175),
		AgeYears:               intPtr(30),
		Gender:                 &gender,
		ActivityLevel:          &level,
		Goal:                   &goal,
		HasCompletedOnboarding: &done,
	})
	require.NoError(t, err)
}

func TestEngineStartsEmpty(t *testing.T) {
	engine := newTestHealthEngine(t, newFakeStateRepo())

	assert.Nil(t, engine.Profile())
	assert.Len(t, engine.Metrics(), 7)
	assert.Equal(t, FallbackGoals(), engine.Goals())
	assert.Equal(t, 0, engine.Score())
	assert.Nil(t, engine.Recommendations())
}

func TestUpdateProfileMergesPartialFields(t *testing.T) {
	engine := newTestHealthEngine(t, newFakeStateRepo())

	profile, err := engine.UpdateProfile(context.Background(), domain.HealthProfilePatch{
		WeightKg: floatPtr(70),
	})
	require.NoError(t, err)
	require.NotNil(t, profile.WeightKg)
	assert.Equal(t, 70.0, *profile.WeightKg)
	assert.Nil(t, profile.HeightCm)

	profile, err = engine.UpdateProfile(context.Background(), domain.HealthProfilePatch{
		HeightCm: floatPtr(175),
	})
	require.NoError(t, err)
	require.NotNil(t, profile.WeightKg, "earlier fields survive later patches")
	assert.Equal(t, 175.0, *profile.HeightCm)
}

func TestOnboardingSyncsMetricGoals(t *testing.T) {
	repo := newFakeStateRepo()
	engine := newTestHealthEngine(t, repo)
	completeOnboarding(t, engine)

	goals := engine.Goals()
	assert.NotEqual(t, FallbackGoals(), goals)

	for _, m := range engine.Metrics() {
		assert.Equal(t, goals.ForMetric(m.ID), m.Goal, m.ID)
	}

	stored, err := repo.LoadMetrics(context.Background(), "owner-1")
	require.NoError(t, err)
	for _, m := range stored {
		assert.Equal(t, goals.ForMetric(m.ID), m.Goal, m.ID)
	}
}

func TestProfileChangeRederivesGoals(t *testing.T) {
	engine := newTestHealthEngine(t, newFakeStateRepo())
	completeOnboarding(t, engine)

	before := engine.Goals()

	goal := domain.GoalGainMuscle
	_, err := engine.UpdateProfile(context.Background(), domain.HealthProfilePatch{Goal: &goal})
	require.NoError(t, err)

	after := engine.Goals()
	assert.Equal(t, before.Calories+300, after.Calories)
	for _, m := range engine.Metrics() {
		if m.ID == domain.MetricCalories {
			assert.Equal(t, after.Calories, m.Goal)
		}
	}
}

func TestSetMetricValue(t *testing.T) {
	engine := newTestHealthEngine(t, newFakeStateRepo())

	metric, err := engine.SetMetricValue(context.Background(), domain.MetricWater, 1.5)
	require.NoError(t, err)
	assert.Equal(t, 1.5, metric.Value)
	assert.Equal(t, healthClock(), metric.LastUpdated)
}

func TestSetMetricValueClampsNegative(t *testing.T) {
	engine := newTestHealthEngine(t, newFakeStateRepo())

	metric, err := engine.SetMetricValue(context.Background(), domain.MetricWater, -2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, metric.Value)
}

func TestIncrementAndDecrementMetric(t *testing.T) {
	engine := newTestHealthEngine(t, newFakeStateRepo())

	metric, err := engine.IncrementMetric(context.Background(), domain.MetricWater, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.5, metric.Value)

	metric, err = engine.IncrementMetric(context.Background(), domain.MetricWater, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 1.0, metric.Value)

	metric, err = engine.DecrementMetric(context.Background(), domain.MetricWater, 3)
	require.NoError(t, err)
	assert.Equal(t, 0.0, metric.Value, "decrement never goes below zero")
}

func TestMutateUnknownMetric(t *testing.T) {
	engine := newTestHealthEngine(t, newFakeStateRepo())

	_, err := engine.SetMetricValue(context.Background(), "steps", 1000)
	assert.ErrorIs(t, err, domain.ErrMetricNotFound)
}

func TestMetricMutationPersists(t *testing.T) {
	repo := newFakeStateRepo()
	engine := newTestHealthEngine(t, repo)

	_, err := engine.SetMetricValue(context.Background(), domain.MetricSleep, 7)
	require.NoError(t, err)

	stored, err := repo.LoadMetrics(context.Background(), "owner-1")
	require.NoError(t, err)
	for _, m := range stored {
		if m.ID == domain.MetricSleep {
			assert.Equal(t, 7.0, m.Value)
		}
	}
}

func TestScoreAfterOnboardingAndLogging(t *testing.T) {
	engine := newTestHealthEngine(t, newFakeStateRepo())
	completeOnboarding(t, engine)

	goals := engine.Goals()
	_, err := engine.SetMetricValue(context.Background(), domain.MetricMood, 10)
	require.NoError(t, err)
	_, err = engine.SetMetricValue(context.Background(), domain.MetricEnergy, 10)
	require.NoError(t, err)
	for _, id := range []string{domain.MetricSleep, domain.MetricWater, domain.MetricExercise, domain.MetricCalories, domain.MetricProtein} {
		_, err = engine.SetMetricValue(context.Background(), id, goals.ForMetric(id))
		require.NoError(t, err)
	}

	assert.Equal(t, 100, engine.Score())
	recs := engine.Recommendations()
	require.NotEmpty(t, recs)
	for _, r := range recs {
		assert.Equal(t, domain.RecGoalAchieved, r.Type)
	}
}

func TestServiceHandsOutPerOwnerEngines(t *testing.T) {
	svc := NewService(newFakeStateRepo(), zap.NewNop())

	_, err := svc.ForOwner(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	first, err := svc.ForOwner(context.Background(), "owner-1")
	require.NoError(t, err)
	again, err := svc.ForOwner(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Same(t, first, again)

	other, err := svc.ForOwner(context.Background(), "owner-2")
	require.NoError(t, err)
	assert.NotSame(t, first, other)
}
