package activity

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vitaboard/backend/domain"
)

// fakeActivityRepo is an in-memory ActivityRepository for engine tests. Ids
// are uuids, like the real repository issues, so records created by separate
// repo instances never collide.
type fakeActivityRepo struct {
	mu    sync.Mutex
	items []domain.Activity
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{}
}

func (r *fakeActivityRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Activity
	for _, a := range r.items {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeActivityRepo) CreateBatch(_ context.Context, activities []domain.Activity) ([]domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range activities {
		if activities[i].ID == "" {
			activities[i].ID = uuid.NewString()
		}
		if activities[i].CreatedAt.IsZero() {
			activities[i].CreatedAt = time.Now()
		}
		r.items = append(r.items, activities[i])
	}
	return activities, nil
}

func (r *fakeActivityRepo) Update(_ context.Context, ownerID, id string, patch domain.ActivityPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id && r.items[i].OwnerID == ownerID {
			patch.Apply(&r.items[i])
			return nil
		}
	}
	return domain.ErrActivityNotFound
}

func (r *fakeActivityRepo) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id && r.items[i].OwnerID == ownerID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrActivityNotFound
}

func (r *fakeActivityRepo) DeleteByRoutine(_ context.Context, ownerID, routineID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []domain.Activity
	var removed int64
	for _, a := range r.items {
		if a.OwnerID == ownerID && a.RoutineID == routineID {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	if removed == 0 {
		return 0, domain.ErrRoutineNotFound
	}
	r.items = kept
	return removed, nil
}

func (r *fakeActivityRepo) DeleteByOwner(_ context.Context, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []domain.Activity
	for _, a := range r.items {
		if a.OwnerID != ownerID {
			kept = append(kept, a)
		}
	}
	r.items = kept
	return nil
}

func (r *fakeActivityRepo) MarkOverdue(_ context.Context, before string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var marked int64
	for i := range r.items {
		if r.items[i].Status == domain.StatusPending && r.items[i].Date < before {
			r.items[i].Status = domain.StatusLate
			marked++
		}
	}
	return marked, nil
}

// fixedClock pins engine time to 2024-01-15, a Monday.
func fixedClock() time.Time {
	return time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
}

func newTestEngine(t *testing.T, repo *fakeActivityRepo) *Engine {
	t.Helper()
	engine := NewEngine(repo, "owner-1", zap.NewNop(), WithClock(fixedClock))
	require.NoError(t, engine.Load(context.Background()))
	return engine
}

func TestAddSingleActivity(t *testing.T) {
	engine := newTestEngine(t, newFakeActivityRepo())

	created, err := engine.Add(context.Background(), AddInput{
		Title:    "Morning run",
		Date:     "2024-01-15",
		Type:     domain.TypeDaily,
		Priority: domain.PriorityMedium,
	})
	require.NoError(t, err)
	require.Len(t, created, 1)

	got := created[0]
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "owner-1", got.OwnerID)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Equal(t, 0, got.Order)
	assert.False(t, got.IsRoutine)
	assert.Len(t, engine.Activities(), 1)
}

func TestAddRoutineExpandsMatchingDays(t *testing.T) {
	engine := newTestEngine(t, newFakeActivityRepo())

	created, err := engine.Add(context.Background(), AddInput{
		Title:    "Gym",
		Date:     "2024-01-01",
		EndDate:  "2024-03-31",
		Type:     domain.TypeRoutine,
		WeekDays: []string{"monday"},
	})
	require.NoError(t, err)
	// Mondays between 2024-01-01 and 2024-03-31 inclusive.
	require.Len(t, created, 13)

	routineID := created[0].RoutineID
	require.NotEmpty(t, routineID)
	for _, a := range created {
		assert.True(t, a.IsRoutine)
		assert.Equal(t, routineID, a.RoutineID)
		assert.Equal(t, 0, a.Order)

		day, err := time.Parse(domain.DateFormat, a.Date)
		require.NoError(t, err)
		assert.Equal(t, time.Monday, day.Weekday())
	}
	assert.Equal(t, "2024-01-01", created[0].Date)
	assert.Equal(t, "2024-03-25", created[len(created)-1].Date)
}

func TestAddRoutineDefaultHorizon(t *testing.T) {
	engine := newTestEngine(t, newFakeActivityRepo())

	// No end date: the range defaults to start+90 days, which lands on
	// 2024-03-31 and yields the same 13 Mondays.
	created, err := engine.Add(context.Background(), AddInput{
		Title:    "Gym",
		Date:     "2024-01-01",
		Type:     domain.TypeRoutine,
		WeekDays: []string{"Monday"},
	})
	require.NoError(t, err)
	assert.Len(t, created, 13)
}

func TestAddRoutineEndBeforeStart(t *testing.T) {
	engine := newTestEngine(t, newFakeActivityRepo())

	_, err := engine.Add(context.Background(), AddInput{
		Title:    "Gym",
		Date:     "2024-02-01",
		EndDate:  "2024-01-01",
		Type:     domain.TypeRoutine,
		WeekDays: []string{"monday"},
	})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestAddRoutineWithoutWeekdaysStaysSingle(t *testing.T) {
	engine := newTestEngine(t, newFakeActivityRepo())

	created, err := engine.Add(context.Background(), AddInput{
		Title: "Stretch",
		Date:  "2024-01-15",
		Type:  domain.TypeRoutine,
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.False(t, created[0].IsRoutine)
}

func TestToggleStatusInvolutive(t *testing.T) {
	engine := newTestEngine(t, newFakeActivityRepo())

	created, err := engine.Add(context.Background(), AddInput{
		Title: "Read",
		Date:  "2024-01-15",
		Type:  domain.TypeDaily,
	})
	require.NoError(t, err)
	id := created[0].ID

	completed, err := engine.ToggleStatus(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)
	assert.Equal(t, fixedClock(), *completed.CompletedAt)

	reverted, err := engine.ToggleStatus(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, reverted.Status)
	assert.Nil(t, reverted.CompletedAt)
}

func TestToggleUnknownID(t *testing.T) {
	engine := newTestEngine(t, newFakeActivityRepo())

	_, err := engine.ToggleStatus(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrActivityNotFound)
}

func TestUpdateMergesFields(t *testing.T) {
	engine := newTestEngine(t, newFakeActivityRepo())

	created, err := engine.Add(context.Background(), AddInput{
		Title:    "Draft report",
		Date:     "2024-01-15",
		Type:     domain.TypeDaily,
		Priority: domain.PriorityLow,
	})
	require.NoError(t, err)

	title := "Finish report"
	priority := domain.PriorityHigh
	updated, err := engine.Update(context.Background(), created[0].ID, domain.ActivityPatch{
		Title:    &title,
		Priority: &priority,
	})
	require.NoError(t, err)
	assert.Equal(t, "Finish report", updated.Title)
	assert.Equal(t, domain.PriorityHigh, updated.Priority)
	assert.Equal(t, "2024-01-15", updated.Date)
}

func TestDeleteRoutineRemovesAllInstances(t *testing.T) {
	engine := newTestEngine(t, newFakeActivityRepo())

	created, err := engine.Add(context.Background(), AddInput{
		Title:    "Gym",
		Date:     "2024-01-01",
		EndDate:  "2024-03-31",
		Type:     domain.TypeRoutine,
		WeekDays: []string{"monday"},
	})
	require.NoError(t, err)

	removed, err := engine.DeleteRoutine(context.Background(), created[0].RoutineID)
	require.NoError(t, err)
	assert.Equal(t, int64(13), removed)
	assert.Empty(t, engine.Activities())
}

func TestDeleteRoutineUnknownID(t *testing.T) {
	engine := newTestEngine(t, newFakeActivityRepo())

	_, err := engine.DeleteRoutine(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrRoutineNotFound)
}

func TestClearAll(t *testing.T) {
	repo := newFakeActivityRepo()
	engine := newTestEngine(t, repo)

	_, err := engine.Add(context.Background(), AddInput{Title: "A", Date: "2024-01-15", Type: domain.TypeDaily})
	require.NoError(t, err)
	_, err = engine.Add(context.Background(), AddInput{Title: "B", Date: "2024-01-16", Type: domain.TypeGoal})
	require.NoError(t, err)

	require.NoError(t, engine.ClearAll(context.Background()))
	assert.Empty(t, engine.Activities())

	stored, err := repo.ListByOwner(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestServiceRejectsEmptyOwner(t *testing.T) {
	svc := NewService(newFakeActivityRepo(), zap.NewNop())

	_, err := svc.ForOwner(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestServiceInvalidateAllReloads(t *testing.T) {
	repo := newFakeActivityRepo()
	svc := NewService(repo, zap.NewNop())

	engine, err := svc.ForOwner(context.Background(), "owner-1")
	require.NoError(t, err)
	_, err = engine.Add(context.Background(), AddInput{Title: "A", Date: "2024-01-10", Type: domain.TypeDaily})
	require.NoError(t, err)

	// An out-of-band sweep rewrites stored state behind the engine's back.
	marked, err := repo.MarkOverdue(context.Background(), "2024-01-15")
	require.NoError(t, err)
	require.Equal(t, int64(1), marked)

	stale, err := svc.ForOwner(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stale.Activities()[0].Status)

	svc.InvalidateAll()
	fresh, err := svc.ForOwner(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusLate, fresh.Activities()[0].Status)
}
