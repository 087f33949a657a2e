package activity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitaboard/backend/domain"
)

// seedEngine loads the given records straight into the store and returns an
// engine pinned to 2024-01-15 (a Monday).
func seedEngine(t *testing.T, records ...domain.Activity) *Engine {
	t.Helper()
	repo := newFakeActivityRepo()
	for i := range records {
		records[i].OwnerID = "owner-1"
		if records[i].Status == "" {
			records[i].Status = domain.StatusPending
		}
	}
	_, err := repo.CreateBatch(context.Background(), records)
	require.NoError(t, err)
	return newTestEngine(t, repo)
}

func TestDailyView(t *testing.T) {
	engine := seedEngine(t,
		domain.Activity{Title: "Today second", Type: domain.TypeDaily, Date: "2024-01-15", Order: 2},
		domain.Activity{Title: "Yesterday", Type: domain.TypeDaily, Date: "2024-01-14", Order: 0},
		domain.Activity{Title: "Today first", Type: domain.TypeDaily, Date: "2024-01-15", Order: 1},
		domain.Activity{Title: "Routine hit", Type: domain.TypeRoutine, Date: "2024-01-15", IsRoutine: true, WeekDays: []string{"monday"}, Order: 3},
		domain.Activity{Title: "Routine miss", Type: domain.TypeRoutine, Date: "2024-01-15", IsRoutine: true, WeekDays: []string{"tuesday"}, Order: 4},
		domain.Activity{Title: "Goal", Type: domain.TypeGoal, Date: "2024-01-15", Order: 5},
	)

	daily := engine.Daily()
	require.Len(t, daily, 3)
	assert.Equal(t, "Today first", daily[0].Title)
	assert.Equal(t, "Today second", daily[1].Title)
	assert.Equal(t, "Routine hit", daily[2].Title)
}

func TestGoalsSortedByPriority(t *testing.T) {
	engine := seedEngine(t,
		domain.Activity{Title: "Low", Type: domain.TypeGoal, Date: "2024-01-15", Priority: domain.PriorityLow},
		domain.Activity{Title: "High", Type: domain.TypeGoal, Date: "2024-01-15", Priority: domain.PriorityHigh},
		domain.Activity{Title: "Medium", Type: domain.TypeGoal, Date: "2024-01-15", Priority: domain.PriorityMedium},
		domain.Activity{Title: "Not a goal", Type: domain.TypeDaily, Date: "2024-01-15", Priority: domain.PriorityHigh},
	)

	goals := engine.Goals()
	require.Len(t, goals, 3)
	assert.Equal(t, "High", goals[0].Title)
	assert.Equal(t, "Medium", goals[1].Title)
	assert.Equal(t, "Low", goals[2].Title)
}

func TestPriorityThisWeek(t *testing.T) {
	// 2024-01-15 is a Monday, so the current week runs Sunday 2024-01-14
	// through Saturday 2024-01-20.
	engine := seedEngine(t,
		domain.Activity{Title: "Late in week", Type: domain.TypePriority, Date: "2024-01-19", Priority: domain.PriorityMedium},
		domain.Activity{Title: "High late", Type: domain.TypePriority, Date: "2024-01-18", Priority: domain.PriorityHigh},
		domain.Activity{Title: "High early", Type: domain.TypePriority, Date: "2024-01-14", Priority: domain.PriorityHigh},
		domain.Activity{Title: "Last week", Type: domain.TypePriority, Date: "2024-01-13", Priority: domain.PriorityHigh},
		domain.Activity{Title: "Next week", Type: domain.TypePriority, Date: "2024-01-21", Priority: domain.PriorityHigh},
		domain.Activity{Title: "Wrong type", Type: domain.TypeDaily, Date: "2024-01-15", Priority: domain.PriorityHigh},
	)

	week := engine.PriorityThisWeek()
	require.Len(t, week, 3)
	assert.Equal(t, "High early", week[0].Title)
	assert.Equal(t, "High late", week[1].Title)
	assert.Equal(t, "Late in week", week[2].Title)
}

func TestByDate(t *testing.T) {
	engine := seedEngine(t,
		domain.Activity{Title: "Daily", Type: domain.TypeDaily, Date: "2024-01-16"},
		domain.Activity{Title: "Routine hit", Type: domain.TypeRoutine, Date: "2024-01-16", IsRoutine: true, WeekDays: []string{"tuesday"}},
		domain.Activity{Title: "Routine miss", Type: domain.TypeRoutine, Date: "2024-01-16", IsRoutine: true, WeekDays: []string{"friday"}},
		domain.Activity{Title: "Other day", Type: domain.TypeDaily, Date: "2024-01-17"},
	)

	got, err := engine.ByDate("2024-01-16")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Daily", got[0].Title)
	assert.Equal(t, "Routine hit", got[1].Title)
}

func TestByDateInvalid(t *testing.T) {
	engine := seedEngine(t)

	_, err := engine.ByDate("16/01/2024")
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestCompletionRate(t *testing.T) {
	engine := seedEngine(t,
		domain.Activity{Title: "Done", Type: domain.TypeDaily, Date: "2024-01-15", Status: domain.StatusCompleted},
		domain.Activity{Title: "Open", Type: domain.TypeDaily, Date: "2024-01-15"},
		domain.Activity{Title: "Other day", Type: domain.TypeDaily, Date: "2024-01-14", Status: domain.StatusCompleted},
	)

	rate := engine.Completion()
	assert.Equal(t, 1, rate.Completed)
	assert.Equal(t, 2, rate.Total)
}

func TestCompletionRateEmpty(t *testing.T) {
	engine := seedEngine(t)

	rate := engine.Completion()
	assert.Equal(t, 0, rate.Completed)
	assert.Equal(t, 0, rate.Total)
}

func TestProductivitySeries(t *testing.T) {
	engine := seedEngine(t,
		domain.Activity{Title: "A", Type: domain.TypeDaily, Date: "2024-01-15", Status: domain.StatusCompleted},
		domain.Activity{Title: "B", Type: domain.TypeDaily, Date: "2024-01-15"},
		domain.Activity{Title: "C", Type: domain.TypeDaily, Date: "2024-01-12", Status: domain.StatusLate},
		domain.Activity{Title: "D", Type: domain.TypeDaily, Date: "2024-01-08"},
	)

	series := engine.Productivity()
	require.Len(t, series, 7)

	assert.Equal(t, "2024-01-09", series[0].Date)
	assert.Equal(t, "2024-01-15", series[6].Date)

	byDate := make(map[string]DaySummary, len(series))
	for _, s := range series {
		byDate[s.Date] = s
	}
	assert.Equal(t, DaySummary{Date: "2024-01-15", Completed: 1, Pending: 1}, byDate["2024-01-15"])
	assert.Equal(t, DaySummary{Date: "2024-01-12", Late: 1}, byDate["2024-01-12"])
	// 2024-01-08 falls outside the trailing seven days.
	assert.Equal(t, DaySummary{Date: "2024-01-09"}, byDate["2024-01-09"])
}
