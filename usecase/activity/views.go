package activity

import (
	"sort"
	"time"

	"github.com/vitaboard/backend/domain"
)

// CompletionRate summarizes today's progress over the daily view.
type CompletionRate struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// DaySummary is one entry of the trailing-7-day productivity series.
type DaySummary struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
	Pending   int    `json:"pending"`
	Late      int    `json:"late"`
}

// Daily returns today's activities: plain dailies dated today plus routine
// instances dated today whose weekday pattern matches, ordered by display
// order.
func (e *Engine) Daily() []domain.Activity {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	today := now.Format(domain.DateFormat)

	var out []domain.Activity
	for _, a := range e.activities {
		switch {
		case a.Type == domain.TypeDaily && a.Date == today:
			out = append(out, a)
		case a.Type == domain.TypeRoutine && a.IsRoutine && a.Date == today && a.OccursOn(now):
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Goals returns all goal activities, high priority first, otherwise stable.
func (e *Engine) Goals() []domain.Activity {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []domain.Activity
	for _, a := range e.activities {
		if a.Type == domain.TypeGoal {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return domain.PriorityRank(out[i].Priority) < domain.PriorityRank(out[j].Priority)
	})
	return out
}

// PriorityThisWeek returns priority-type activities falling inside the
// current Sunday-to-Saturday week, high priority first, then by date.
func (e *Engine) PriorityThisWeek() []domain.Activity {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	weekStart := startOfDay(now).AddDate(0, 0, -int(now.Weekday()))
	weekEnd := weekStart.AddDate(0, 0, 6)

	var out []domain.Activity
	for _, a := range e.activities {
		if a.Type != domain.TypePriority {
			continue
		}
		day, err := time.Parse(domain.DateFormat, a.Date)
		if err != nil {
			continue
		}
		day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
		if day.Before(weekStart) || day.After(weekEnd) {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		hi, hj := out[i].Priority == domain.PriorityHigh, out[j].Priority == domain.PriorityHigh
		if hi != hj {
			return hi
		}
		return out[i].Date < out[j].Date
	})
	return out
}

// ByDate returns daily, priority and goal activities dated exactly on the
// given day, plus routine instances whose weekday pattern matches it.
func (e *Engine) ByDate(date string) ([]domain.Activity, error) {
	day, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "invalid date", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var out []domain.Activity
	for _, a := range e.activities {
		switch a.Type {
		case domain.TypeDaily, domain.TypePriority, domain.TypeGoal:
			if a.Date == date {
				out = append(out, a)
			}
		case domain.TypeRoutine:
			if a.IsRoutine && a.Date == date && a.OccursOn(day) {
				out = append(out, a)
			}
		}
	}
	return out, nil
}

// Completion counts completed versus total over today's daily view.
func (e *Engine) Completion() CompletionRate {
	daily := e.Daily()
	rate := CompletionRate{Total: len(daily)}
	for _, a := range daily {
		if a.IsCompleted() {
			rate.Completed++
		}
	}
	return rate
}

// Productivity returns per-day status counts for the trailing seven calendar
// days, oldest first. The series is regenerated on every call.
func (e *Engine) Productivity() []DaySummary {
	e.mu.Lock()
	defer e.mu.Unlock()

	today := startOfDay(e.now())
	series := make([]DaySummary, 0, 7)
	for offset := 6; offset >= 0; offset-- {
		date := today.AddDate(0, 0, -offset).Format(domain.DateFormat)
		summary := DaySummary{Date: date}
		for _, a := range e.activities {
			if a.Date != date {
				continue
			}
			switch a.Status {
			case domain.StatusCompleted:
				summary.Completed++
			case domain.StatusLate:
				summary.Late++
			default:
				summary.Pending++
			}
		}
		series = append(series, summary)
	}
	return series
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
