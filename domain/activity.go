package domain

import (
	"strings"
	"time"
)

// DateFormat is the calendar-date layout used across the service. Activity
// dates are stored as plain dates with no time zone component.
const DateFormat = "2006-01-02"

// ActivityType classifies how an activity participates in derived views.
type ActivityType string

const (
	TypeGoal     ActivityType = "goal"
	TypeDaily    ActivityType = "daily"
	TypeRoutine  ActivityType = "routine"
	TypePriority ActivityType = "priority"
)

// ActivityStatus is the stored completion state of an activity.
type ActivityStatus string

const (
	StatusPending   ActivityStatus = "pending"
	StatusCompleted ActivityStatus = "completed"
	StatusLate      ActivityStatus = "late"
)

// ActivityPriority is the high/medium/low priority label every activity
// carries, distinct from the "priority" activity type.
type ActivityPriority string

const (
	PriorityHigh   ActivityPriority = "high"
	PriorityMedium ActivityPriority = "medium"
	PriorityLow    ActivityPriority = "low"
)

// Activity represents one scheduled item owned by a user. Routine templates
// are expanded at creation time: each generated instance carries
// IsRoutine=true and the RoutineID shared by its siblings.
type Activity struct {
	ID                string           `json:"id"`
	OwnerID           string           `json:"owner_id"`
	Title             string           `json:"title"`
	Description       string           `json:"description,omitempty"`
	Date              string           `json:"date"`
	Time              string           `json:"time,omitempty"`
	Type              ActivityType     `json:"type"`
	Status            ActivityStatus   `json:"status"`
	Priority          ActivityPriority `json:"priority"`
	Category          string           `json:"category,omitempty"`
	Frequency         string           `json:"frequency,omitempty"`
	EndDate           string           `json:"end_date,omitempty"`
	WeekDays          []string         `json:"week_days,omitempty"`
	IsRoutine         bool             `json:"is_routine,omitempty"`
	RoutineID         string           `json:"routine_id,omitempty"`
	Order             int              `json:"order"`
	EstimatedDuration int              `json:"estimated_duration,omitempty"`
	ActualDuration    int              `json:"actual_duration,omitempty"`
	CompletedAt       *time.Time       `json:"completed_at,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
}

func (a *Activity) IsCompleted() bool {
	return a != nil && a.Status == StatusCompleted
}

// OccursOn reports whether a routine instance's weekday pattern matches the
// given calendar day.
func (a *Activity) OccursOn(day time.Time) bool {
	if a == nil {
		return false
	}
	name := WeekdayName(day)
	for _, wd := range a.WeekDays {
		if strings.EqualFold(wd, name) {
			return true
		}
	}
	return false
}

// WeekdayName returns the lowercase English weekday name used in routine
// weekday patterns.
func WeekdayName(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// ActivityPatch carries the fields of a partial activity update. Nil fields
// are left untouched.
type ActivityPatch struct {
	Title             *string           `json:"title,omitempty"`
	Description       *string           `json:"description,omitempty"`
	Date              *string           `json:"date,omitempty"`
	Time              *string           `json:"time,omitempty"`
	Status            *ActivityStatus   `json:"status,omitempty"`
	Priority          *ActivityPriority `json:"priority,omitempty"`
	Category          *string           `json:"category,omitempty"`
	Order             *int              `json:"order,omitempty"`
	EstimatedDuration *int              `json:"estimated_duration,omitempty"`
	ActualDuration    *int              `json:"actual_duration,omitempty"`
	CompletedAt       *time.Time        `json:"completed_at,omitempty"`
	ClearCompletedAt  bool              `json:"-"`
}

// Apply merges the patch into the activity.
func (p ActivityPatch) Apply(a *Activity) {
	if a == nil {
		return
	}
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.Date != nil {
		a.Date = *p.Date
	}
	if p.Time != nil {
		a.Time = *p.Time
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.Priority != nil {
		a.Priority = *p.Priority
	}
	if p.Category != nil {
		a.Category = *p.Category
	}
	if p.Order != nil {
		a.Order = *p.Order
	}
	if p.EstimatedDuration != nil {
		a.EstimatedDuration = *p.EstimatedDuration
	}
	if p.ActualDuration != nil {
		a.ActualDuration = *p.ActualDuration
	}
	if p.CompletedAt != nil {
		a.CompletedAt = p.CompletedAt
	}
	if p.ClearCompletedAt {
		a.CompletedAt = nil
	}
}

// PriorityRank orders priorities so high sorts before medium before low.
func PriorityRank(p ActivityPriority) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}
