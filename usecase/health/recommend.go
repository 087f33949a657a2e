package health

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vitaboard/backend/domain"
)

var metricIcons = map[string]string{
	domain.MetricMood:     "smile",
	domain.MetricEnergy:   "zap",
	domain.MetricSleep:    "moon",
	domain.MetricWater:    "droplet",
	domain.MetricExercise: "dumbbell",
	domain.MetricCalories: "flame",
	domain.MetricProtein:  "drumstick",
}

// GenerateRecommendations derives the ranked advisory list from the current
// profile, metrics and overall score. Empty unless onboarding is complete
// and metrics exist. Entries are deduplicated by message (first occurrence
// wins) and sorted ascending by priority.
func GenerateRecommendations(profile *domain.HealthProfile, metrics []domain.Metric, score int) []domain.Recommendation {
	if profile == nil || !profile.HasCompletedOnboarding || len(metrics) == 0 {
		return nil
	}

	goals := DeriveGoals(profile)
	var recs []domain.Recommendation

	for _, m := range metrics {
		goal := goals.ForMetric(m.ID)
		if goal <= 0 {
			continue
		}
		name := strings.ToLower(m.Name)
		ratio := m.Value / goal
		switch {
		case ratio < 0.5:
			recs = append(recs, domain.Recommendation{
				ID:       "alert-" + m.ID,
				Message:  fmt.Sprintf("Your %s is far below target: %.1f of %.1f %s. Make it a priority today.", name, m.Value, goal, m.Unit),
				Type:     domain.RecAlert,
				Icon:     metricIcons[m.ID],
				Priority: domain.RecPriorityAlert,
			})
		case ratio < 0.95:
			recs = append(recs, domain.Recommendation{
				ID:       "tip-" + m.ID,
				Message:  fmt.Sprintf("Almost there on %s: %.1f of %.1f %s. A small push closes the gap.", name, m.Value, goal, m.Unit),
				Type:     domain.RecTip,
				Icon:     metricIcons[m.ID],
				Priority: domain.RecPriorityTip,
			})
		case ratio >= 1:
			recs = append(recs, domain.Recommendation{
				ID:       "achieved-" + m.ID,
				Message:  fmt.Sprintf("%s goal reached. Keep the streak going.", capitalize(name)),
				Type:     domain.RecGoalAchieved,
				Icon:     metricIcons[m.ID],
				Priority: domain.RecPriorityAchievement,
			})
		}
	}

	if profile.Goal == domain.GoalGainMuscle {
		if m := findMetric(metrics, domain.MetricProtein); m != nil && goals.Protein > 0 && m.Value < goals.Protein {
			recs = append(recs, domain.Recommendation{
				ID:       "tip-protein-muscle",
				Message:  fmt.Sprintf("Building muscle needs protein: aim for %.0f g today.", goals.Protein),
				Type:     domain.RecTip,
				Icon:     metricIcons[domain.MetricProtein],
				Priority: domain.RecPriorityTip,
			})
		}
	}
	if m := findMetric(metrics, domain.MetricSleep); m != nil && goals.Sleep > 0 && m.Value < goals.Sleep {
		recs = append(recs, domain.Recommendation{
			ID:       "alert-sleep-short",
			Message:  fmt.Sprintf("You slept %.1f of your %.1f hour target. Recovery suffers without it.", m.Value, goals.Sleep),
			Type:     domain.RecAlert,
			Icon:     metricIcons[domain.MetricSleep],
			Priority: domain.RecPriorityAlert,
		})
	}
	if score < 50 {
		recs = append(recs, domain.Recommendation{
			ID:       "alert-overall",
			Message:  "Your wellbeing score is below 50. Pick one metric and improve it today.",
			Type:     domain.RecAlert,
			Icon:     "heart",
			Priority: domain.RecPriorityAlert,
		})
	}

	return rankRecommendations(recs)
}

// rankRecommendations drops duplicate messages (first occurrence wins) and
// sorts ascending by priority, keeping insertion order within a priority.
func rankRecommendations(recs []domain.Recommendation) []domain.Recommendation {
	seen := make(map[string]bool, len(recs))
	out := recs[:0]
	for _, r := range recs {
		if seen[r.Message] {
			continue
		}
		seen[r.Message] = true
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	if len(out) == 0 {
		return nil
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func findMetric(metrics []domain.Metric, id string) *domain.Metric {
	for i := range metrics {
		if metrics[i].ID == id {
			return &metrics[i]
		}
	}
	return nil
}
