package health

import (
	"math"

	"github.com/vitaboard/backend/domain"
)

// ComputeScore collapses the metric set into a single 0-100 wellbeing score:
// the weighted average of per-metric sub-scores over metrics with nonzero
// derived weight. Returns 0 before onboarding completes or when no metrics
// exist.
func ComputeScore(profile *domain.HealthProfile, metrics []domain.Metric) int {
	if profile == nil || !profile.HasCompletedOnboarding || len(metrics) == 0 {
		return 0
	}

	goals := DeriveGoals(profile)
	weights := DeriveWeights(profile)

	var weighted, weightSum float64
	for _, m := range metrics {
		w := weights[m.ID]
		if w == 0 {
			continue
		}
		weighted += metricScore(m, goals.ForMetric(m.ID), profile.Goal) * w
		weightSum += w
	}
	if weightSum == 0 {
		return 0
	}
	return int(math.Round(weighted / weightSum))
}

// metricScore maps one metric to a 0-100 sub-score. Calorie scoring depends
// on the wellness goal: under weight loss the score decays symmetrically as
// intake diverges from target in either direction; under muscle gain
// overshoot is not penalized. Metrics without a derived goal are treated as
// 0-10 self-reported scales.
func metricScore(m domain.Metric, goal float64, wellnessGoal string) float64 {
	if goal <= 0 {
		return clamp(m.Value/10*100, 0, 100)
	}
	if m.ID == domain.MetricCalories {
		switch wellnessGoal {
		case domain.GoalLoseWeight:
			deviation := math.Abs(m.Value-goal) / goal
			return clamp(100*(1-deviation), 0, 100)
		case domain.GoalGainMuscle:
			return math.Min(100, m.Value/goal*100)
		}
	}
	return math.Min(m.Value/goal, 1) * 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
