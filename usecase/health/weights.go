package health

import "github.com/vitaboard/backend/domain"

// RestrictionInsomnia is the profile tag that shifts weight toward sleep.
const RestrictionInsomnia = "insomnia"

// obeseBMIThreshold is the BMI above which exercise and calories are
// emphasized over sleep.
const obeseBMIThreshold = 30

// DeriveWeights produces a fresh, normalized weight map over the seven
// metrics, starting from the base weights and conditionally reweighting for
// the profile. The result always sums to 1.
func DeriveWeights(profile *domain.HealthProfile) map[string]float64 {
	weights := make(map[string]float64, 7)
	for _, m := range domain.DefaultMetrics() {
		weights[m.ID] = m.Weight
	}

	if profile != nil {
		losing := profile.Goal == domain.GoalLoseWeight
		if losing || profile.BMI() > obeseBMIThreshold {
			weights[domain.MetricExercise] *= 1.5
			weights[domain.MetricCalories] *= 1.5
			weights[domain.MetricSleep] *= 0.75
		}
		if profile.HasRestriction(RestrictionInsomnia) {
			weights[domain.MetricSleep] *= 2
		}
		if profile.ActivityLevel == domain.LevelActive &&
			(profile.Goal == domain.GoalGainMuscle || profile.Goal == domain.GoalMaintain) {
			weights[domain.MetricWater] *= 1.2
			weights[domain.MetricExercise] *= 1.3
			weights[domain.MetricProtein] *= 1.4
		}
	}

	var sum float64
	for _, w := range weights {
		sum += w
	}
	if sum == 0 {
		return weights
	}
	for id := range weights {
		weights[id] /= sum
	}
	return weights
}
