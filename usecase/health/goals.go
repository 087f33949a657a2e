package health

import (
	"math"

	"github.com/vitaboard/backend/domain"
)

// Goals are the per-metric targets derived from a profile. Mood and energy
// are self-reported 0-10 scales and carry no derived goal.
type Goals struct {
	Water    float64 `json:"water"`
	Sleep    float64 `json:"sleep"`
	Exercise float64 `json:"exercise"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
}

// FallbackGoals is returned while the profile is incomplete.
func FallbackGoals() Goals {
	return Goals{Sleep: 7}
}

// DeriveGoals computes personalized targets from the profile. Any missing
// required field yields the fixed fallback.
func DeriveGoals(profile *domain.HealthProfile) Goals {
	if profile == nil ||
		profile.WeightKg == nil ||
		profile.HeightCm == nil ||
		profile.AgeYears == nil ||
		profile.Gender == "" ||
		profile.ActivityLevel == "" ||
		profile.Goal == "" {
		return FallbackGoals()
	}

	weight := *profile.WeightKg
	height := *profile.HeightCm
	age := *profile.AgeYears

	// Water in liters, rounded to the nearest half liter.
	water := math.Round(weight*35/1000*2) / 2

	sleep := 7.0
	switch {
	case age < 18:
		sleep = 8
	case age > 65:
		sleep = 6.5
	}

	exercise := exerciseMinutes(profile.ActivityLevel)
	if profile.Goal == domain.GoalGainMuscle && exercise < 45 {
		exercise = 45
	}

	calories := math.Round(basalMetabolicRate(weight, height, age, profile.Gender) * activityMultiplier(profile.ActivityLevel))
	switch profile.Goal {
	case domain.GoalLoseWeight:
		calories -= 500
		if calories < 1200 {
			calories = 1200
		}
	case domain.GoalGainMuscle:
		calories += 300
	}

	proteinPerKg := 1.2
	switch profile.Goal {
	case domain.GoalLoseWeight:
		proteinPerKg = 1.8
	case domain.GoalGainMuscle:
		proteinPerKg = 2.2
	}

	return Goals{
		Water:    water,
		Sleep:    sleep,
		Exercise: exercise,
		Calories: calories,
		Protein:  math.Round(weight * proteinPerKg),
	}
}

// ForMetric maps a metric id to its derived goal. Metrics without a derived
// goal return 0.
func (g Goals) ForMetric(id string) float64 {
	switch id {
	case domain.MetricWater:
		return g.Water
	case domain.MetricSleep:
		return g.Sleep
	case domain.MetricExercise:
		return g.Exercise
	case domain.MetricCalories:
		return g.Calories
	case domain.MetricProtein:
		return g.Protein
	default:
		return 0
	}
}

// basalMetabolicRate follows Mifflin-St Jeor for male/female profiles and a
// flat per-kilogram estimate otherwise.
func basalMetabolicRate(weight, height float64, age int, gender string) float64 {
	switch gender {
	case domain.GenderMale:
		return 10*weight + 6.25*height - 5*float64(age) + 5
	case domain.GenderFemale:
		return 10*weight + 6.25*height - 5*float64(age) - 161
	default:
		return weight * 22
	}
}

func activityMultiplier(level string) float64 {
	switch level {
	case domain.LevelSedentary:
		return 1.2
	case domain.LevelActive:
		return 1.725
	default:
		return 1.55
	}
}

func exerciseMinutes(level string) float64 {
	switch level {
	case domain.LevelSedentary:
		return 20
	case domain.LevelActive:
		return 45
	default:
		return 30
	}
}
