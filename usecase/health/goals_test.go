package health

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vitaboard/backend/domain"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

// fullProfile returns a complete onboarded profile: 70 kg, 175 cm, 30 years,
// male, moderate activity, maintain.
func fullProfile() *domain.HealthProfile {
	return &domain.HealthProfile{
		WeightKg:               floatPtr(70),
		HeightCm:               floatPtr(175),
		AgeYears:               intPtr(30),
		Gender:                 domain.GenderMale,
		ActivityLevel:          domain.LevelModerate,
		Goal:                   domain.GoalMaintain,
		HasCompletedOnboarding: true,
	}
}

func TestDeriveGoalsFallback(t *testing.T) {
	assert.Equal(t, FallbackGoals(), DeriveGoals(nil))

	incomplete := fullProfile()
	incomplete.WeightKg = nil
	assert.Equal(t, FallbackGoals(), DeriveGoals(incomplete))

	noGender := fullProfile()
	noGender.Gender = ""
	assert.Equal(t, FallbackGoals(), DeriveGoals(noGender))
}

func TestDeriveGoalsMaintain(t *testing.T) {
	goals := DeriveGoals(fullProfile())

	// 70 kg * 35 ml = 2.45 L, rounded to the nearest half liter.
	assert.Equal(t, 2.5, goals.Water)
	assert.Equal(t, 7.0, goals.Sleep)
	assert.Equal(t, 30.0, goals.Exercise)
	// Mifflin-St Jeor: 10*70 + 6.25*175 - 5*30 + 5 = 1648.75, times 1.55.
	assert.Equal(t, 2556.0, goals.Calories)
	// 70 kg * 1.2 g/kg.
	assert.Equal(t, 84.0, goals.Protein)
}

func TestDeriveGoalsLoseWeight(t *testing.T) {
	profile := fullProfile()
	profile.Goal = domain.GoalLoseWeight

	goals := DeriveGoals(profile)
	assert.Equal(t, 2056.0, goals.Calories)
	assert.Equal(t, 126.0, goals.Protein)
}

func TestDeriveGoalsCaloriesFloor(t *testing.T) {
	profile := &domain.HealthProfile{
		WeightKg:      floatPtr(40),
		HeightCm:      floatPtr(150),
		AgeYears:      intPtr(60),
		Gender:        domain.GenderFemale,
		ActivityLevel: domain.LevelSedentary,
		Goal:          domain.GoalLoseWeight,
	}

	// BMR 876.5 * 1.2 = 1052, minus 500 would undercut the 1200 kcal floor.
	goals := DeriveGoals(profile)
	assert.Equal(t, 1200.0, goals.Calories)
}

func TestDeriveGoalsGainMuscle(t *testing.T) {
	profile := fullProfile()
	profile.Goal = domain.GoalGainMuscle

	goals := DeriveGoals(profile)
	assert.Equal(t, 2856.0, goals.Calories)
	assert.Equal(t, 154.0, goals.Protein)
	// Moderate activity gives 30 minutes; muscle gain raises it to 45.
	assert.Equal(t, 45.0, goals.Exercise)
}

func TestDeriveGoalsSleepByAge(t *testing.T) {
	young := fullProfile()
	young.AgeYears = intPtr(16)
	assert.Equal(t, 8.0, DeriveGoals(young).Sleep)

	old := fullProfile()
	old.AgeYears = intPtr(70)
	assert.Equal(t, 6.5, DeriveGoals(old).Sleep)
}

func TestDeriveGoalsOtherGender(t *testing.T) {
	profile := fullProfile()
	profile.Gender = domain.GenderOther

	// Flat per-kilogram estimate: 70*22 = 1540, times 1.55 = 2387.
	goals := DeriveGoals(profile)
	assert.Equal(t, 2387.0, goals.Calories)
}

func TestGoalsForMetric(t *testing.T) {
	goals := Goals{Water: 2.5, Sleep: 7, Exercise: 30, Calories: 2556, Protein: 84}

	assert.Equal(t, 2.5, goals.ForMetric(domain.MetricWater))
	assert.Equal(t, 7.0, goals.ForMetric(domain.MetricSleep))
	assert.Equal(t, 30.0, goals.ForMetric(domain.MetricExercise))
	assert.Equal(t, 2556.0, goals.ForMetric(domain.MetricCalories))
	assert.Equal(t, 84.0, goals.ForMetric(domain.MetricProtein))
	assert.Equal(t, 0.0, goals.ForMetric(domain.MetricMood))
	assert.Equal(t, 0.0, goals.ForMetric(domain.MetricEnergy))
}
