package domain

import "time"

// Metric identifiers for the fixed tracked set.
const (
	MetricMood     = "mood"
	MetricEnergy   = "energy"
	MetricSleep    = "sleep"
	MetricWater    = "water"
	MetricExercise = "exercise"
	MetricCalories = "calories"
	MetricProtein  = "protein"
)

// Metric is one tracked health measurement. Goal is overwritten with the
// profile-derived target whenever the profile changes; Weight is the base
// weight before dynamic reweighting.
type Metric struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Value       float64   `json:"value"`
	Goal        float64   `json:"goal"`
	Unit        string    `json:"unit"`
	LastUpdated time.Time `json:"last_updated"`
	Weight      float64   `json:"weight"`
}

// DefaultMetrics returns the seven tracked metrics with zero values and base
// weights summing to 1.0.
func DefaultMetrics() []Metric {
	return []Metric{
		{ID: MetricMood, Name: "Mood", Unit: "scale", Weight: 0.15},
		{ID: MetricEnergy, Name: "Energy", Unit: "scale", Weight: 0.15},
		{ID: MetricSleep, Name: "Sleep", Unit: "hours", Weight: 0.20},
		{ID: MetricWater, Name: "Water", Unit: "L", Weight: 0.10},
		{ID: MetricExercise, Name: "Exercise", Unit: "min", Weight: 0.15},
		{ID: MetricCalories, Name: "Calories", Unit: "kcal", Weight: 0.15},
		{ID: MetricProtein, Name: "Protein", Unit: "g", Weight: 0.10},
	}
}
