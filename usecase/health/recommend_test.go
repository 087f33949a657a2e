package health

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitaboard/backend/domain"
)

func TestRecommendationsGating(t *testing.T) {
	assert.Nil(t, GenerateRecommendations(nil, domain.DefaultMetrics(), 80))
	assert.Nil(t, GenerateRecommendations(fullProfile(), nil, 80))

	notOnboarded := fullProfile()
	notOnboarded.HasCompletedOnboarding = false
	assert.Nil(t, GenerateRecommendations(notOnboarded, domain.DefaultMetrics(), 80))
}

func TestRecommendationsAllGoalsMet(t *testing.T) {
	profile := fullProfile()
	metrics := metricsAtGoal(profile)

	recs := GenerateRecommendations(profile, metrics, 100)
	require.NotEmpty(t, recs)
	for _, r := range recs {
		assert.Equal(t, domain.RecGoalAchieved, r.Type)
		assert.Equal(t, domain.RecPriorityAchievement, r.Priority)
	}
}

func TestRecommendationsPriorityOrdering(t *testing.T) {
	profile := fullProfile()
	metrics := metricsAtGoal(profile)
	goals := DeriveGoals(profile)
	for i := range metrics {
		switch metrics[i].ID {
		case domain.MetricWater:
			metrics[i].Value = goals.Water * 0.2 // alert
		case domain.MetricExercise:
			metrics[i].Value = goals.Exercise * 0.8 // tip
		}
	}

	recs := GenerateRecommendations(profile, metrics, 75)
	require.NotEmpty(t, recs)
	for i := 1; i < len(recs); i++ {
		assert.LessOrEqual(t, recs[i-1].Priority, recs[i].Priority)
	}
	assert.Equal(t, domain.RecAlert, recs[0].Type)
}

func TestRecommendationsLowScoreAlert(t *testing.T) {
	profile := fullProfile()
	recs := GenerateRecommendations(profile, domain.DefaultMetrics(), 20)

	var found bool
	for _, r := range recs {
		if r.ID == "alert-overall" {
			found = true
			assert.Equal(t, domain.RecAlert, r.Type)
		}
	}
	assert.True(t, found, "expected the global low-score alert")
}

func TestRecommendationsProteinForMuscleGain(t *testing.T) {
	profile := fullProfile()
	profile.Goal = domain.GoalGainMuscle
	metrics := metricsAtGoal(profile)
	goals := DeriveGoals(profile)
	for i := range metrics {
		if metrics[i].ID == domain.MetricProtein {
			metrics[i].Value = goals.Protein * 0.8
		}
	}

	recs := GenerateRecommendations(profile, metrics, 90)
	var found bool
	for _, r := range recs {
		if r.ID == "tip-protein-muscle" {
			found = true
		}
	}
	assert.True(t, found, "expected the muscle-gain protein tip")
}

func TestRankRecommendationsDedup(t *testing.T) {
	recs := rankRecommendations([]domain.Recommendation{
		{ID: "a", Message: "same", Type: domain.RecTip, Priority: domain.RecPriorityTip},
		{ID: "b", Message: "same", Type: domain.RecAlert, Priority: domain.RecPriorityAlert},
		{ID: "c", Message: "other", Type: domain.RecAlert, Priority: domain.RecPriorityAlert},
	})

	require.Len(t, recs, 2)
	// First occurrence wins the dedup, then sorting moves the alert first.
	assert.Equal(t, "c", recs[0].ID)
	assert.Equal(t, "a", recs[1].ID)
}

func TestRankRecommendationsEmpty(t *testing.T) {
	assert.Nil(t, rankRecommendations(nil))
}
