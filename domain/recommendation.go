package domain

// RecommendationType classifies a generated recommendation.
type RecommendationType string

const (
	RecAlert        RecommendationType = "alert"
	RecTip          RecommendationType = "tip"
	RecGoalAchieved RecommendationType = "goal_achieved"
	RecEvolution    RecommendationType = "evolution"
)

// Recommendation priorities: 1 sorts first.
const (
	RecPriorityAlert       = 1
	RecPriorityTip         = 2
	RecPriorityAchievement = 3
)

// Recommendation is a derived, never-stored advisory message. The full list
// is regenerated on every profile or metric change.
type Recommendation struct {
	ID       string             `json:"id"`
	Message  string             `json:"message"`
	Type     RecommendationType `json:"type"`
	Icon     string             `json:"icon"`
	Priority int                `json:"priority"`
}
