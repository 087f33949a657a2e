package domain

// Gender values accepted on a health profile.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Activity levels used by the goal-derivation formulas.
const (
	LevelSedentary = "sedentary"
	LevelModerate  = "moderate"
	LevelActive    = "active"
)

// Wellness goals a user can target.
const (
	GoalLoseWeight    = "lose_weight"
	GoalMaintain      = "maintain"
	GoalGainMuscle    = "gain_muscle"
	GoalImproveHealth = "improve_health"
)

// HealthProfile holds the onboarding data the Health Engine derives goals
// from. Numeric fields are pointers because a profile starts empty and is
// filled in by partial merges.
type HealthProfile struct {
	WeightKg               *float64 `json:"weight_kg,omitempty"`
	HeightCm               *float64 `json:"height_cm,omitempty"`
	AgeYears               *int     `json:"age_years,omitempty"`
	Gender                 string   `json:"gender,omitempty"`
	ActivityLevel          string   `json:"activity_level,omitempty"`
	Goal                   string   `json:"goal,omitempty"`
	Restrictions           []string `json:"restrictions,omitempty"`
	HasCompletedOnboarding bool     `json:"has_completed_onboarding"`
}

// HasRestriction reports whether the profile carries the given tag.
func (p *HealthProfile) HasRestriction(tag string) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Restrictions {
		if r == tag {
			return true
		}
	}
	return false
}

// BMI returns the body mass index, or 0 when weight or height is unset.
func (p *HealthProfile) BMI() float64 {
	if p == nil || p.WeightKg == nil || p.HeightCm == nil || *p.HeightCm == 0 {
		return 0
	}
	m := *p.HeightCm / 100
	return *p.WeightKg / (m * m)
}

// HealthProfilePatch is a partial profile update. Nil fields are untouched.
type HealthProfilePatch struct {
	WeightKg               *float64 `json:"weight_kg,omitempty"`
	HeightCm               *float64 `json:"height_cm,omitempty"`
	AgeYears               *int     `json:"age_years,omitempty"`
	Gender                 *string  `json:"gender,omitempty"`
	ActivityLevel          *string  `json:"activity_level,omitempty"`
	Goal                   *string  `json:"goal,omitempty"`
	Restrictions           []string `json:"restrictions,omitempty"`
	HasCompletedOnboarding *bool    `json:"has_completed_onboarding,omitempty"`
}

// Apply merges the patch into the profile.
func (p HealthProfilePatch) Apply(dst *HealthProfile) {
	if dst == nil {
		return
	}
	if p.WeightKg != nil {
		dst.WeightKg = p.WeightKg
	}
	if p.HeightCm != nil {
		dst.HeightCm = p.HeightCm
	}
	if p.AgeYears != nil {
		dst.AgeYears = p.AgeYears
	}
	if p.Gender != nil {
		dst.Gender = *p.Gender
	}
	if p.ActivityLevel != nil {
		dst.ActivityLevel = *p.ActivityLevel
	}
	if p.Goal != nil {
		dst.Goal = *p.Goal
	}
	if p.Restrictions != nil {
		dst.Restrictions = p.Restrictions
	}
	if p.HasCompletedOnboarding != nil {
		dst.HasCompletedOnboarding = *p.HasCompletedOnboarding
	}
}
