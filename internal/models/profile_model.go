package models

import "errors"

// Goal is the user's primary nutrition objective.
type Goal string

const (
	GoalFatLoss     Goal = "fat_loss"
	GoalMuscleGain  Goal = "muscle_gain"
	GoalMaintenance Goal = "maintenance"
	GoalRecovery    Goal = "recovery"
)

// ActivityLevel describes how physically active the user is day to day.
type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLight     ActivityLevel = "light"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityActive    ActivityLevel = "active"
)

// ErrProfileIncomplete is returned by UserProfile.Validate when a required
// field is missing. Age and occupation are the only required fields; the
// rest either default or may be empty.
var ErrProfileIncomplete = errors.New("profile is missing required fields")

// UserProfile holds the onboarding inputs that drive plan generation.
// It is created fresh per onboarding session and discarded once submitted;
// nothing here is ever persisted.
type UserProfile struct {
	Age                 string        `json:"age"`        // free-text numeric string, no validated range
	Occupation          string        `json:"occupation"`
	Goal                Goal          `json:"goal"`
	ActivityLevel       ActivityLevel `json:"activityLevel"`
	DietaryRestrictions string        `json:"dietaryRestrictions"` // empty string means "none"
}

// Validate enforces the form-side requirement that age and occupation are
// non-empty before a profile may be submitted.
func (p UserProfile) Validate() error {
	if p.Age == "" || p.Occupation == "" {
		return ErrProfileIncomplete
	}
	return nil
}

// Normalize returns a copy of the profile with unrecognized enum values
// replaced by their defaults (fat_loss / moderate), mirroring the defaults
// the onboarding form pre-selects.
func (p UserProfile) Normalize() UserProfile {
	switch p.Goal {
	case GoalFatLoss, GoalMuscleGain, GoalMaintenance, GoalRecovery:
	default:
		p.Goal = GoalFatLoss
	}
	switch p.ActivityLevel {
	case ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive:
	default:
		p.ActivityLevel = ActivityModerate
	}
	return p
}
