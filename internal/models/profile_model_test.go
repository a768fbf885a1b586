package models

import (
	"errors"
	"testing"
)

func TestUserProfileValidate(t *testing.T) {
	ok := UserProfile{Age: "25", Occupation: "Designer"}
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	for _, p := range []UserProfile{
		{Occupation: "Designer"},
		{Age: "25"},
		{},
	} {
		if err := p.Validate(); !errors.Is(err, ErrProfileIncomplete) {
			t.Errorf("Validate(%+v) = %v, want ErrProfileIncomplete", p, err)
		}
	}
}

func TestUserProfileNormalizeDefaults(t *testing.T) {
	p := UserProfile{Age: "25", Occupation: "Designer", Goal: "get shredded", ActivityLevel: "ultra"}
	n := p.Normalize()
	if n.Goal != GoalFatLoss {
		t.Errorf("Goal = %q, want fat_loss default", n.Goal)
	}
	if n.ActivityLevel != ActivityModerate {
		t.Errorf("ActivityLevel = %q, want moderate default", n.ActivityLevel)
	}

	// Recognized values pass through untouched.
	keep := UserProfile{Goal: GoalRecovery, ActivityLevel: ActivitySedentary}.Normalize()
	if keep.Goal != GoalRecovery || keep.ActivityLevel != ActivitySedentary {
		t.Errorf("Normalize changed valid enums: %+v", keep)
	}
}

func TestSubmitProfileRequestToProfile(t *testing.T) {
	req := SubmitProfileRequest{
		Age:           "30",
		Occupation:    "Chef",
		Goal:          "muscle_gain",
		ActivityLevel: "nonsense",
	}
	p := req.ToProfile()
	if p.Goal != GoalMuscleGain {
		t.Errorf("Goal = %q", p.Goal)
	}
	if p.ActivityLevel != ActivityModerate {
		t.Errorf("ActivityLevel = %q, want normalized default", p.ActivityLevel)
	}
}
