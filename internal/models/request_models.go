package models

// SubmitProfileRequest is the onboarding form payload.
type SubmitProfileRequest struct {
	Age                 string `json:"age" binding:"required"`
	Occupation          string `json:"occupation" binding:"required"`
	Goal                string `json:"goal"`
	ActivityLevel       string `json:"activityLevel"`
	DietaryRestrictions string `json:"dietaryRestrictions"`
}

// ToProfile converts the request into a normalized UserProfile.
func (r *SubmitProfileRequest) ToProfile() UserProfile {
	profile := UserProfile{
		Age:                 r.Age,
		Occupation:          r.Occupation,
		Goal:                Goal(r.Goal),
		ActivityLevel:       ActivityLevel(r.ActivityLevel),
		DietaryRestrictions: r.DietaryRestrictions,
	}
	return profile.Normalize()
}

// NavigateRequest asks the session to switch to a different view.
type NavigateRequest struct {
	View string `json:"view" binding:"required"`
}

// SelectMembershipRequest selects a membership pass by its identifier.
type SelectMembershipRequest struct {
	ID string `json:"id" binding:"required"`
}
