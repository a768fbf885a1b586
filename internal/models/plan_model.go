package models

// Meal is one of the three meals in a generated daily plan. Macro fields
// are unit-annotated display strings (e.g. "25g") exactly as the provider
// returns them; only calories are numeric.
type Meal struct {
	Name         string  `json:"name"`
	Calories     int     `json:"calories"`
	Protein      string  `json:"protein"`
	Carbs        string  `json:"carbs"`
	Fats         string  `json:"fats"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`        // HKD, prompted into the 30-90 range but not enforced
	ImageKeyword string  `json:"imageKeyword"` // closed keyword set for image lookup; unknown values degrade to a default image
}

// DailyPlan is the result of one generation call. It replaces any prior
// plan for the session and is never persisted.
type DailyPlan struct {
	Breakfast     Meal   `json:"breakfast"`
	Lunch         Meal   `json:"lunch"`
	Dinner        Meal   `json:"dinner"`
	TotalCalories int    `json:"totalCalories"`
	Analysis      string `json:"analysis"`
}

// MealCalorieSum returns the sum of the three meals' calories, used to
// reconcile the provider-reported total.
func (p DailyPlan) MealCalorieSum() int {
	return p.Breakfast.Calories + p.Lunch.Calories + p.Dinner.Calories
}

// ViewState selects which screen of the app a session is on.
type ViewState string

const (
	ViewHome       ViewState = "home"
	ViewOnboarding ViewState = "onboarding"
	ViewPlan       ViewState = "plan"
	ViewMenu       ViewState = "menu"
	ViewProfile    ViewState = "profile"

	// ViewLoading is a render-only pseudo view: it is never stored as a
	// session's current view, only reported while a generation is in flight.
	ViewLoading ViewState = "loading"
)

// IsNavigable reports whether v is one of the five navigable view tags.
// ViewLoading is deliberately excluded.
func (v ViewState) IsNavigable() bool {
	switch v {
	case ViewHome, ViewOnboarding, ViewPlan, ViewMenu, ViewProfile:
		return true
	}
	return false
}
