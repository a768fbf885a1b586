package api

import (
	"nutrigo-backend-go/internal/core"
	"nutrigo-backend-go/internal/models"
)

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string `json:"error"`             // A high-level error message or code
	Details string `json:"details,omitempty"` // More specific details about the error, if available
}

// SuccessResponse is a generic structure for simple success messages.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// MealView is a Meal decorated with the resolved image URL for its keyword.
// The raw imageKeyword is kept alongside so clients can do their own lookups.
type MealView struct {
	models.Meal
	Image string `json:"image"`
}

// PlanView is the API shape of a generated daily plan.
type PlanView struct {
	Breakfast     MealView `json:"breakfast"`
	Lunch         MealView `json:"lunch"`
	Dinner        MealView `json:"dinner"`
	TotalCalories int      `json:"totalCalories"`
	Analysis      string   `json:"analysis"`
}

// NewPlanView decorates a plan's meals with their image URLs.
func NewPlanView(plan *models.DailyPlan) PlanView {
	decorate := func(m models.Meal) MealView {
		return MealView{Meal: m, Image: core.ResolveFoodImage(m.ImageKeyword)}
	}
	return PlanView{
		Breakfast:     decorate(plan.Breakfast),
		Lunch:         decorate(plan.Lunch),
		Dinner:        decorate(plan.Dinner),
		TotalCalories: plan.TotalCalories,
		Analysis:      plan.Analysis,
	}
}

// SessionStateResponse reports what a client should render for its session.
type SessionStateResponse struct {
	SessionID      string `json:"sessionId"`
	View           string `json:"view"`
	Loading        bool   `json:"loading"`
	LoadingStep    int    `json:"loadingStep"`
	LoadingMessage string `json:"loadingMessage,omitempty"`
	HasPlan        bool   `json:"hasPlan"`
}

// MenuItemView is a MenuItem plus its transient "just added" marker.
type MenuItemView struct {
	models.MenuItem
	Added bool `json:"added"`
}

// MembershipsResponse carries the pass catalog in display order plus the
// identifier of the currently selected pass.
type MembershipsResponse struct {
	Plans  []models.MembershipPlan `json:"plans"`
	Active string                  `json:"active"`
}
