package core

import (
	"context"

	"nutrigo-backend-go/internal/models"
)

// PlannerService turns a user profile into a one-day meal plan.
//
// Generate never fails outwardly: any provider error, missing credential,
// or unparseable output is absorbed and a fixed fallback plan is returned
// instead. The caller may treat the result as always present.
type PlannerService interface {
	Generate(ctx context.Context, profile models.UserProfile) *models.DailyPlan
}

// CatalogService serves the static menu and membership catalogs and the
// small pieces of transient state attached to them (the "just added"
// markers and the selected membership pass).
type CatalogService interface {
	Menu(category string) []models.MenuItem
	Categories() []string
	MarkAdded(id int) error
	RecentlyAdded() []int
	Memberships() []models.MembershipPlan
	SelectMembership(id string) error
	ActiveMembership() string
	// MembershipOrder returns the passes in display order for the card
	// stack: the active pass first, then the others by distance from it.
	MembershipOrder() []models.MembershipPlan
	// Close releases any outstanding added-marker timers.
	Close()
}
