package core

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"nutrigo-backend-go/internal/models"
)

var (
	// ErrMenuItemNotFound is returned when an added-marker targets an
	// unknown menu item ID.
	ErrMenuItemNotFound = errors.New("menu item not found")

	// ErrMembershipNotFound is returned when a selection targets an
	// unknown membership pass.
	ErrMembershipNotFound = errors.New("membership plan not found")
)

// DefaultAddedTTL is how long a "just added" marker stays visible before
// its timer clears it.
const DefaultAddedTTL = 2000 * time.Millisecond

// menuCatalog is the fixed explore-menu. There is no inventory behind it.
var menuCatalog = []models.MenuItem{
	{
		ID: 1, Name: "Quinoa Chicken Bowl", Category: "High Protein",
		Price: 58, Calories: 450, Tags: []string{"GF", "High Protein"},
		Image: "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?auto=format&fit=crop&w=800&q=80",
	},
	{
		ID: 2, Name: "Salmon Avocado Salad", Category: "Low Carb",
		Price: 68, Calories: 380, Tags: []string{"Keto", "Omega-3"},
		Image: "https://images.unsplash.com/photo-1467003909585-2f8a7270028d?auto=format&fit=crop&w=800&q=80",
	},
	{
		ID: 3, Name: "Tofu Vegetable Stir-fry", Category: "Vegan",
		Price: 45, Calories: 320, Tags: []string{"Vegan", "Light"},
		Image: "https://images.unsplash.com/photo-1540420773420-3366772f4999?auto=format&fit=crop&w=800&q=80",
	},
	{
		ID: 4, Name: "Beef & Broccoli Rice", Category: "Balanced",
		Price: 62, Calories: 550, Tags: []string{"Iron", "Filling"},
		Image: "https://images.unsplash.com/photo-1534939561126-855f86654015?auto=format&fit=crop&w=800&q=80",
	},
	{
		ID: 5, Name: "Greek Yogurt Parfait", Category: "Breakfast",
		Price: 35, Calories: 250, Tags: []string{"Probiotic", "Sweet"},
		Image: "https://images.unsplash.com/photo-1488477181946-6428a0291777?auto=format&fit=crop&w=800&q=80",
	},
}

// menuCategories is the filter strip, in display order. "All" disables
// filtering.
var menuCategories = []string{"All", "High Protein", "Low Carb", "Vegan", "Breakfast"}

// membershipCatalog is the fixed set of passes shown on the profile
// screen. The quarterly pass is the recommended default.
var membershipCatalog = []models.MembershipPlan{
	{
		ID: "monthly", Title: "Monthly Pass", Price: "50", Period: "/mo", Discount: "10%",
		Features: []string{"10% Off All Meals", "Free Delivery", "Standard Support"},
	},
	{
		ID: "quarterly", Title: "Quarterly Pass", Price: "150", Period: "/qtr", Discount: "20%",
		Features:    []string{"20% Off All Meals", "Free Delivery", "Priority Support", "Weekly Adjustments"},
		Recommended: true,
	},
	{
		ID: "annual", Title: "Annual Pass", Price: "600", Period: "/yr", Discount: "30%",
		Features: []string{"30% Off All Meals", "Free Delivery", "1-on-1 Nutritionist", "Exclusive Menu Access"},
	},
}

// catalogService implements CatalogService over the fixed catalogs plus a
// little transient state: per-item "just added" markers that self-clear,
// and the currently highlighted membership pass.
type catalogService struct {
	addedTTL time.Duration

	mu           sync.Mutex
	added        map[int]*time.Timer
	activePassID string
	closed       bool
}

// NewCatalogService creates a CatalogService. addedTTL <= 0 selects
// DefaultAddedTTL.
func NewCatalogService(addedTTL time.Duration) CatalogService {
	if addedTTL <= 0 {
		addedTTL = DefaultAddedTTL
	}
	return &catalogService{
		addedTTL:     addedTTL,
		added:        make(map[int]*time.Timer),
		activePassID: "quarterly",
	}
}

// Menu returns the catalog filtered by category. A filter matches an
// item's category exactly or any of its tags; "All" (or empty) returns
// everything.
func (s *catalogService) Menu(category string) []models.MenuItem {
	if category == "" || category == "All" {
		return append([]models.MenuItem(nil), menuCatalog...)
	}
	var out []models.MenuItem
	for _, item := range menuCatalog {
		if item.Category == category || containsString(item.Tags, category) {
			out = append(out, item)
		}
	}
	return out
}

// Categories returns the filter strip in display order.
func (s *catalogService) Categories() []string {
	return append([]string(nil), menuCategories...)
}

// MarkAdded flags a menu item as just added and schedules the flag to
// clear after the TTL. Re-adding an item restarts its timer.
func (s *catalogService) MarkAdded(id int) error {
	if !menuItemExists(id) {
		return fmt.Errorf("%w: id %d", ErrMenuItemNotFound, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	if timer, ok := s.added[id]; ok {
		timer.Stop()
	}
	s.added[id] = time.AfterFunc(s.addedTTL, func() {
		s.mu.Lock()
		delete(s.added, id)
		s.mu.Unlock()
	})
	return nil
}

// RecentlyAdded returns the IDs currently flagged, in ascending order.
func (s *catalogService) RecentlyAdded() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int, 0, len(s.added))
	for id := range s.added {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Memberships returns the passes in catalog order.
func (s *catalogService) Memberships() []models.MembershipPlan {
	return append([]models.MembershipPlan(nil), membershipCatalog...)
}

// SelectMembership highlights a pass by ID.
func (s *catalogService) SelectMembership(id string) error {
	if membershipIndex(id) < 0 {
		return fmt.Errorf("%w: %q", ErrMembershipNotFound, id)
	}
	s.mu.Lock()
	s.activePassID = id
	s.mu.Unlock()
	return nil
}

// ActiveMembership returns the ID of the highlighted pass.
func (s *catalogService) ActiveMembership() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activePassID
}

// MembershipOrder returns the passes in card-stack display order: the
// active pass first, the rest by distance from it in the fixed list
// (nearer first, earlier index breaking ties).
func (s *catalogService) MembershipOrder() []models.MembershipPlan {
	active := membershipIndex(s.ActiveMembership())
	if active < 0 {
		active = 0
	}

	order := make([]models.MembershipPlan, len(membershipCatalog))
	copy(order, membershipCatalog)
	sort.SliceStable(order, func(i, j int) bool {
		di := distance(membershipIndex(order[i].ID), active)
		dj := distance(membershipIndex(order[j].ID), active)
		return di < dj
	})
	return order
}

// Close stops all outstanding added-marker timers. Further MarkAdded
// calls become no-ops.
func (s *catalogService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, timer := range s.added {
		timer.Stop()
		delete(s.added, id)
	}
}

func menuItemExists(id int) bool {
	for _, item := range menuCatalog {
		if item.ID == id {
			return true
		}
	}
	return false
}

func membershipIndex(id string) int {
	for i, plan := range membershipCatalog {
		if plan.ID == id {
			return i
		}
	}
	return -1
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func distance(a, b int) int {
	if a < b {
		return b - a
	}
	return a - b
}
