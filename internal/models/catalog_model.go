package models

// MenuItem is one entry of the static explore-menu catalog.
type MenuItem struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Price    float64  `json:"price"` // HKD
	Calories int      `json:"calories"`
	Image    string   `json:"image"`
	Tags     []string `json:"tags"`
}

// MembershipPlan is one of the fixed membership passes shown on the
// profile screen. Prices and discounts are display strings; billing is
// out of scope.
type MembershipPlan struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Price       string   `json:"price"`
	Period      string   `json:"period"`
	Discount    string   `json:"discount"`
	Features    []string `json:"features"`
	Recommended bool     `json:"recommended"`
}
