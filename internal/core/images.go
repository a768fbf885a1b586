package core

import "strings"

// foodImageKeys lists the recognized image keywords in a fixed order so
// that substring matching is deterministic.
var foodImageKeys = []string{
	"chicken", "fish", "beef", "pork", "salad", "vegetable", "rice", "pasta",
	"noodle", "fruit", "oatmeal", "yogurt", "soup", "sandwich", "wrap", "tofu",
}

// foodImageIndex maps keywords to curated Unsplash photos. Verified IDs,
// to avoid broken links.
var foodImageIndex = map[string]string{
	"chicken":   "https://images.unsplash.com/photo-1604908176997-125f25cc6f3d?auto=format&fit=crop&w=800&q=80",
	"fish":      "https://images.unsplash.com/photo-1519708227418-c8fd9a32b7a2?auto=format&fit=crop&w=800&q=80",
	"beef":      "https://images.unsplash.com/photo-1534939561126-855f86654015?auto=format&fit=crop&w=800&q=80",
	"pork":      "https://images.unsplash.com/photo-1624726175512-19b9baf00ca9?auto=format&fit=crop&w=800&q=80",
	"salad":     "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?auto=format&fit=crop&w=800&q=80",
	"vegetable": "https://images.unsplash.com/photo-1540420773420-3366772f4999?auto=format&fit=crop&w=800&q=80",
	"rice":      "https://images.unsplash.com/photo-1512058564366-18510be2db19?auto=format&fit=crop&w=800&q=80",
	"pasta":     "https://images.unsplash.com/photo-1563379926898-05f4575a45d8?auto=format&fit=crop&w=800&q=80",
	"noodle":    "https://images.unsplash.com/photo-1569718212165-3a8278d5f624?auto=format&fit=crop&w=800&q=80",
	"fruit":     "https://images.unsplash.com/photo-1519999482648-25049ddd37b1?auto=format&fit=crop&w=800&q=80",
	"oatmeal":   "https://images.unsplash.com/photo-1517673400267-0251440c45dc?auto=format&fit=crop&w=800&q=80",
	"yogurt":    "https://images.unsplash.com/photo-1488477181946-6428a0291777?auto=format&fit=crop&w=800&q=80",
	"soup":      "https://images.unsplash.com/photo-1547592166-23ac45744acd?auto=format&fit=crop&w=800&q=80",
	"sandwich":  "https://images.unsplash.com/photo-1528735602780-2552fd46c7af?auto=format&fit=crop&w=800&q=80",
	"wrap":      "https://images.unsplash.com/photo-1626700051175-6818013e1d4f?auto=format&fit=crop&w=800&q=80",
	"tofu":      "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?auto=format&fit=crop&w=800&q=80",
}

// defaultFoodImage is served for empty or unrecognized keywords.
const defaultFoodImage = "https://images.unsplash.com/photo-1505253716362-afaea1d3d1af?auto=format&fit=crop&w=800&q=80"

// ResolveFoodImage maps a meal's image keyword to a photo URL. It tries an
// exact (case-insensitive) match first, then the first recognized keyword
// contained in the input (so "grilled chicken breast" resolves to
// "chicken"), and falls back to a default image otherwise.
func ResolveFoodImage(keyword string) string {
	if keyword == "" {
		return defaultFoodImage
	}

	lower := strings.ToLower(keyword)
	if url, ok := foodImageIndex[lower]; ok {
		return url
	}
	for _, key := range foodImageKeys {
		if strings.Contains(lower, key) {
			return foodImageIndex[key]
		}
	}
	return defaultFoodImage
}

// DefaultFoodImage exposes the fallback URL for response decoration.
func DefaultFoodImage() string { return defaultFoodImage }
