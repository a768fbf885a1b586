package core

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"nutrigo-backend-go/internal/gemini"
	"nutrigo-backend-go/internal/models"
)

// plannerSystemInstruction fixes the assistant persona for every
// generation call.
const plannerSystemInstruction = "You are NutriGo, an expert AI nutritionist for busy Hong Kong residents. " +
	"You prioritize balanced macros, local taste preferences, and convenience."

// imageKeywordChoices is the closed set of keywords the model may pick for
// meal illustration. Unknown values degrade to a default image at render
// time, so this is guidance rather than a hard constraint.
const imageKeywordChoices = "'chicken', 'fish', 'beef', 'pork', 'salad', 'vegetable', 'rice', 'pasta', " +
	"'noodle', 'fruit', 'oatmeal', 'yogurt', 'soup', 'sandwich', 'wrap', 'tofu'"

// plannerService implements PlannerService against a gemini.TextGenerator.
type plannerService struct {
	generator gemini.TextGenerator
	logger    *zap.Logger
}

// NewPlannerService creates a PlannerService. The generator is typically a
// *gemini.Client; tests pass a stub.
func NewPlannerService(generator gemini.TextGenerator, logger *zap.Logger) PlannerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &plannerService{generator: generator, logger: logger}
}

// Generate composes the prompt, calls the provider with a strict response
// schema, and parses the result. On any failure it logs diagnostics and
// returns FallbackPlan(); errors never cross this boundary.
func (s *plannerService) Generate(ctx context.Context, profile models.UserProfile) *models.DailyPlan {
	prompt := buildPlanPrompt(profile)

	text, err := s.generator.GenerateContent(ctx, gemini.Request{
		Prompt:            prompt,
		SystemInstruction: plannerSystemInstruction,
		Schema:            planResponseSchema(),
	})
	if err != nil {
		s.logger.Warn("meal plan generation failed, serving fallback plan", zap.Error(err))
		return FallbackPlan()
	}

	var plan models.DailyPlan
	if err := json.Unmarshal([]byte(text), &plan); err != nil {
		s.logger.Warn("meal plan response did not parse, serving fallback plan",
			zap.Error(err),
			zap.Int("response_length", len(text)))
		return FallbackPlan()
	}

	// The provider is only schema-bound, not arithmetic-bound: reconcile
	// the reported total against the meal sum rather than trusting it.
	if sum := plan.MealCalorieSum(); plan.TotalCalories != sum {
		s.logger.Warn("provider total calories disagree with meal sum, using recomputed sum",
			zap.Int("reported", plan.TotalCalories),
			zap.Int("computed", sum))
		plan.TotalCalories = sum
	}

	return &plan
}

// buildPlanPrompt embeds every profile field verbatim. Empty dietary
// restrictions are rendered as the literal "None".
func buildPlanPrompt(profile models.UserProfile) string {
	restrictions := profile.DietaryRestrictions
	if restrictions == "" {
		restrictions = "None"
	}

	var b strings.Builder
	b.WriteString("Generate a 1-day healthy meal plan for a user in Hong Kong with the following profile:\n")
	fmt.Fprintf(&b, "Age: %s\n", profile.Age)
	fmt.Fprintf(&b, "Occupation: %s\n", profile.Occupation)
	fmt.Fprintf(&b, "Goal: %s\n", profile.Goal)
	fmt.Fprintf(&b, "Activity Level: %s\n", profile.ActivityLevel)
	fmt.Fprintf(&b, "Dietary Restrictions: %s\n", restrictions)
	b.WriteString("\n")
	b.WriteString("The meals should be available in Hong Kong, affordable (student/young worker friendly), and scientifically balanced.\n")
	b.WriteString("Prices should be in HKD.\n")
	return b.String()
}

// mealResponseSchema constrains one meal object. All eight fields are
// required so a schema-conformant response always yields complete meals.
func mealResponseSchema() *gemini.Schema {
	return &gemini.Schema{
		Type: "OBJECT",
		Properties: map[string]*gemini.Schema{
			"name":        {Type: "STRING", Description: "Name of the dish"},
			"calories":    {Type: "NUMBER", Description: "Calorie count"},
			"protein":     {Type: "STRING", Description: "Protein content in grams (e.g., '25g')"},
			"carbs":       {Type: "STRING", Description: "Carb content in grams"},
			"fats":        {Type: "STRING", Description: "Fat content in grams"},
			"description": {Type: "STRING", Description: "Short appetizing description"},
			"price":       {Type: "NUMBER", Description: "Price in HKD (30-90 range)"},
			"imageKeyword": {
				Type:        "STRING",
				Description: "Single keyword for image search. Choose strictly from: " + imageKeywordChoices,
			},
		},
		Required: []string{"name", "calories", "protein", "carbs", "fats", "description", "price", "imageKeyword"},
	}
}

// planResponseSchema constrains the full daily-plan object.
func planResponseSchema() *gemini.Schema {
	return &gemini.Schema{
		Type: "OBJECT",
		Properties: map[string]*gemini.Schema{
			"breakfast":     mealResponseSchema(),
			"lunch":         mealResponseSchema(),
			"dinner":        mealResponseSchema(),
			"totalCalories": {Type: "NUMBER"},
			"analysis": {
				Type:        "STRING",
				Description: "Brief analysis of why this plan fits the user profile (max 50 words)",
			},
		},
		Required: []string{"breakfast", "lunch", "dinner", "totalCalories", "analysis"},
	}
}

// FallbackPlan returns the fixed plan served when the provider path fails
// in any way (network error, missing key, empty or malformed output). The
// analysis string says so explicitly rather than passing the plan off as
// personalized.
func FallbackPlan() *models.DailyPlan {
	return &models.DailyPlan{
		Breakfast: models.Meal{
			Name:         "Oatmeal with Berries",
			Calories:     350,
			Protein:      "12g",
			Carbs:        "60g",
			Fats:         "6g",
			Description:  "High fiber start.",
			Price:        35,
			ImageKeyword: "oatmeal",
		},
		Lunch: models.Meal{
			Name:         "Grilled Chicken Salad",
			Calories:     450,
			Protein:      "40g",
			Carbs:        "20g",
			Fats:         "15g",
			Description:  "Lean protein boost.",
			Price:        55,
			ImageKeyword: "chicken",
		},
		Dinner: models.Meal{
			Name:         "Steamed Fish & Brown Rice",
			Calories:     500,
			Protein:      "35g",
			Carbs:        "45g",
			Fats:         "10g",
			Description:  "Classic HK healthy dinner.",
			Price:        65,
			ImageKeyword: "fish",
		},
		TotalCalories: 1300,
		Analysis:      "This is a fallback plan. Please configure your API Key to get personalized AI results.",
	}
}
