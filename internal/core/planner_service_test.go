package core

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"nutrigo-backend-go/internal/gemini"
	"nutrigo-backend-go/internal/models"
)

// stubGenerator is a canned TextGenerator that records the last request.
type stubGenerator struct {
	text    string
	err     error
	lastReq gemini.Request
}

func (s *stubGenerator) GenerateContent(_ context.Context, req gemini.Request) (string, error) {
	s.lastReq = req
	return s.text, s.err
}

const validPlanJSON = `{
	"breakfast": {"name":"Congee with Century Egg","calories":300,"protein":"10g","carbs":"55g","fats":"4g","description":"Warm start.","price":32,"imageKeyword":"rice"},
	"lunch": {"name":"Char Siu Chicken Rice","calories":550,"protein":"38g","carbs":"65g","fats":"14g","description":"Local classic, leaned out.","price":52,"imageKeyword":"chicken"},
	"dinner": {"name":"Steamed Grouper with Greens","calories":420,"protein":"36g","carbs":"18g","fats":"12g","description":"Light finish.","price":78,"imageKeyword":"fish"},
	"totalCalories": 1270,
	"analysis": "Balanced macros for a moderately active office worker."
}`

func testProfile() models.UserProfile {
	return models.UserProfile{
		Age:           "24",
		Occupation:    "Student",
		Goal:          models.GoalMuscleGain,
		ActivityLevel: models.ActivityActive,
	}
}

func TestGenerateParsesProviderResponse(t *testing.T) {
	gen := &stubGenerator{text: validPlanJSON}
	svc := NewPlannerService(gen, nil)

	plan := svc.Generate(context.Background(), testProfile())
	if plan == nil {
		t.Fatal("Generate returned nil plan")
	}
	if plan.Breakfast.Name != "Congee with Century Egg" {
		t.Errorf("breakfast name = %q", plan.Breakfast.Name)
	}
	if plan.TotalCalories != 1270 {
		t.Errorf("totalCalories = %d, want 1270", plan.TotalCalories)
	}
	if plan.Dinner.ImageKeyword != "fish" {
		t.Errorf("dinner imageKeyword = %q", plan.Dinner.ImageKeyword)
	}
}

func TestGenerateRecomputesDisagreeingTotal(t *testing.T) {
	// Same plan but with a provider total that does not match the meal sum.
	text := strings.Replace(validPlanJSON, `"totalCalories": 1270`, `"totalCalories": 9999`, 1)
	gen := &stubGenerator{text: text}
	svc := NewPlannerService(gen, nil)

	plan := svc.Generate(context.Background(), testProfile())
	if plan.TotalCalories != 1270 {
		t.Errorf("totalCalories = %d, want recomputed 1270", plan.TotalCalories)
	}
}

func TestGenerateFallsBackOnProviderError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("api key not valid")}
	svc := NewPlannerService(gen, nil)

	plan := svc.Generate(context.Background(), testProfile())
	if !reflect.DeepEqual(plan, FallbackPlan()) {
		t.Errorf("plan after provider error = %+v, want fallback plan", plan)
	}
}

func TestGenerateFallsBackOnMalformedResponse(t *testing.T) {
	gen := &stubGenerator{text: "sorry, I cannot help with that"}
	svc := NewPlannerService(gen, nil)

	plan := svc.Generate(context.Background(), testProfile())
	if !reflect.DeepEqual(plan, FallbackPlan()) {
		t.Errorf("plan after malformed response = %+v, want fallback plan", plan)
	}
}

func TestGenerateSendsInstructionAndSchema(t *testing.T) {
	gen := &stubGenerator{text: validPlanJSON}
	svc := NewPlannerService(gen, nil)
	svc.Generate(context.Background(), testProfile())

	if !strings.Contains(gen.lastReq.SystemInstruction, "NutriGo") {
		t.Errorf("system instruction = %q, want the NutriGo persona", gen.lastReq.SystemInstruction)
	}
	if gen.lastReq.Schema == nil {
		t.Fatal("request carried no response schema")
	}
	for _, field := range []string{"breakfast", "lunch", "dinner", "totalCalories", "analysis"} {
		if _, ok := gen.lastReq.Schema.Properties[field]; !ok {
			t.Errorf("response schema is missing property %q", field)
		}
	}
}

func TestBuildPlanPromptEmbedsProfile(t *testing.T) {
	profile := models.UserProfile{
		Age:                 "31",
		Occupation:          "Nurse",
		Goal:                models.GoalRecovery,
		ActivityLevel:       models.ActivityLight,
		DietaryRestrictions: "no shellfish",
	}
	prompt := buildPlanPrompt(profile)

	for _, want := range []string{
		"Age: 31",
		"Occupation: Nurse",
		"Goal: recovery",
		"Activity Level: light",
		"Dietary Restrictions: no shellfish",
		"Prices should be in HKD.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt is missing %q\nprompt:\n%s", want, prompt)
		}
	}
}

func TestBuildPlanPromptDefaultsEmptyRestrictions(t *testing.T) {
	prompt := buildPlanPrompt(testProfile())
	if !strings.Contains(prompt, "Dietary Restrictions: None") {
		t.Errorf("empty restrictions should render as None, prompt:\n%s", prompt)
	}
}

func TestFallbackPlanIsConsistent(t *testing.T) {
	plan := FallbackPlan()
	if plan.TotalCalories != plan.MealCalorieSum() {
		t.Errorf("fallback total %d does not match meal sum %d", plan.TotalCalories, plan.MealCalorieSum())
	}
	if plan.Lunch.Name != "Grilled Chicken Salad" {
		t.Errorf("fallback lunch = %q", plan.Lunch.Name)
	}
	if !strings.Contains(plan.Analysis, "fallback plan") {
		t.Errorf("fallback analysis should say it is a fallback, got %q", plan.Analysis)
	}
}
