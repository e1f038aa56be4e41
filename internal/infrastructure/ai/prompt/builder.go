// Package prompt builds the natural-language instructions sent to the
// generative AI endpoint. Builders are pure functions of their inputs:
// no side effects, no network, deterministic output.
package prompt

import (
	"fmt"
	"strings"

	"github.com/fridgelens/v1/internal/ports/outbound"
)

// IngredientDetection asks the model to name the food items visible in
// the attached fridge photo as a flat comma-separated list, which the
// parser splits without further structure.
func IngredientDetection() string {
	return "Look at this photo of a refrigerator's contents and list every food ingredient you can identify. " +
		"Respond with ONLY a comma-separated list of ingredient names, nothing else. " +
		"Example: eggs, milk, cheddar cheese, spinach"
}

// recipeSchemaExample is the worked output example embedded in the
// generation prompt so the parser's expectations are self-documenting
// to the model.
const recipeSchemaExample = `{
  "recipes": [
    {
      "name": "Spinach Omelette",
      "ingredients": ["eggs", "spinach", "cheddar cheese"],
      "instructions": ["Whisk the eggs.", "Wilt the spinach in a pan.", "Add eggs and cheese, fold and serve."],
      "calories": 320,
      "carbonFootprint": 1.2,
      "nutritionalInfo": {"protein": 21.0, "carbs": 4.0, "fat": 24.0, "fiber": 1.5},
      "expirationInfo": {"daysUntilExpiration": 2, "freshnessScore": 0.8, "priorityIngredients": ["spinach"]}
    }
  ]
}`

// RecipeGeneration asks for exactly three recipes built from the given
// ingredients, with optional health-profile constraints folded in as
// advisory text.
func RecipeGeneration(req outbound.RecipeRequest) string {
	var b strings.Builder

	b.WriteString("You are an expert chef. Create exactly 3 recipes using only these available ingredients:\n")
	b.WriteString(strings.Join(req.Ingredients, ", "))
	b.WriteString("\n")

	if len(req.DietaryPreferences) > 0 {
		b.WriteString(fmt.Sprintf("\nDietary preferences: %s", strings.Join(req.DietaryPreferences, ", ")))
	}
	if len(req.Allergies) > 0 {
		b.WriteString(fmt.Sprintf("\nStrictly avoid these allergens: %s", strings.Join(req.Allergies, ", ")))
	}
	if req.FitnessGoal != "" {
		b.WriteString(fmt.Sprintf("\nFitness goal: %s", req.FitnessGoal))
	}
	if req.ActivityLevel != "" {
		b.WriteString(fmt.Sprintf("\nActivity level: %s", req.ActivityLevel))
	}
	if req.Sustainable {
		b.WriteString("\nFocus on sustainability: prioritize ingredients that expire soon and minimize carbon footprint.")
	}

	b.WriteString("\n\nCRITICAL: Respond with ONLY a valid JSON object in this exact format:\n")
	b.WriteString(recipeSchemaExample)
	b.WriteString("\n\nEvery recipe needs all fields. freshnessScore is a number between 0 and 1. ")
	b.WriteString("priorityIngredients must be drawn from that recipe's own ingredients. ")
	b.WriteString("No additional text, explanations, or formatting.")

	return b.String()
}

// CookingTip asks for free-form advice for a named recipe. The reply is
// passed through verbatim, so no output format contract is embedded.
func CookingTip(recipeName string) string {
	return fmt.Sprintf("Give me one practical cooking tip for preparing %s. "+
		"Keep it to two or three sentences of plain text.", recipeName)
}

// workoutSchemaExample mirrors the recommendation payload the parser decodes.
const workoutSchemaExample = `{
  "recipeName": "Spinach Omelette",
  "caloriesToBurn": 320,
  "options": [
    {"type": "walking", "duration": 80, "caloriesBurned": 320, "description": "A brisk walk around the neighborhood."},
    {"type": "running", "duration": 32, "caloriesBurned": 320, "description": "A steady jog at conversational pace."},
    {"type": "cycling", "duration": 40, "caloriesBurned": 320, "description": "A moderate ride on flat terrain."}
  ]
}`

// WorkoutRecommendation asks for exactly three workout options that
// burn the given recipe's calories. The recipe name and calorie count
// must be echoed back unchanged so the recommendation stays tied to the
// triggering recipe.
func WorkoutRecommendation(recipeName string, calories int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("I just ate %q which contains %d calories. ", recipeName, calories))
	b.WriteString("Recommend workouts to burn those calories.\n\n")
	b.WriteString(fmt.Sprintf("Requirements:\n- recipeName must be exactly %q\n- caloriesToBurn must be exactly %d\n", recipeName, calories))
	b.WriteString("- Provide exactly 3 options, one each of type walking, running, and cycling\n")
	b.WriteString("- duration is whole minutes greater than 0\n")
	b.WriteString("\nCRITICAL: Respond with ONLY a valid JSON object in this exact format:\n")
	b.WriteString(workoutSchemaExample)
	b.WriteString("\n\nNo additional text, explanations, or formatting.")

	return b.String()
}
