// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"

	"github.com/fridgelens/v1/internal/domain/recipe"
	"github.com/fridgelens/v1/internal/domain/workout"
)

// RecipeRequest carries the inputs for recipe generation. Profile-derived
// fields are folded into the prompt as advisory natural-language
// constraints; the model is not guaranteed to honor them and no post-hoc
// filtering is applied.
type RecipeRequest struct {
	Ingredients        []string
	DietaryPreferences []string
	Allergies          []string
	FitnessGoal        string
	ActivityLevel      string
	Sustainable        bool
}

// AIService is the gateway to the external generative AI endpoint.
// Every method performs a single dispatch with no automatic retry and
// returns a typed failure from the pkg/errors taxonomy on error.
type AIService interface {
	// DetectIngredients analyzes a captured image and returns the
	// detected ingredient names.
	DetectIngredients(ctx context.Context, image []byte, mimeType string) ([]string, error)

	// GenerateRecipes produces recipes for the given ingredients.
	GenerateRecipes(ctx context.Context, req RecipeRequest) ([]recipe.Recipe, error)

	// CookingTip returns free-form advice text for a named recipe.
	CookingTip(ctx context.Context, recipeName string) (string, error)

	// RecommendWorkout returns exactly three workout options sized to
	// burn the given recipe's calories.
	RecommendWorkout(ctx context.Context, recipeName string, calories int) (workout.Recommendation, error)

	// CheckReachability performs a live probe of the endpoint.
	CheckReachability(ctx context.Context) error
}
