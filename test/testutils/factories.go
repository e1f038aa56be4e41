// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/fridgelens/v1/internal/domain/recipe"
	"github.com/fridgelens/v1/internal/domain/workout"
	"github.com/google/uuid"
)

// RecipeBuilder provides a fluent interface for building test recipes
type RecipeBuilder struct {
	name            string
	ingredients     []string
	instructions    []string
	calories        int
	carbonFootprint float64
	nutrition       recipe.NutritionInfo
	expiration      recipe.ExpirationInfo
}

// NewRecipeBuilder creates a new recipe builder with default values
func NewRecipeBuilder() *RecipeBuilder {
	faker := gofakeit.New(time.Now().UnixNano())

	return &RecipeBuilder{
		name:            faker.Dinner(),
		ingredients:     []string{"eggs", "spinach", "cheddar"},
		instructions:    []string{"Whisk the eggs.", "Fold in spinach and cheese.", "Cook until set."},
		calories:        420,
		carbonFootprint: 2.5,
		nutrition: recipe.NutritionInfo{
			Protein: 22,
			Carbs:   8,
			Fat:     30,
			Fiber:   2,
		},
		expiration: recipe.ExpirationInfo{
			DaysUntilExpiration: 5,
			FreshnessScore:      0.8,
			PriorityIngredients: []string{"spinach"},
		},
	}
}

// WithName sets the recipe name
func (rb *RecipeBuilder) WithName(name string) *RecipeBuilder {
	rb.name = name
	return rb
}

// WithIngredients sets the recipe ingredients
func (rb *RecipeBuilder) WithIngredients(ingredients ...string) *RecipeBuilder {
	rb.ingredients = ingredients
	return rb
}

// WithCalories sets the recipe calories
func (rb *RecipeBuilder) WithCalories(calories int) *RecipeBuilder {
	rb.calories = calories
	return rb
}

// WithCarbonFootprint sets the carbon footprint in kg CO2e
func (rb *RecipeBuilder) WithCarbonFootprint(kg float64) *RecipeBuilder {
	rb.carbonFootprint = kg
	return rb
}

// WithDaysUntilExpiration sets the soonest-expiring ingredient horizon
func (rb *RecipeBuilder) WithDaysUntilExpiration(days int) *RecipeBuilder {
	rb.expiration.DaysUntilExpiration = days
	return rb
}

// WithFreshnessScore sets the freshness score
func (rb *RecipeBuilder) WithFreshnessScore(score float64) *RecipeBuilder {
	rb.expiration.FreshnessScore = score
	return rb
}

// WithPriorityIngredients sets the expiring priority ingredients
func (rb *RecipeBuilder) WithPriorityIngredients(ingredients ...string) *RecipeBuilder {
	rb.expiration.PriorityIngredients = ingredients
	return rb
}

// Build creates the recipe with the configured values
func (rb *RecipeBuilder) Build() recipe.Recipe {
	return recipe.NewRecipe(
		rb.name,
		rb.ingredients,
		rb.instructions,
		rb.calories,
		rb.carbonFootprint,
		rb.nutrition,
		rb.expiration,
	)
}

// WorkoutOptionBuilder provides a fluent interface for building workout options
type WorkoutOptionBuilder struct {
	workoutType workout.Type
	duration    int
	calories    int
	description string
	completedAt *time.Time
}

// NewWorkoutOptionBuilder creates a new workout option builder with default values
func NewWorkoutOptionBuilder() *WorkoutOptionBuilder {
	return &WorkoutOptionBuilder{
		workoutType: workout.TypeWalking,
		duration:    45,
		calories:    180,
		description: "A brisk walk around the neighborhood.",
	}
}

// WithType sets the workout type
func (wb *WorkoutOptionBuilder) WithType(t workout.Type) *WorkoutOptionBuilder {
	wb.workoutType = t
	return wb
}

// WithDuration sets the duration in minutes
func (wb *WorkoutOptionBuilder) WithDuration(minutes int) *WorkoutOptionBuilder {
	wb.duration = minutes
	return wb
}

// WithCalories sets the calories burned
func (wb *WorkoutOptionBuilder) WithCalories(calories int) *WorkoutOptionBuilder {
	wb.calories = calories
	return wb
}

// CompletedAt marks the option completed at the given time
func (wb *WorkoutOptionBuilder) CompletedAt(at time.Time) *WorkoutOptionBuilder {
	wb.completedAt = &at
	return wb
}

// Build creates the workout option with the configured values
func (wb *WorkoutOptionBuilder) Build() workout.Option {
	opt := workout.NewOption(wb.workoutType, wb.duration, wb.calories, wb.description)
	if wb.completedAt != nil {
		opt = opt.Complete(*wb.completedAt)
	}
	return opt
}

// NewRecommendation creates a valid three-option recommendation for a recipe
func NewRecommendation(recipeName string, caloriesToBurn int) workout.Recommendation {
	return workout.Recommendation{
		RecipeName:     recipeName,
		CaloriesToBurn: caloriesToBurn,
		Options: []workout.Option{
			workout.NewOption(workout.TypeWalking, 60, caloriesToBurn, "Walk it off at an easy pace."),
			workout.NewOption(workout.TypeRunning, 30, caloriesToBurn, "A steady run to burn it down."),
			workout.NewOption(workout.TypeCycling, 40, caloriesToBurn, "A moderate ride on flat terrain."),
		},
	}
}

// RandomID returns a fresh uuid for tests that need unrelated identifiers
func RandomID() uuid.UUID {
	return uuid.New()
}
