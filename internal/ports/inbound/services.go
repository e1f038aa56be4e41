// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the use cases exposed to the HTTP layer
package inbound

import (
	"context"

	"github.com/fridgelens/v1/internal/domain/profile"
	"github.com/fridgelens/v1/internal/domain/recipe"
	"github.com/fridgelens/v1/internal/domain/workout"
	"github.com/google/uuid"
)

// Analysis is an immutable snapshot of a pipeline run. Partial results
// are retained when a later stage fails: a run that detected
// ingredients but failed recipe generation still exposes the
// ingredient list alongside the error message.
type Analysis struct {
	Ingredients []string        `json:"ingredients"`
	Recipes     []recipe.Recipe `json:"recipes"`
	Sustainable bool            `json:"sustainable"`
	Err         string          `json:"error,omitempty"`
}

// PipelineService orchestrates the image-to-recommendation flow.
type PipelineService interface {
	// AnalyzeImage runs image -> ingredients -> recipes, optionally
	// re-ranked for sustainability. A new call supersedes and cancels
	// any in-flight analysis; the latest image always wins.
	AnalyzeImage(ctx context.Context, image []byte, mimeType string, sustainable bool) (Analysis, error)

	// CurrentAnalysis returns a snapshot of the most recent run.
	CurrentAnalysis() Analysis

	// CookingTip fetches advice text for a named recipe.
	CookingTip(ctx context.Context, recipeName string) (string, error)

	// RecommendWorkout builds a three-option workout recommendation
	// for one of the current recipes.
	RecommendWorkout(ctx context.Context, recipeID uuid.UUID) (workout.Recommendation, error)

	// AcceptWorkout persists one option of the live recommendation as
	// completed and clears the recommendation.
	AcceptWorkout(ctx context.Context, optionID uuid.UUID) (workout.Option, error)
}

// FavoritesService manages the favorited recipe list.
type FavoritesService interface {
	List(ctx context.Context) ([]recipe.Recipe, error)
	Add(ctx context.Context, r recipe.Recipe) error
	Remove(ctx context.Context, id uuid.UUID) error
}

// ProfileService manages the user health profile.
type ProfileService interface {
	Get(ctx context.Context) (profile.UserHealthProfile, error)
	Save(ctx context.Context, p profile.UserHealthProfile) error
}

// WorkoutService manages persisted workouts and their derived views.
type WorkoutService interface {
	List(ctx context.Context) ([]workout.Option, error)
	Delete(ctx context.Context, id uuid.UUID) error
	WeeklyCompletion(ctx context.Context) ([7]bool, error)
	Stats(ctx context.Context) (workout.Stats, error)
}
