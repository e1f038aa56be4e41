// Package pipeline orchestrates the image-to-recommendation flow:
// fridge photo -> ingredient detection -> recipe generation ->
// optional sustainability re-ranking -> workout recommendation.
package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/fridgelens/v1/internal/domain/recipe"
	"github.com/fridgelens/v1/internal/domain/workout"
	"github.com/fridgelens/v1/internal/infrastructure/monitoring"
	"github.com/fridgelens/v1/internal/ports/inbound"
	"github.com/fridgelens/v1/internal/ports/outbound"
	apperrors "github.com/fridgelens/v1/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements inbound.PipelineService. It is the single writer
// of the analysis state and the live workout recommendation; readers
// always get snapshot copies.
type Service struct {
	ai       outbound.AIService
	profiles outbound.ProfileStore
	workouts outbound.WorkoutStore
	metrics  *monitoring.MetricsCollector
	logger   *zap.Logger

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	current    inbound.Analysis
	liveRec    *workout.Recommendation
}

// NewService creates a new pipeline service.
func NewService(
	ai outbound.AIService,
	profiles outbound.ProfileStore,
	workouts outbound.WorkoutStore,
	metrics *monitoring.MetricsCollector,
	logger *zap.Logger,
) *Service {
	return &Service{
		ai:       ai,
		profiles: profiles,
		workouts: workouts,
		metrics:  metrics,
		logger:   logger.Named("pipeline"),
	}
}

// AnalyzeImage runs the full analysis flow for a captured image. A new
// capture supersedes any in-flight analysis: the earlier run is
// canceled and its results abandoned, so the latest image always wins.
func (s *Service) AnalyzeImage(ctx context.Context, image []byte, mimeType string, sustainable bool) (inbound.Analysis, error) {
	runCtx, gen := s.beginRun(ctx)
	defer s.endRun(gen)

	analysis := inbound.Analysis{Sustainable: sustainable}

	// Stage 1: ingredient detection.
	start := time.Now()
	ingredients, err := s.ai.DetectIngredients(runCtx, image, mimeType)
	s.metrics.RecordStage("detect_ingredients", err, time.Since(start))
	if err != nil {
		return s.failRun(gen, analysis, err)
	}
	analysis.Ingredients = ingredients
	s.commit(gen, analysis)

	// Stage 2: recipe generation, biased by the active health profile.
	prof, err := s.profiles.Load(runCtx)
	if err != nil {
		return s.failRun(gen, analysis, err)
	}

	req := outbound.RecipeRequest{
		Ingredients:        dropEmpty(ingredients),
		DietaryPreferences: prof.DietaryPreferences,
		Allergies:          prof.Allergies,
		FitnessGoal:        prof.FitnessGoal,
		ActivityLevel:      prof.ActivityLevel,
		Sustainable:        sustainable,
	}

	start = time.Now()
	recipes, err := s.ai.GenerateRecipes(runCtx, req)
	s.metrics.RecordStage("generate_recipes", err, time.Since(start))
	if err != nil {
		return s.failRun(gen, analysis, err)
	}

	// Stage 3: sustainability re-ranking.
	if sustainable {
		recipe.SortSustainable(recipes)
	}
	analysis.Recipes = recipes

	s.commit(gen, analysis)
	s.logger.Info("analysis complete",
		zap.Int("ingredients", len(ingredients)),
		zap.Int("recipes", len(recipes)),
		zap.Bool("sustainable", sustainable))

	return analysis, nil
}

// beginRun cancels any in-flight analysis and registers a new one.
func (s *Service) beginRun(ctx context.Context) (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.generation++
	return runCtx, s.generation
}

func (s *Service) endRun(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen == s.generation && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// commit stores a snapshot, unless this run has been superseded.
func (s *Service) commit(gen uint64, analysis inbound.Analysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return
	}
	s.current = analysis
}

// failRun records the stage failure while retaining partial results
// already computed, and surfaces a single human-readable message.
func (s *Service) failRun(gen uint64, analysis inbound.Analysis, err error) (inbound.Analysis, error) {
	analysis.Err = UserMessage(err)
	s.commit(gen, analysis)
	s.logger.Warn("pipeline stage failed", zap.Error(err))
	return analysis, err
}

// CurrentAnalysis returns a snapshot of the most recent run.
func (s *Service) CurrentAnalysis() inbound.Analysis {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.current
	snapshot.Ingredients = append([]string(nil), s.current.Ingredients...)
	snapshot.Recipes = append([]recipe.Recipe(nil), s.current.Recipes...)
	return snapshot
}

// CookingTip fetches free-form advice for a named recipe.
func (s *Service) CookingTip(ctx context.Context, recipeName string) (string, error) {
	start := time.Now()
	tip, err := s.ai.CookingTip(ctx, recipeName)
	s.metrics.RecordStage("cooking_tip", err, time.Since(start))
	return tip, err
}

// RecommendWorkout builds a three-option recommendation for one of the
// current recipes. The recommendation stays live until accepted or
// replaced.
func (s *Service) RecommendWorkout(ctx context.Context, recipeID uuid.UUID) (workout.Recommendation, error) {
	target, ok := s.findRecipe(recipeID)
	if !ok {
		return workout.Recommendation{}, apperrors.NewNotFoundError("Recipe")
	}

	start := time.Now()
	rec, err := s.ai.RecommendWorkout(ctx, target.Name, target.Calories)
	s.metrics.RecordStage("recommend_workout", err, time.Since(start))
	if err != nil {
		return workout.Recommendation{}, err
	}

	s.mu.Lock()
	s.liveRec = &rec
	s.mu.Unlock()

	return rec, nil
}

// AcceptWorkout persists one option of the live recommendation as a
// completed record stamped now, and clears the live recommendation.
func (s *Service) AcceptWorkout(ctx context.Context, optionID uuid.UUID) (workout.Option, error) {
	s.mu.Lock()
	rec := s.liveRec
	s.mu.Unlock()

	if rec == nil {
		return workout.Option{}, apperrors.NewNotFoundError("Workout recommendation")
	}
	option, ok := rec.OptionByID(optionID)
	if !ok {
		return workout.Option{}, apperrors.NewNotFoundError("Workout option")
	}

	completed := option.Complete(time.Now())

	saved, err := s.workouts.Load(ctx)
	if err != nil {
		return workout.Option{}, apperrors.Wrap(err, "failed to load saved workouts")
	}
	if err := s.workouts.Save(ctx, append(saved, completed)); err != nil {
		return workout.Option{}, apperrors.Wrap(err, "failed to persist workout")
	}

	s.mu.Lock()
	s.liveRec = nil
	s.mu.Unlock()

	s.metrics.RecordWorkoutAccepted()
	s.logger.Info("workout accepted",
		zap.String("type", string(completed.Type)),
		zap.Int("duration_min", completed.Duration))

	return completed, nil
}

func (s *Service) findRecipe(id uuid.UUID) (recipe.Recipe, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.current.Recipes {
		if r.ID == id {
			return r, true
		}
	}
	return recipe.Recipe{}, false
}

func dropEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
