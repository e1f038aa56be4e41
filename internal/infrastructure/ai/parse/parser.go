// Package parse converts the raw text replies of the generative AI
// endpoint into typed domain payloads. The model wraps its JSON in
// prose and code fences often enough that extraction is a distinct,
// independently tested step rather than a naive json.Unmarshal.
package parse

import (
	"encoding/json"
	"strings"

	"github.com/fridgelens/v1/internal/domain/recipe"
	"github.com/fridgelens/v1/internal/domain/workout"
	apperrors "github.com/fridgelens/v1/pkg/errors"
)

// CleanRaw strips a leading code fence marker (with optional language
// tag) and a trailing fence, then collapses newlines, tabs, and doubled
// spaces to single spaces. The model sometimes pretty-prints JSON with
// embedded literal newlines that break naive decoding.
func CleanRaw(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		s = s[3:]
		// Drop the language tag on the opening fence line.
		if idx := strings.IndexByte(s, '\n'); idx >= 0 {
			s = s[idx+1:]
		}
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}

	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}

	return strings.TrimSpace(s)
}

// ExtractJSONSpan returns the substring spanning the first '{' and the
// last '}' of the cleaned text. That span, and only that span, is the
// candidate JSON document; surrounding prose is discarded.
func ExtractJSONSpan(raw string) (string, error) {
	cleaned := CleanRaw(raw)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end <= start {
		return "", apperrors.NewMalformedResponseError("no JSON object found in AI reply")
	}

	return cleaned[start : end+1], nil
}

// Ingredients splits a flat comma-separated reply into ingredient
// names, trimming surrounding whitespace from each token. Empty tokens
// are retained; callers that feed the list back into prompts are
// expected to drop them.
func Ingredients(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

// recipesPayload mirrors the generation prompt's worked example. Any id
// emitted by the model has no field here and is ignored by decoding.
type recipesPayload struct {
	Recipes []recipePayload `json:"recipes"`
}

type recipePayload struct {
	Name            string                `json:"name"`
	Ingredients     []string              `json:"ingredients"`
	Instructions    []string              `json:"instructions"`
	Calories        int                   `json:"calories"`
	CarbonFootprint float64               `json:"carbonFootprint"`
	Nutrition       recipe.NutritionInfo  `json:"nutritionalInfo"`
	Expiration      recipe.ExpirationInfo `json:"expirationInfo"`
}

// Recipes decodes an ordered recipe list from a raw reply. Every recipe
// receives a freshly generated identifier. Schema violations abort the
// whole payload; there is no partial recovery.
func Recipes(raw string) ([]recipe.Recipe, error) {
	span, err := ExtractJSONSpan(raw)
	if err != nil {
		return nil, err
	}

	var payload recipesPayload
	if err := json.Unmarshal([]byte(span), &payload); err != nil {
		return nil, apperrors.NewMalformedResponseError("recipe payload does not match the expected schema").WithCause(err)
	}
	if len(payload.Recipes) == 0 {
		return nil, apperrors.NewMalformedResponseError("recipe payload contains no recipes")
	}

	recipes := make([]recipe.Recipe, 0, len(payload.Recipes))
	for _, p := range payload.Recipes {
		r := recipe.NewRecipe(p.Name, p.Ingredients, p.Instructions, p.Calories, p.CarbonFootprint, p.Nutrition, p.Expiration)
		r.NormalizePriorityIngredients()
		if err := r.Validate(); err != nil {
			return nil, apperrors.NewMalformedResponseError("recipe payload violates domain invariants").WithCause(err)
		}
		recipes = append(recipes, r)
	}

	return recipes, nil
}

type recommendationPayload struct {
	RecipeName     string          `json:"recipeName"`
	CaloriesToBurn int             `json:"caloriesToBurn"`
	Options        []optionPayload `json:"options"`
}

type optionPayload struct {
	Type           string `json:"type"`
	Duration       int    `json:"duration"`
	CaloriesBurned int    `json:"caloriesBurned"`
	Description    string `json:"description"`
}

// Workout decodes a workout recommendation from a raw reply. Exactly
// three options of the three fixed types are required; anything else,
// including an unknown type string, is a malformed response.
func Workout(raw string) (workout.Recommendation, error) {
	span, err := ExtractJSONSpan(raw)
	if err != nil {
		return workout.Recommendation{}, err
	}

	var payload recommendationPayload
	if err := json.Unmarshal([]byte(span), &payload); err != nil {
		return workout.Recommendation{}, apperrors.NewMalformedResponseError("workout payload does not match the expected schema").WithCause(err)
	}

	rec := workout.Recommendation{
		RecipeName:     payload.RecipeName,
		CaloriesToBurn: payload.CaloriesToBurn,
	}
	for _, p := range payload.Options {
		t, err := workout.ParseType(p.Type)
		if err != nil {
			return workout.Recommendation{}, apperrors.NewMalformedResponseError("workout payload violates domain invariants").WithCause(err)
		}
		rec.Options = append(rec.Options, workout.NewOption(t, p.Duration, p.CaloriesBurned, p.Description))
	}

	if err := rec.Validate(); err != nil {
		return workout.Recommendation{}, apperrors.NewMalformedResponseError("workout payload violates domain invariants").WithCause(err)
	}

	return rec, nil
}
