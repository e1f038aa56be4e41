// Package recipe contains the core domain model for AI-generated recipes.
package recipe

import (
	"github.com/google/uuid"
)

// Recipe represents a single generated recipe.
//
// The ID is always assigned locally when the recipe is decoded from an
// AI response. The external model does not emit identifiers, and any id
// field present in a payload is ignored rather than trusted.
type Recipe struct {
	ID              uuid.UUID      `json:"id"`
	Name            string         `json:"name"`
	Ingredients     []string       `json:"ingredients"`
	Instructions    []string       `json:"instructions"`
	Calories        int            `json:"calories"`
	CarbonFootprint float64        `json:"carbonFootprint"` // kg CO2
	Nutrition       NutritionInfo  `json:"nutritionalInfo"`
	Expiration      ExpirationInfo `json:"expirationInfo"`
}

// NewRecipe assigns a fresh identity to a recipe decoded from an AI payload.
func NewRecipe(name string, ingredients, instructions []string, calories int, carbon float64, nutrition NutritionInfo, expiration ExpirationInfo) Recipe {
	return Recipe{
		ID:              uuid.New(),
		Name:            name,
		Ingredients:     ingredients,
		Instructions:    instructions,
		Calories:        calories,
		CarbonFootprint: carbon,
		Nutrition:       nutrition,
		Expiration:      expiration,
	}
}

// Validate checks the recipe against its domain invariants.
func (r Recipe) Validate() error {
	if r.Name == "" {
		return ErrEmptyName
	}
	if len(r.Ingredients) == 0 {
		return ErrNoIngredients
	}
	if len(r.Instructions) == 0 {
		return ErrNoInstructions
	}
	return r.Expiration.Validate()
}

// NormalizePriorityIngredients constrains the expiration block's priority
// ingredients to the recipe's own ingredient list. Model output sometimes
// names ingredients that never made it into the recipe; those entries are
// dropped rather than failing the whole payload.
func (r *Recipe) NormalizePriorityIngredients() {
	if len(r.Expiration.PriorityIngredients) == 0 {
		return
	}
	own := make(map[string]struct{}, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		own[ing] = struct{}{}
	}
	kept := r.Expiration.PriorityIngredients[:0]
	for _, p := range r.Expiration.PriorityIngredients {
		if _, ok := own[p]; ok {
			kept = append(kept, p)
		}
	}
	r.Expiration.PriorityIngredients = kept
}
