package recipe

// NutritionInfo holds per-recipe macronutrients in grams.
type NutritionInfo struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
	Fiber   float64 `json:"fiber"`
}

// ExpirationInfo is the model's estimate of how urgently the recipe's
// ingredients should be used.
type ExpirationInfo struct {
	DaysUntilExpiration int      `json:"daysUntilExpiration"`
	FreshnessScore      float64  `json:"freshnessScore"`
	PriorityIngredients []string `json:"priorityIngredients"`
}

// Validate checks expiration invariants: non-negative days and a
// freshness score within [0, 1].
func (e ExpirationInfo) Validate() error {
	if e.DaysUntilExpiration < 0 {
		return ErrNegativeExpiration
	}
	if e.FreshnessScore < 0 || e.FreshnessScore > 1 {
		return ErrFreshnessOutOfRange
	}
	return nil
}
