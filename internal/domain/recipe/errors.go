package recipe

import "errors"

// Domain errors for recipe payload validation

var (
	ErrEmptyName           = errors.New("recipe name must not be empty")
	ErrNoIngredients       = errors.New("recipe must have at least one ingredient")
	ErrNoInstructions      = errors.New("recipe must have at least one instruction")
	ErrNegativeExpiration  = errors.New("daysUntilExpiration must not be negative")
	ErrFreshnessOutOfRange = errors.New("freshnessScore must lie in [0, 1]")
)
