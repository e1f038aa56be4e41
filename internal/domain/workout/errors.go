package workout

import "errors"

// Domain errors for workout payload validation

var (
	ErrUnknownType      = errors.New("workout type must be walking, running, or cycling")
	ErrInvalidDuration  = errors.New("workout duration must be greater than 0 minutes")
	ErrNegativeCalories = errors.New("caloriesBurned must not be negative")
	ErrOptionCount      = errors.New("recommendation must contain exactly three options")
	ErrDuplicateType    = errors.New("recommendation options must cover each workout type once")
	ErrOptionNotFound   = errors.New("workout option not found")
)
