// Package workout contains the domain model for workout
// recommendations and completed workout records.
package workout

import (
	"time"

	"github.com/google/uuid"
)

// Type enumerates the three supported workout variants.
type Type string

const (
	TypeWalking Type = "walking"
	TypeRunning Type = "running"
	TypeCycling Type = "cycling"
)

// ParseType validates a workout type received from the AI model.
// Anything outside the three fixed variants is a payload error.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeWalking, TypeRunning, TypeCycling:
		return Type(s), nil
	default:
		return "", ErrUnknownType
	}
}

// SpeedMPH returns the fixed speed constant in miles per hour used for
// distance aggregation. Distances are reported in miles throughout.
func (t Type) SpeedMPH() float64 {
	switch t {
	case TypeWalking:
		return 4
	case TypeRunning:
		return 6
	case TypeCycling:
		return 14
	default:
		return 0
	}
}

// Option is a single workout choice. Live recommendation options carry
// IsCompleted=false and no CompletedDate; accepting an option persists
// it as a completed record stamped with the acceptance time.
type Option struct {
	ID             uuid.UUID  `json:"id"`
	Type           Type       `json:"type"`
	Duration       int        `json:"duration"` // minutes
	CaloriesBurned int        `json:"caloriesBurned"`
	Description    string     `json:"description"`
	IsCompleted    bool       `json:"isCompleted"`
	CompletedDate  *time.Time `json:"completedDate,omitempty"`
}

// NewOption assigns a fresh identity to an option decoded from an AI payload.
func NewOption(t Type, duration, calories int, description string) Option {
	return Option{
		ID:             uuid.New(),
		Type:           t,
		Duration:       duration,
		CaloriesBurned: calories,
		Description:    description,
	}
}

// Validate checks the option's domain invariants.
func (o Option) Validate() error {
	if _, err := ParseType(string(o.Type)); err != nil {
		return err
	}
	if o.Duration <= 0 {
		return ErrInvalidDuration
	}
	if o.CaloriesBurned < 0 {
		return ErrNegativeCalories
	}
	return nil
}

// Complete returns a copy of the option marked completed at the given time.
func (o Option) Complete(at time.Time) Option {
	o.IsCompleted = true
	o.CompletedDate = &at
	return o
}

// Recommendation is the transient aggregate offered to the user after a
// recipe is chosen: exactly one option per workout type, of which at
// most one will be accepted and persisted.
type Recommendation struct {
	RecipeName    string   `json:"recipeName"`
	CaloriesToBurn int     `json:"caloriesToBurn"`
	Options       []Option `json:"options"`
}

// Validate enforces the exactly-three-options contract: one walking,
// one running, one cycling, each individually valid.
func (r Recommendation) Validate() error {
	if len(r.Options) != 3 {
		return ErrOptionCount
	}
	seen := make(map[Type]bool, 3)
	for _, opt := range r.Options {
		if err := opt.Validate(); err != nil {
			return err
		}
		if seen[opt.Type] {
			return ErrDuplicateType
		}
		seen[opt.Type] = true
	}
	return nil
}

// OptionByID finds a recommendation option by id.
func (r Recommendation) OptionByID(id uuid.UUID) (Option, bool) {
	for _, opt := range r.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}
