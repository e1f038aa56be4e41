// Package workout manages persisted workout records and their derived
// weekly/monthly views.
package workout

import (
	"context"
	"time"

	"github.com/fridgelens/v1/internal/domain/workout"
	"github.com/fridgelens/v1/internal/ports/outbound"
	apperrors "github.com/fridgelens/v1/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements inbound.WorkoutService.
type Service struct {
	store  outbound.WorkoutStore
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a workout service.
func NewService(store outbound.WorkoutStore, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.Named("workouts"),
		now:    time.Now,
	}
}

// List returns all persisted workouts.
func (s *Service) List(ctx context.Context) ([]workout.Option, error) {
	return s.store.Load(ctx)
}

// Delete removes a persisted workout by id.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	current, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	kept := current[:0]
	for _, opt := range current {
		if opt.ID != id {
			kept = append(kept, opt)
		}
	}
	if len(kept) == len(current) {
		return apperrors.NewNotFoundError("Workout")
	}

	return s.store.Save(ctx, kept)
}

// WeeklyCompletion reports which days of the current calendar week have
// at least one completed workout.
func (s *Service) WeeklyCompletion(ctx context.Context) ([7]bool, error) {
	options, err := s.store.Load(ctx)
	if err != nil {
		return [7]bool{}, err
	}
	return workout.WeeklyCompletion(options, s.now()), nil
}

// Stats aggregates calories, time, and distance over all workouts.
func (s *Service) Stats(ctx context.Context) (workout.Stats, error) {
	options, err := s.store.Load(ctx)
	if err != nil {
		return workout.Stats{}, err
	}
	return workout.Aggregate(options), nil
}
