// Package favorites manages the user's favorited recipe list.
package favorites

import (
	"context"

	"github.com/fridgelens/v1/internal/domain/recipe"
	"github.com/fridgelens/v1/internal/ports/outbound"
	apperrors "github.com/fridgelens/v1/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements inbound.FavoritesService over a FavoritesStore.
// The store holds a single JSON array rewritten wholesale, so every
// mutation is load-modify-save under this single writer.
type Service struct {
	store  outbound.FavoritesStore
	logger *zap.Logger
}

// NewService creates a favorites service.
func NewService(store outbound.FavoritesStore, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger.Named("favorites")}
}

// List returns the favorited recipes.
func (s *Service) List(ctx context.Context) ([]recipe.Recipe, error) {
	return s.store.Load(ctx)
}

// Add copies a recipe into the favorites list. Adding a recipe that is
// already favorited is a no-op.
func (s *Service) Add(ctx context.Context, r recipe.Recipe) error {
	if err := r.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	current, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	for _, existing := range current {
		if existing.ID == r.ID {
			return nil
		}
	}

	return s.store.Save(ctx, append(current, r))
}

// Remove un-favorites a recipe by id.
func (s *Service) Remove(ctx context.Context, id uuid.UUID) error {
	current, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	kept := current[:0]
	for _, r := range current {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(current) {
		return apperrors.NewNotFoundError("Favorite recipe")
	}

	return s.store.Save(ctx, kept)
}
