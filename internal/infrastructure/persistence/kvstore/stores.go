package kvstore

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/fridgelens/v1/internal/domain/profile"
	"github.com/fridgelens/v1/internal/domain/recipe"
	"github.com/fridgelens/v1/internal/domain/workout"
	"github.com/fridgelens/v1/internal/ports/outbound"
	"go.uber.org/zap"
)

// Storage keys. One flat namespace of string keys, each holding a
// single JSON blob rewritten wholesale on every mutation.
const (
	keyFavoriteRecipes = "FavoriteRecipes"
	keySavedWorkouts   = "SavedWorkouts"
	keyHealthProfile   = "userHealthProfile"
)

// loadJSON decodes a stored blob into out. A missing key or an
// undecodable blob is a soft failure: the caller proceeds with "no
// data yet" semantics. Corruption is logged, never surfaced.
func loadJSON(ctx context.Context, kv outbound.KVStore, logger *zap.Logger, key string, out interface{}) bool {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, outbound.ErrNoValue) {
			logger.Warn("failed to read stored blob, treating as empty",
				zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		logger.Warn("stored blob is undecodable, treating as empty",
			zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func saveJSON(ctx context.Context, kv outbound.KVStore, key string, in interface{}) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return kv.Set(ctx, key, raw)
}

// ProfileStore persists the user health profile blob.
type ProfileStore struct {
	kv     outbound.KVStore
	logger *zap.Logger
}

// NewProfileStore creates a profile store over a KV backend.
func NewProfileStore(kv outbound.KVStore, logger *zap.Logger) *ProfileStore {
	return &ProfileStore{kv: kv, logger: logger.Named("profile-store")}
}

// Load returns the stored profile or the default profile.
func (s *ProfileStore) Load(ctx context.Context) (profile.UserHealthProfile, error) {
	var p profile.UserHealthProfile
	if !loadJSON(ctx, s.kv, s.logger, keyHealthProfile, &p) {
		return profile.Default(), nil
	}
	return p, nil
}

// Save replaces the stored profile wholesale.
func (s *ProfileStore) Save(ctx context.Context, p profile.UserHealthProfile) error {
	return saveJSON(ctx, s.kv, keyHealthProfile, p)
}

// FavoritesStore persists the favorited recipe list blob.
type FavoritesStore struct {
	kv     outbound.KVStore
	logger *zap.Logger
}

// NewFavoritesStore creates a favorites store over a KV backend.
func NewFavoritesStore(kv outbound.KVStore, logger *zap.Logger) *FavoritesStore {
	return &FavoritesStore{kv: kv, logger: logger.Named("favorites-store")}
}

// Load returns the stored favorites, empty when nothing usable is stored.
func (s *FavoritesStore) Load(ctx context.Context) ([]recipe.Recipe, error) {
	var recipes []recipe.Recipe
	loadJSON(ctx, s.kv, s.logger, keyFavoriteRecipes, &recipes)
	return recipes, nil
}

// Save replaces the stored favorites wholesale.
func (s *FavoritesStore) Save(ctx context.Context, recipes []recipe.Recipe) error {
	return saveJSON(ctx, s.kv, keyFavoriteRecipes, recipes)
}

// WorkoutStore persists completed workout records.
type WorkoutStore struct {
	kv     outbound.KVStore
	logger *zap.Logger
}

// NewWorkoutStore creates a workout store over a KV backend.
func NewWorkoutStore(kv outbound.KVStore, logger *zap.Logger) *WorkoutStore {
	return &WorkoutStore{kv: kv, logger: logger.Named("workout-store")}
}

// Load returns the stored workouts, empty when nothing usable is stored.
func (s *WorkoutStore) Load(ctx context.Context) ([]workout.Option, error) {
	var options []workout.Option
	loadJSON(ctx, s.kv, s.logger, keySavedWorkouts, &options)
	return options, nil
}

// Save replaces the stored workouts wholesale.
func (s *WorkoutStore) Save(ctx context.Context, options []workout.Option) error {
	return saveJSON(ctx, s.kv, keySavedWorkouts, options)
}
