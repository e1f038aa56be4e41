package outbound

import (
	"context"
	"errors"

	"github.com/fridgelens/v1/internal/domain/profile"
	"github.com/fridgelens/v1/internal/domain/recipe"
	"github.com/fridgelens/v1/internal/domain/workout"
)

// ErrNoValue is returned by KVStore.Get when a key is absent. Store
// adapters translate it (and undecodable blobs) into "no data yet"
// defaults instead of surfacing an error to the caller.
var ErrNoValue = errors.New("no value stored for key")

// KVStore is a flat namespace of string keys mapping to JSON blobs.
// Blobs are read eagerly at startup and rewritten wholesale on every
// mutation; there are no incremental updates.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// ProfileStore persists the single user health profile.
type ProfileStore interface {
	// Load returns the stored profile, or the default profile when
	// nothing usable is stored.
	Load(ctx context.Context) (profile.UserHealthProfile, error)
	Save(ctx context.Context, p profile.UserHealthProfile) error
}

// FavoritesStore persists the favorited recipe list.
type FavoritesStore interface {
	Load(ctx context.Context) ([]recipe.Recipe, error)
	Save(ctx context.Context, recipes []recipe.Recipe) error
}

// WorkoutStore persists completed workout records.
type WorkoutStore interface {
	Load(ctx context.Context) ([]workout.Option, error)
	Save(ctx context.Context, options []workout.Option) error
}
