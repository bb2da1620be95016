// Package cache is the persistent key-value store behind the rating catalog,
// tag index, focus tags and solved set
package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/vijay-prabhu/leetboost/internal/config"
	"github.com/vijay-prabhu/leetboost/internal/database"
)

// Fixed cache keys. The _v1 suffix is bumped when a payload shape changes
const (
	KeyRatings   = "lc_ratings_cache_v1"
	KeyRatingsTS = "lc_ratings_cache_ts_v1"
	KeyFocusTags = "lc_focus_tags_v1"
	KeySolvedSet = "lc_solved_set_v1"
	KeyTagMap    = "lc_tag_map_v1"
)

// AllKeys lists every key the application writes
var AllKeys = []string{KeyRatings, KeyRatingsTS, KeyFocusTags, KeySolvedSet, KeyTagMap}

// ErrUnknownBackend is returned by Open for an unsupported backend name
var ErrUnknownBackend = errors.New("unknown cache backend")

// Store is a whole-value key-value store. Get omits missing keys from the result
type Store interface {
	Get(ctx context.Context, keys ...string) (map[string][]byte, error)
	Set(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, keys ...string) error
	Clear(ctx context.Context) error
	Close() error
}

// Open returns the backend selected by cfg
func Open(cfg config.CacheConfig) (Store, error) {
	switch cfg.Backend {
	case "sqlite", "":
		db, err := database.Open(cfg.Path)
		if err != nil {
			return nil, err
		}
		return db, nil
	case "badger":
		return OpenBadger(cfg.Path)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.Backend)
	}
}

// GetJSON decodes the value at key into v. It reports false when the key is absent
func GetJSON(ctx context.Context, s Store, key string, v interface{}) (bool, error) {
	values, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}
	raw, ok := values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes each value and stores them together
func SetJSON(ctx context.Context, s Store, values map[string]interface{}) error {
	encoded := make(map[string][]byte, len(values))
	for key, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		encoded[key] = data
	}
	return s.Set(ctx, encoded)
}
