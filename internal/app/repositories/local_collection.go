package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yigit/diasporahub/internal/pkg/kvstore"
	"github.com/yigit/diasporahub/internal/pkg/logger"
)

// collection keeps a whole feature list as one JSON array under key.
// Missing or unreadable blobs read as empty.
type collection[T any] struct {
	kv  *kvstore.Store
	key string
}

func (c collection[T]) load(ctx context.Context) ([]T, error) {
	var items []T
	err := c.kv.GetJSON(ctx, c.key, &items)
	var decodeErr *kvstore.DecodeError
	switch {
	case err == nil:
		return items, nil
	case errors.Is(err, kvstore.ErrNotFound):
		return []T{}, nil
	case errors.As(err, &decodeErr):
		logger.Warn().Err(err).Str("key", c.key).Msg("Stored collection is corrupt, treating as empty")
		return []T{}, nil
	default:
		return nil, err
	}
}

// update applies fn to the decoded list and writes the result back
func (c collection[T]) update(ctx context.Context, fn func(items []T) ([]T, error)) error {
	return c.kv.Update(ctx, c.key, func(current []byte, exists bool) ([]byte, error) {
		items := []T{}
		if exists {
			if err := json.Unmarshal(current, &items); err != nil {
				logger.Warn().Err(err).Str("key", c.key).Msg("Stored collection is corrupt, resetting")
				items = []T{}
			}
		}
		next, err := fn(items)
		if err != nil {
			return nil, err
		}
		if next == nil {
			next = []T{}
		}
		raw, err := json.Marshal(next)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %q: %w", c.key, err)
		}
		return raw, nil
	})
}

// seed writes items only when nothing is stored yet
func (c collection[T]) seed(ctx context.Context, items []T) (bool, error) {
	seeded := false
	err := c.kv.Update(ctx, c.key, func(current []byte, exists bool) ([]byte, error) {
		if exists {
			return current, nil
		}
		seeded = true
		return json.Marshal(items)
	})
	return seeded, err
}
