package cache

import (
	"context"

	"github.com/rs/zerolog/log"
)

// ReadThrough returns the value cached under key, or calls load and stores its
// result for ttl seconds in the background. Load errors are never cached.
func ReadThrough[T any](ctx context.Context, store RedisCache, key string, ttl int, load func() (T, error)) (T, error) {
	var cached T
	if err := store.Get(ctx, key, &cached); err == nil {
		log.Debug().Str("cacheKey", key).Msg("cache hit")

		return cached, nil
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	go func(ctx context.Context) {
		if err := store.Save(ctx, key, value, ttl); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to save cache")
		}
	}(context.WithoutCancel(ctx))

	return value, nil
}
