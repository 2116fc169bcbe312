package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hotel/infras/otel"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	scanBatch             = 100

	// Nil is returned by Get on a cache miss.
	Nil = redis.Nil
)

// RedisCache stores JSON-encoded values. Strings are stored as-is.
type RedisCache interface {
	Save(ctx context.Context, key string, value any, duration int) (err error)
	Get(ctx context.Context, key string, value any) (err error)
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context, prefix string) error
	Incr(ctx context.Context, key string, windowSeconds int) (int64, error)
}

type redisCache struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisCache(client *redis.Client, ot otel.Otel) RedisCache {
	return &redisCache{
		client: client,
		otel:   ot,
	}
}

// trace opens a span for op on key. The returned func records err and ends the span.
func (cache *redisCache) trace(ctx context.Context, op, key string) (context.Context, func(error)) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+"."+op)
	scope.SetAttribute(otelCacheKeyAttribute, key)

	return ctx, func(err error) {
		scope.TraceIfError(err)
		scope.End()
	}
}

func logFailure(err error, op, key, msg string) {
	log.Error().Err(err).Str("RedisCache", op).Str("key", key).Msg(msg)
}

// Clear deletes every key matching pattern, e.g. "room:gets:*".
func (cache *redisCache) Clear(ctx context.Context, pattern string) (err error) {
	ctx, done := cache.trace(ctx, "Clear", pattern)
	defer func() { done(err) }()

	keys := make([]string, 0, scanBatch)
	iter := cache.client.Scan(ctx, 0, pattern, scanBatch).Iterator()

	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}

	if err = iter.Err(); err != nil {
		logFailure(err, "Clear", pattern, "failed to scan cache")

		return fmt.Errorf("failed to scan cache keys: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err = cache.client.Del(ctx, keys...).Err(); err != nil {
		logFailure(err, "Clear", pattern, "failed to del cache")

		return fmt.Errorf("failed to delete cache value: %w", err)
	}

	return nil
}

func (cache *redisCache) Delete(ctx context.Context, key string) (err error) {
	ctx, done := cache.trace(ctx, "Delete", key)
	defer func() { done(err) }()

	if err = cache.client.Del(ctx, key).Err(); err != nil {
		logFailure(err, "Delete", key, "failed to del cache")

		return fmt.Errorf("failed to delete cache value: %w", err)
	}

	return nil
}

// Get decodes the cached value into value. A miss returns an error wrapping Nil.
func (cache *redisCache) Get(ctx context.Context, key string, value any) (err error) {
	ctx, done := cache.trace(ctx, "Get", key)
	defer func() { done(err) }()

	raw, err := cache.client.Get(ctx, key).Bytes()
	if err != nil {
		return fmt.Errorf("failed to get cache value: %w", err)
	}

	if s, ok := value.(*string); ok {
		*s = string(raw)

		return nil
	}

	if err = json.Unmarshal(raw, value); err != nil {
		logFailure(err, "Get", key, "failed to unmarshal cache")

		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return nil
}

// Incr counts hits on key inside a fixed window that starts on the first hit.
func (cache *redisCache) Incr(ctx context.Context, key string, windowSeconds int) (count int64, err error) {
	ctx, done := cache.trace(ctx, "Incr", key)
	defer func() { done(err) }()

	pipe := cache.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, time.Duration(windowSeconds)*time.Second)

	if _, err = pipe.Exec(ctx); err != nil {
		logFailure(err, "Incr", key, "failed to incr cache")

		return 0, fmt.Errorf("failed to increment cache value: %w", err)
	}

	return incr.Val(), nil
}

// Save stores value for duration seconds.
func (cache *redisCache) Save(ctx context.Context, key string, value any, duration int) (err error) {
	ctx, done := cache.trace(ctx, "Save", key)
	defer func() { done(err) }()

	payload, err := encode(value)
	if err != nil {
		logFailure(err, "Save", key, "failed to marshal cache")

		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	if err = cache.client.Set(ctx, key, payload, time.Duration(duration)*time.Second).Err(); err != nil {
		logFailure(err, "Save", key, "failed to set cache")

		return fmt.Errorf("failed to set cache value: %w", err)
	}

	log.Debug().Str("RedisCache", "Save").Str("key", key).Msg("success to set cache")

	return nil
}

func encode(value any) ([]byte, error) {
	if s, ok := value.(string); ok {
		return []byte(s), nil
	}

	return json.Marshal(value) //nolint:wrapcheck
}
