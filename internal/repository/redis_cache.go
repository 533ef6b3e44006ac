package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var ErrCacheMiss = errors.New("cache miss")

const scanBatch = 100

// RedisCacheRepository stores JSON documents in Redis. Every call gets its own span.
type RedisCacheRepository struct {
	client *redis.Client
	tracer trace.Tracer
}

func NewRedisCacheRepository(client *redis.Client) *RedisCacheRepository {
	return &RedisCacheRepository{client: client, tracer: otel.Tracer("flightjournal/cache")}
}

func (r *RedisCacheRepository) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return r.tracer.Start(ctx, "cache."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(append(attrs, attribute.String("db.system", "redis"))...),
	)
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// Get decodes the value under key into dest. A missing key returns ErrCacheMiss.
func (r *RedisCacheRepository) Get(ctx context.Context, key string, dest any) error {
	ctx, span := r.start(ctx, "get", attribute.String("cache.key", key))
	defer span.End()

	raw, err := r.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		span.SetAttributes(attribute.Bool("cache.hit", false))
		return ErrCacheMiss
	case err != nil:
		return fail(span, fmt.Errorf("cache get %s: %w", key, err))
	}
	span.SetAttributes(attribute.Bool("cache.hit", true))

	if err := json.Unmarshal(raw, dest); err != nil {
		return fail(span, fmt.Errorf("cache decode %s: %w", key, err))
	}
	return nil
}

func (r *RedisCacheRepository) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	ctx, span := r.start(ctx, "set",
		attribute.String("cache.key", key),
		attribute.String("cache.ttl", ttl.String()),
	)
	defer span.End()

	raw, err := json.Marshal(value)
	if err != nil {
		return fail(span, fmt.Errorf("cache encode %s: %w", key, err))
	}
	if err := r.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fail(span, fmt.Errorf("cache set %s: %w", key, err))
	}
	return nil
}

func (r *RedisCacheRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	ctx, span := r.start(ctx, "delete", attribute.StringSlice("cache.keys", keys))
	defer span.End()

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fail(span, fmt.Errorf("cache delete: %w", err))
	}
	return nil
}

// DeleteByPattern walks the keyspace with SCAN and drops every match.
func (r *RedisCacheRepository) DeleteByPattern(ctx context.Context, pattern string) error {
	ctx, span := r.start(ctx, "delete_pattern", attribute.String("cache.pattern", pattern))
	defer span.End()

	var matched []string
	it := r.client.Scan(ctx, 0, pattern, scanBatch).Iterator()
	for it.Next(ctx) {
		matched = append(matched, it.Val())
	}
	if err := it.Err(); err != nil {
		return fail(span, fmt.Errorf("cache scan %s: %w", pattern, err))
	}
	span.SetAttributes(attribute.Int("cache.matched", len(matched)))
	if len(matched) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, matched...).Err(); err != nil {
		return fail(span, fmt.Errorf("cache delete %s: %w", pattern, err))
	}
	return nil
}

// readThrough serves key from the cache, falling back to load and storing its
// result. Cache failures never fail the read.
func readThrough[T any](ctx context.Context, c *RedisCacheRepository, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var cached T
	if err := c.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}
	fresh, err := load(ctx)
	if err != nil {
		return fresh, err
	}
	_ = c.Set(ctx, key, fresh, ttl)
	return fresh, nil
}
