package repository

import (
	"context"
	"time"

	"github.com/startlistclub/flightjournal/internal/domain"
)

const (
	programListKey         = "program:list"
	programByIDKeyPrefix   = "program:id:"
	programKeyPattern      = "program:*"
	DefaultProgramCacheTTL = 10 * time.Minute
)

// CachedProgramRepository wraps MongoProgramRepository with Redis caching.
// Programs change rarely and every training log reads the whole list.
type CachedProgramRepository struct {
	mongo domain.ProgramRepository
	cache *RedisCacheRepository
	ttl   time.Duration
}

// NewCachedProgramRepository creates a new cached program repository
func NewCachedProgramRepository(mongo domain.ProgramRepository, cache *RedisCacheRepository, ttl time.Duration) *CachedProgramRepository {
	if ttl <= 0 {
		ttl = DefaultProgramCacheTTL
	}
	return &CachedProgramRepository{
		mongo: mongo,
		cache: cache,
		ttl:   ttl,
	}
}

// List serves the whole catalogue of programs, read through the cache
func (r *CachedProgramRepository) List(ctx context.Context) ([]*domain.TrainingProgram, error) {
	return readThrough(ctx, r.cache, programListKey, r.ttl, r.mongo.List)
}

func (r *CachedProgramRepository) GetByID(ctx context.Context, id string) (*domain.TrainingProgram, error) {
	return readThrough(ctx, r.cache, programByIDKeyPrefix+id, r.ttl, func(ctx context.Context) (*domain.TrainingProgram, error) {
		return r.mongo.GetByID(ctx, id)
	})
}

// Upsert writes the program and drops every cached program
func (r *CachedProgramRepository) Upsert(ctx context.Context, program *domain.TrainingProgram) error {
	if err := r.mongo.Upsert(ctx, program); err != nil {
		return err
	}

	_ = r.cache.DeleteByPattern(ctx, programKeyPattern)
	return nil
}
