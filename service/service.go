package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/skillmastery/server/apperr"
	"github.com/skillmastery/server/cache"
	"github.com/skillmastery/server/repository"
	"go.uber.org/zap"
)

// Entity names used in error messages and cache keys.
const (
	EntityUser      = "User"
	EntitySkill     = "Skill"
	EntityDificulty = "Dificulty"
	EntityUserSkill = "UserSkill"
	EntityGoal      = "Goal"
)

// UsageChecker reports whether the row with the given id is referenced by
// another resource and therefore must not be deleted.
type UsageChecker func(ctx context.Context, id int64) (bool, error)

// NoUsage is a UsageChecker for rows nothing refers to.
func NoUsage(context.Context, int64) (bool, error) { return false, nil }

// CountUsage builds a UsageChecker from a reference counter.
func CountUsage(count func(ctx context.Context, id int64) (int64, error)) UsageChecker {
	return func(ctx context.Context, id int64) (bool, error) {
		n, err := count(ctx, id)
		if err != nil {
			return false, err
		}
		return n > 0, nil
	}
}

// AnyUsage reports usage when any of the given checkers does.
func AnyUsage(checkers ...UsageChecker) UsageChecker {
	return func(ctx context.Context, id int64) (bool, error) {
		for _, check := range checkers {
			used, err := check(ctx, id)
			if err != nil || used {
				return used, err
			}
		}
		return false, nil
	}
}

// Option configures a service.
type Option func(*base)

// WithListCache caches GetAll results in c for ttl. A zero ttl disables it.
func WithListCache(c cache.Cache, ttl time.Duration) Option {
	return func(b *base) {
		b.cache = c
		b.ttl = ttl
	}
}

// WithLogger sets the logger for cache warnings.
func WithLogger(logger *zap.Logger) Option {
	return func(b *base) { b.logger = logger }
}

// dependents lists the entities whose list responses embed the key entity.
var dependents = map[string][]string{
	EntityUser:      {EntityUserSkill},
	EntitySkill:     {EntityUserSkill},
	EntityDificulty: {EntitySkill},
	EntityUserSkill: {EntityGoal},
	EntityGoal:      nil,
}

// base carries what every entity service shares.
type base struct {
	entity string
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

func newBase(entity string, opts []Option) base {
	b := base{entity: entity, logger: zap.NewNop()}
	for _, o := range opts {
		o(&b)
	}
	return b
}

// ListCacheKey returns the cache key of an entity's list response.
func ListCacheKey(entity string) string {
	return "skillmastery:list:" + entity
}

// listGens counts invalidations per list key. A load that overlaps an
// invalidation must not leave its result in the cache.
var listGens = struct {
	sync.Mutex
	m map[string]uint64
}{m: map[string]uint64{}}

func listGen(key string) uint64 {
	listGens.Lock()
	defer listGens.Unlock()
	return listGens.m[key]
}

func bumpListGens(keys ...string) {
	listGens.Lock()
	defer listGens.Unlock()
	for _, k := range keys {
		listGens.m[k]++
	}
}

func (b *base) cacheEnabled() bool {
	return b.cache != nil && b.ttl > 0
}

// cachedList serves load through the list cache when one is configured.
// Cache failures are logged and never fail the request.
func cachedList[T any](ctx context.Context, b *base, load func(context.Context) ([]T, error)) ([]T, error) {
	if !b.cacheEnabled() {
		return load(ctx)
	}
	key := ListCacheKey(b.entity)
	if raw, err := b.cache.Get(ctx, key); err == nil {
		var out []T
		if err := json.Unmarshal([]byte(raw), &out); err == nil {
			return out, nil
		}
		b.logger.Warn("discarding corrupt list cache entry", zap.String("key", key))
	} else if !cache.IsMiss(err) {
		b.logger.Warn("list cache read failed", zap.String("key", key), zap.Error(err))
	}

	gen := listGen(key)
	out, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if listGen(key) != gen {
		return out, nil
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return out, nil
	}
	if err := b.cache.Set(ctx, key, string(raw), b.ttl); err != nil {
		b.logger.Warn("list cache write failed", zap.String("key", key), zap.Error(err))
		return out, nil
	}
	// An invalidation between the check and the write may have run its Del first.
	if listGen(key) != gen {
		if err := b.cache.Del(ctx, key); err != nil {
			b.logger.Warn("list cache invalidation failed", zap.String("key", key), zap.Error(err))
		}
	}
	return out, nil
}

// invalidate drops the cached lists of this entity and of its dependents.
func (b *base) invalidate(ctx context.Context) {
	if !b.cacheEnabled() {
		return
	}
	keys := []string{ListCacheKey(b.entity)}
	for _, dep := range dependents[b.entity] {
		keys = append(keys, ListCacheKey(dep))
	}
	bumpListGens(keys...)
	if err := b.cache.Del(ctx, keys...); err != nil {
		b.logger.Warn("list cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func emptyID(entity string) error {
	return apperr.EmptyID(entity + " Id cannot be empty")
}

func notFound(entity string, id int64) error {
	return apperr.NotFound(fmt.Sprintf("%s with id %d not found", entity, id))
}

// requireExists fails with NotFound when repo has no row with id.
func requireExists[T any](ctx context.Context, entity string, repo repository.Repository[T], id int64) error {
	row, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if row == nil {
		return notFound(entity, id)
	}
	return nil
}

// deleteGuarded removes the row with id unless it is absent or in use.
func deleteGuarded[T any](ctx context.Context, entity string, repo repository.Repository[T], inUse UsageChecker, id int64) (*T, error) {
	if id == 0 {
		return nil, emptyID(entity)
	}
	row, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, notFound(entity, id)
	}
	used, err := inUse(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("check %s %d usage: %w", entity, id, err)
	}
	if used {
		return nil, apperr.Found(fmt.Sprintf("%s with id %d is used in a classroom", entity, id))
	}
	return repo.Delete(ctx, row)
}

// editExisting overlays row onto the stored row with id.
func editExisting[T any](ctx context.Context, entity string, repo repository.Repository[T], id int64, row *T) (*T, error) {
	edited, err := repo.Edit(ctx, row)
	if err != nil {
		return nil, err
	}
	if edited == nil {
		return nil, notFound(entity, id)
	}
	return edited, nil
}
