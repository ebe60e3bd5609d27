package cached

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"user-account-service/internal/adapter/cache"
	domain "user-account-service/internal/domain/user"
	"user-account-service/internal/usecase/user"
)

// UserRepository implements user.Repository with caching support.
// It wraps a persistent repository (DB) and a cache implementation.
type UserRepository struct {
	dbRepo user.Repository
	cache  cache.UserCache
	log    *zap.Logger
	group  singleflight.Group
}

// NewUserRepository creates a new caching decorator around dbRepo.
func NewUserRepository(dbRepo user.Repository, cache cache.UserCache, log *zap.Logger) user.Repository {
	return &UserRepository{
		dbRepo: dbRepo,
		cache:  cache,
		log:    log,
	}
}

// Save delegates to the DB repository and invalidates the cached entry when
// an existing record was updated, so a soft delete never leaves a stale
// active copy behind. Cache invalidation failures are logged, not surfaced.
func (r *UserRepository) Save(ctx context.Context, u *domain.User) (*domain.User, error) {
	isUpdate := u != nil && u.Persisted()

	saved, err := r.dbRepo.Save(ctx, u)
	if err != nil {
		return nil, err
	}

	if isUpdate && r.cache != nil {
		if err := r.cache.Delete(ctx, saved.ID); err != nil {
			r.log.Warn("failed to invalidate cache after update", zap.Int64("id", saved.ID), zap.Error(err))
		}
	}

	return saved, nil
}

// FindByID retrieves a user by ID using the cache-aside pattern. Concurrent
// misses for the same ID collapse into a single database load.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	if r.cache != nil {
		cachedUser, err := r.cache.Get(ctx, id)
		if err != nil {
			r.log.Warn("cache get error, falling back to database", zap.Int64("id", id), zap.Error(err))
		} else if cachedUser != nil {
			r.log.Debug("user retrieved from cache", zap.Int64("id", id))
			return cachedUser, nil
		}
	}

	// Cache miss or cache disabled - use single-flight to prevent stampede
	key := fmt.Sprintf("user:%d", id)
	result, err, _ := r.group.Do(key, func() (any, error) {
		// Double-check cache in case another request populated it while we were waiting
		if r.cache != nil {
			cachedUser, err := r.cache.Get(ctx, id)
			if err == nil && cachedUser != nil {
				r.log.Debug("user retrieved from cache after single-flight wait", zap.Int64("id", id))
				return cachedUser, nil
			}
		}

		u, err := r.dbRepo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		// Absent rows are not cached; the next lookup goes to the DB again
		if u != nil && r.cache != nil {
			if err := r.cache.Set(ctx, u); err != nil {
				r.log.Warn("failed to cache user", zap.Int64("id", id), zap.Error(err))
			}
		}

		return u, nil
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	return result.(*domain.User), nil
}

// FindByEmail always goes to the database. The email lookup backs the
// create-time uniqueness pre-check, which must not act on stale data.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.dbRepo.FindByEmail(ctx, email)
}
