package notifier

import (
	"context"
	"errors"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/openboard/board-api/internal/model"
	"github.com/openboard/board-api/internal/repository"
	apperrors "github.com/openboard/board-api/pkg/errors"
	"github.com/openboard/board-api/pkg/metrics"
)

// Registry looks up notification types by their symbolic key. Types are
// admin-managed and change rarely, so lookups are served from an
// in-process TTL cache in front of the store.
type Registry struct {
	repo    repository.NotificationTypeRepository
	cache   *cache.Cache
	metrics *metrics.Metrics
}

func NewRegistry(repo repository.NotificationTypeRepository, ttl time.Duration, m *metrics.Metrics) *Registry {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Registry{
		repo:    repo,
		cache:   cache.New(ttl, 2*ttl),
		metrics: m,
	}
}

// GetByKey returns the type for key, or a NotFound application error
// when the key is unregistered. An unregistered key is a caller bug
// (typo in the key), never retried.
func (r *Registry) GetByKey(ctx context.Context, key string) (*model.NotificationType, error) {
	if v, ok := r.cache.Get(key); ok {
		if r.metrics != nil {
			r.metrics.TypeCacheHits.Inc()
		}
		return v.(*model.NotificationType), nil
	}

	nt, err := r.repo.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("notification type", err)
		}
		return nil, err
	}

	r.cache.SetDefault(key, nt)
	return nt, nil
}

// Invalidate drops a cached entry after an admin edit.
func (r *Registry) Invalidate(key string) {
	r.cache.Delete(key)
}
