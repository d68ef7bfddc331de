package memory

import (
	"context"
	"time"

	cachemem "github.com/kitbuilder587/bookfinder/internal/cache/memory"
	"github.com/kitbuilder587/bookfinder/internal/domain"
	"github.com/kitbuilder587/bookfinder/internal/repository"
	"github.com/kitbuilder587/bookfinder/internal/search"
)

const DefaultTTL = 24 * time.Hour

// SessionRepo держит сессии в памяти процесса. После рестарта сессии теряются.
type SessionRepo struct {
	cache *cachemem.Cache[[]search.Item]
	ttl   time.Duration
}

func NewSessionRepo(ttl time.Duration, opts ...cachemem.Option) *SessionRepo {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SessionRepo{
		cache: cachemem.New[[]search.Item](opts...),
		ttl:   ttl,
	}
}

func (r *SessionRepo) SaveResults(ctx context.Context, sessionID string, items []search.Item) error {
	stored := make([]search.Item, len(items))
	copy(stored, items)
	r.cache.Set(key(sessionID), stored, r.ttl)
	return nil
}

func (r *SessionRepo) GetResults(ctx context.Context, sessionID string) ([]search.Item, error) {
	items, ok := r.cache.Get(key(sessionID))
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return items, nil
}

func (r *SessionRepo) Delete(ctx context.Context, sessionID string) error {
	r.cache.Delete(key(sessionID))
	return nil
}

func (r *SessionRepo) Ping(ctx context.Context) error {
	return nil
}

func (r *SessionRepo) Close() {
	r.cache.Stop()
}

func key(sessionID string) string {
	return sessionID + ":" + repository.ResultsKey
}
