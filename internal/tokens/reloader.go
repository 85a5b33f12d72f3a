package tokens

import (
	"context"
	"time"

	"cardrender/internal/infra/logging"
)

// Repository loads the persisted API keys.
type Repository interface {
	LoadTokens(ctx context.Context) (map[string]Entry, error)
}

// Reloader fills a Cache from a Repository, merged with keys that come from
// configuration. A nil repository means only static keys are served.
type Reloader struct {
	repo     Repository
	cache    *Cache
	static   map[string]Entry
	interval time.Duration
}

func NewReloader(repo Repository, cache *Cache, interval time.Duration) *Reloader {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Reloader{repo: repo, cache: cache, interval: interval}
}

// WithStatic registers configured keys. Repository entries win on conflict.
func (r *Reloader) WithStatic(static map[string]int) *Reloader {
	r.static = make(map[string]Entry, len(static))
	for k, v := range static {
		r.static[k] = Entry{RateLimit: v}
	}
	return r
}

// LoadOnce loads the keys and replaces the cache. On error the cache is left
// untouched.
func (r *Reloader) LoadOnce(ctx context.Context) error {
	merged := make(map[string]Entry, len(r.static))
	for k, v := range r.static {
		merged[k] = v
	}
	if r.repo != nil {
		loaded, err := r.repo.LoadTokens(ctx)
		if err != nil {
			return err
		}
		for k, v := range loaded {
			merged[k] = v
		}
	}
	r.cache.Replace(merged)
	logging.Debug("API tokens loaded", "count", len(merged))
	return nil
}

// Start refreshes the cache every interval until ctx is done. It does nothing
// without a repository.
func (r *Reloader) Start(ctx context.Context) {
	if r.repo == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := r.LoadOnce(ctx); err != nil {
					logging.Error("Failed to reload API tokens", "error", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}
