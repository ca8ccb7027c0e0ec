package scrape

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/model"
)

// PageCache stores successfully fetched pages keyed by URL and render mode.
// GetPage returns nil, nil on a miss or an expired entry.
type PageCache interface {
	GetPage(ctx context.Context, url string, mode model.RenderMode) (*model.Page, error)
	PutPage(ctx context.Context, page *model.Page, mode model.RenderMode, ttl time.Duration) error
}

// CachingFetcher serves pages from a PageCache and fills it on success.
// Failed fetches are never cached.
type CachingFetcher struct {
	next  Fetcher
	cache PageCache
	ttl   time.Duration
}

// NewCachingFetcher wraps next. A non-positive ttl disables caching and
// returns next unchanged.
func NewCachingFetcher(next Fetcher, cache PageCache, ttl time.Duration) Fetcher {
	if cache == nil || ttl <= 0 {
		return next
	}
	return &CachingFetcher{next: next, cache: cache, ttl: ttl}
}

func (c *CachingFetcher) Mode() model.RenderMode { return c.next.Mode() }

// Fetch returns the cached page if present, otherwise fetches and stores it.
// Cache errors are logged and otherwise ignored.
func (c *CachingFetcher) Fetch(ctx context.Context, url string) (*model.Page, error) {
	mode := c.next.Mode()
	cached, err := c.cache.GetPage(ctx, url, mode)
	if err != nil {
		zap.L().Warn("scrape: page cache read failed", zap.String("url", url), zap.Error(err))
	} else if cached != nil {
		zap.L().Debug("scrape: page cache hit", zap.String("url", url))
		return cached, nil
	}

	page, err := c.next.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := c.cache.PutPage(ctx, page, mode, c.ttl); err != nil {
		zap.L().Warn("scrape: page cache write failed", zap.String("url", url), zap.Error(err))
	}
	return page, nil
}
