package scrape

import (
	"context"

	"go.uber.org/zap"

	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/config"
	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/model"
)

// BrowserStarter launches a browser and returns its context.
type BrowserStarter func(ctx context.Context, cfg config.BrowserConfig, userAgent string) (context.Context, context.CancelFunc, error)

// Session is the fetcher chosen for one batch together with the resources
// backing it. Close must be called once the batch ends.
type Session struct {
	Fetcher Fetcher
	close   context.CancelFunc
}

// Mode reports the render mode actually in use.
func (s *Session) Mode() model.RenderMode { return s.Fetcher.Mode() }

// Close releases the browser, if one was started. Safe to call twice.
func (s *Session) Close() {
	if s.close != nil {
		s.close()
		s.close = nil
	}
}

// Negotiate picks the render mode for a batch once, before any company is
// processed. Browser mode is used when enabled and Chrome starts; otherwise
// the session falls back to static fetching with a warning. A nil start uses
// StartChrome.
func Negotiate(ctx context.Context, cfg *config.Config, start BrowserStarter) *Session {
	static := &Session{Fetcher: NewStaticFetcher(cfg.Fetch)}
	if !cfg.Browser.Enabled {
		zap.L().Info("scrape: browser disabled, using static fetching")
		return static
	}

	var debug *DebugWriter
	if cfg.Browser.DebugDir != "" {
		d, err := NewDebugWriter(cfg.Browser.DebugDir)
		if err != nil {
			zap.L().Warn("scrape: debug dumps disabled", zap.Error(err))
		} else {
			debug = d
		}
	}

	if start == nil {
		start = StartChrome
	}
	ua := cfg.Fetch.UserAgent
	if ua == "" {
		ua = config.DefaultUserAgent
	}
	browserCtx, cancel, err := start(ctx, cfg.Browser, ua)
	if err != nil {
		zap.L().Warn("scrape: headless browser unavailable, falling back to static fetching",
			zap.Error(err),
		)
		return static
	}

	zap.L().Info("scrape: using headless browser")
	return &Session{
		Fetcher: NewBrowserFetcher(browserCtx, cfg.Browser, debug),
		close:   cancel,
	}
}
