package scrape

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/config"
	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/model"
)

const (
	scrollToBottomJS = `window.scrollTo(0, document.body.scrollHeight); true`
	scrollToTopJS    = `window.scrollTo(0, 0); true`
)

// BrowserFetcher renders pages in a shared headless Chrome instance. Each
// fetch opens a tab, waits for scripts to settle, scrolls to trigger lazy
// content and reads the rendered body text.
type BrowserFetcher struct {
	browserCtx context.Context
	settle     time.Duration
	scroll     time.Duration
	final      time.Duration
	timeout    time.Duration
	debug      *DebugWriter
}

// NewBrowserFetcher wraps a started chromedp browser context.
func NewBrowserFetcher(browserCtx context.Context, cfg config.BrowserConfig, debug *DebugWriter) *BrowserFetcher {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &BrowserFetcher{
		browserCtx: browserCtx,
		settle:     time.Duration(cfg.SettleMs) * time.Millisecond,
		scroll:     time.Duration(cfg.ScrollMs) * time.Millisecond,
		final:      time.Duration(cfg.FinalMs) * time.Millisecond,
		timeout:    timeout,
		debug:      debug,
	}
}

func (b *BrowserFetcher) Mode() model.RenderMode { return model.RenderModeBrowser }

// Fetch loads targetURL in a new tab and returns its rendered text and DOM.
func (b *BrowserFetcher) Fetch(ctx context.Context, targetURL string) (*model.Page, error) {
	tabCtx, closeTab := chromedp.NewContext(b.browserCtx)
	defer closeTab()
	tabCtx, cancel := context.WithTimeout(tabCtx, b.timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var (
		text, source string
		scrolled     bool
	)
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(targetURL),
		chromedp.Sleep(b.settle),
		chromedp.Evaluate(scrollToBottomJS, &scrolled),
		chromedp.Sleep(b.scroll),
		chromedp.Evaluate(scrollToTopJS, &scrolled),
		chromedp.Sleep(b.final),
		chromedp.Text("body", &text, chromedp.ByQuery),
		chromedp.OuterHTML("html", &source, chromedp.ByQuery),
	)
	if err != nil {
		return nil, eris.Wrapf(err, "browser: render %s", targetURL)
	}

	text = CollapseLines(text)
	if b.debug != nil {
		if path, err := b.debug.Write(targetURL, text, source); err != nil {
			zap.L().Warn("browser: debug dump failed", zap.String("url", targetURL), zap.Error(err))
		} else {
			zap.L().Debug("browser: debug dump written", zap.String("path", path))
		}
	}
	if text == "" {
		return nil, eris.New("browser: empty page")
	}

	return &model.Page{
		URL:  targetURL,
		Text: text,
		HTML: source,
	}, nil
}

// StartChrome launches headless Chrome and returns its browser context. The
// returned cancel func shuts the browser down.
func StartChrome(ctx context.Context, cfg config.BrowserConfig, userAgent string) (context.Context, context.CancelFunc, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(userAgent),
	)
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	cancel := func() {
		browserCancel()
		allocCancel()
	}

	// Run with no actions starts the browser.
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		return nil, nil, eris.Wrap(err, "browser: start chrome")
	}
	return browserCtx, cancel, nil
}
