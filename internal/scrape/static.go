package scrape

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/config"
	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/model"
)

const defaultMaxBodyBytes = 5 * 1024 * 1024

// StaticFetcher fetches HTML over plain HTTP without executing scripts.
type StaticFetcher struct {
	client    *http.Client
	userAgent string
	maxBody   int64
}

// NewStaticFetcher creates a StaticFetcher from the fetch settings.
func NewStaticFetcher(cfg config.FetchConfig) *StaticFetcher {
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = config.DefaultUserAgent
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	return &StaticFetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout: timeout,
				}).DialContext,
				TLSHandshakeTimeout: timeout,
			},
		},
		userAgent: ua,
		maxBody:   maxBody,
	}
}

func (s *StaticFetcher) Mode() model.RenderMode { return model.RenderModeStatic }

// Fetch downloads targetURL, rejects error statuses and block pages, and
// renders the visible text.
func (s *StaticFetcher) Fetch(ctx context.Context, targetURL string) (*model.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "static: create request")
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "static: fetch")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBody))
	if err != nil {
		return nil, eris.Wrap(err, "static: read body")
	}

	if bt := DetectBlock(resp.StatusCode, resp.Header, body); bt != BlockNone {
		return nil, eris.Errorf("static: blocked (%s)", bt)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, eris.Errorf("static: status %d", resp.StatusCode)
	}

	source, err := DecodeHTML(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, eris.Wrap(err, "static: decode body")
	}
	text, err := VisibleText(source)
	if err != nil {
		return nil, eris.Wrap(err, "static: parse html")
	}
	if text == "" {
		return nil, eris.New("static: empty page")
	}

	return &model.Page{
		URL:        targetURL,
		Text:       text,
		HTML:       source,
		StatusCode: resp.StatusCode,
	}, nil
}
