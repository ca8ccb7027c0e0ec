package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/config"
	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/model"
)

func newTestStaticFetcher() *StaticFetcher {
	return NewStaticFetcher(config.FetchConfig{TimeoutSecs: 5})
}

func TestStaticFetcher_CleanHTML(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(200)
		_, _ = w.Write([]byte(`<html><head><title>Acme Corp</title></head>
<body><nav>Menu</nav><h1>Welcome</h1><p>Acme was founded by Jane Doe and John Smith in 2015.</p>
<footer>Copyright 2024</footer></body></html>`))
	}))
	defer srv.Close()

	f := newTestStaticFetcher()
	page, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultUserAgent, gotUA)
	assert.Equal(t, srv.URL, page.URL)
	assert.Equal(t, 200, page.StatusCode)
	assert.Equal(t, "Menu\nWelcome\nAcme was founded by Jane Doe and John Smith in 2015.\nCopyright 2024", page.Text)
	assert.Contains(t, page.HTML, "<title>Acme Corp</title>")
	assert.Equal(t, model.RenderModeStatic, f.Mode())
}

func TestStaticFetcher_CustomUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`<p>Hello</p>`))
	}))
	defer srv.Close()

	f := NewStaticFetcher(config.FetchConfig{TimeoutSecs: 5, UserAgent: "founder-finder/test"})
	_, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "founder-finder/test", gotUA)
}

func TestStaticFetcher_Cloudflare(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cf-Ray", "abc123")
		w.WriteHeader(403)
		_, _ = w.Write([]byte(`<html><body>Access denied</body></html>`))
	}))
	defer srv.Close()

	_, err := newTestStaticFetcher().Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked")
}

func TestStaticFetcher_HTTP404(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
		_, _ = w.Write([]byte(`<html><body>Jane Doe, Founder</body></html>`))
	}))
	defer srv.Close()

	_, err := newTestStaticFetcher().Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestStaticFetcher_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>  </body></html>`))
	}))
	defer srv.Close()

	_, err := newTestStaticFetcher().Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestStaticFetcher_Latin1(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		_, _ = w.Write([]byte("<p>Anna M\xfcller, Founder</p>"))
	}))
	defer srv.Close()

	page, err := newTestStaticFetcher().Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Anna Müller, Founder", page.Text)
}

func TestStaticFetcher_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestStaticFetcher().Fetch(context.Background(), url)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "static: fetch")
}

func TestStaticFetcher_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<p>Hello</p>`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestStaticFetcher().Fetch(ctx, srv.URL)
	assert.Error(t, err)
}
