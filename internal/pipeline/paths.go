package pipeline

import (
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
)

// normalizeURL adds a scheme to bare domains. The path is left as given so
// the root is fetched exactly as listed in the input.
func normalizeURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Host == "" {
		return nil, eris.Errorf("no host in %q", raw)
	}
	return u, nil
}

func baseURL(u *url.URL) string {
	return u.Scheme + "://" + u.Host
}

// CandidateURLs returns the pages to try for a company: the root URL first,
// then scheme://host joined with each fallback path. Candidates that repeat
// an earlier URL (ignoring a trailing slash) are dropped.
func CandidateURLs(root string, paths []string) ([]string, error) {
	u, err := normalizeURL(root)
	if err != nil {
		return nil, eris.Wrapf(err, "pipeline: parse company url %q", root)
	}

	first := u.String()
	out := []string{first}
	seen := map[string]bool{strings.TrimSuffix(first, "/"): true}

	base := baseURL(u)
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		candidate := base + p
		key := strings.TrimSuffix(candidate, "/")
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, candidate)
	}
	return out, nil
}
