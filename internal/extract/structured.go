package extract

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// founderKeys are the JSON keys treated as a founder field.
var founderKeys = []string{"founder", "founders"}

// StructuredCandidates scans the page's JSON-LD blocks for founder fields and
// returns the raw names found. A block that fails to parse is skipped.
func StructuredCandidates(html string) []string {
	if strings.TrimSpace(html) == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		zap.L().Debug("structured: parse html", zap.Error(err))
		return nil
	}

	var names []string
	doc.Find(`script[type="application/ld+json"]`).Each(func(i int, s *goquery.Selection) {
		content := strings.TrimSpace(s.Text())
		if content == "" {
			return
		}
		var data any
		if err := json.Unmarshal([]byte(content), &data); err != nil {
			zap.L().Debug("structured: skip malformed json-ld block",
				zap.Int("block", i),
				zap.Error(err),
			)
			return
		}
		names = append(names, collectFounders(data)...)
	})
	return names
}

// collectFounders walks a decoded JSON value and gathers the names under any
// founder key, at any depth (covers @graph and nested Organization nodes).
func collectFounders(v any) []string {
	var out []string
	switch node := v.(type) {
	case map[string]any:
		for _, key := range founderKeys {
			if f, ok := node[key]; ok {
				out = append(out, founderNames(f)...)
			}
		}
		for key, child := range node {
			if isFounderKey(key) {
				continue
			}
			out = append(out, collectFounders(child)...)
		}
	case []any:
		for _, child := range node {
			out = append(out, collectFounders(child)...)
		}
	}
	return out
}

// founderNames reads the value of a founder field: an object with a name, an
// array of such objects, or a bare string.
func founderNames(v any) []string {
	switch f := v.(type) {
	case string:
		return []string{f}
	case map[string]any:
		if name, ok := f["name"].(string); ok {
			return []string{name}
		}
	case []any:
		var out []string
		for _, item := range f {
			out = append(out, founderNames(item)...)
		}
		return out
	}
	return nil
}

func isFounderKey(key string) bool {
	for _, k := range founderKeys {
		if key == k {
			return true
		}
	}
	return false
}
