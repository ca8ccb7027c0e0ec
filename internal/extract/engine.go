// Package extract turns fetched page content into a validated set of founder
// names using embedded structured data and a catalogue of text patterns.
package extract

import (
	"strings"

	"go.uber.org/zap"

	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/model"
)

// Engine runs structured-data extraction first and the pattern catalogue
// second. It holds no mutable state; Extract is idempotent.
type Engine struct {
	validator  *Validator
	library    *Library
	structured bool
}

// NewEngine creates an Engine with structured-data extraction enabled.
func NewEngine(v *Validator, lib *Library) *Engine {
	if v == nil {
		v = DefaultValidator()
	}
	if lib == nil {
		lib = DefaultLibrary()
	}
	return &Engine{validator: v, library: lib, structured: true}
}

// WithStructuredData toggles the JSON-LD pass.
func (e *Engine) WithStructuredData(enabled bool) *Engine {
	e.structured = enabled
	return e
}

// Extract returns the founders on page. Non-empty structured data is
// authoritative and short-circuits pattern matching.
func (e *Engine) Extract(page *model.Page) model.FounderSet {
	if page == nil {
		return model.FounderSet{}
	}
	if e.structured && page.HTML != "" {
		set := e.validate("structured-data", StructuredCandidates(page.HTML))
		if set.Len() > 0 {
			zap.L().Debug("extract: founders from structured data",
				zap.String("url", page.URL),
				zap.Strings("founders", set.Sorted()),
			)
			return set
		}
	}
	return e.ExtractText(page.Text)
}

// ExtractText runs every pattern rule over text and unions the validated
// results.
func (e *Engine) ExtractText(text string) model.FounderSet {
	var set model.FounderSet
	text = normalizeLineBreaks(text)
	if strings.TrimSpace(text) == "" {
		return set
	}
	for _, c := range e.library.Candidates(text) {
		name := NormalizeName(c.Value)
		if !e.validator.IsValid(name) {
			continue
		}
		if set.Add(name) {
			zap.L().Debug("extract: pattern matched",
				zap.String("rule", c.Rule),
				zap.String("name", name),
			)
		}
	}
	return set
}

func (e *Engine) validate(source string, raw []string) model.FounderSet {
	var set model.FounderSet
	for _, r := range raw {
		name := NormalizeName(r)
		if e.validator.IsValid(name) {
			set.Add(name)
		} else {
			zap.L().Debug("extract: rejected candidate",
				zap.String("source", source),
				zap.String("candidate", r),
			)
		}
	}
	return set
}

func normalizeLineBreaks(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
