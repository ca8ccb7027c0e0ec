package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// DefaultDenylist holds capitalized phrases that the patterns pick up from
// page headings but that are never people.
var DefaultDenylist = []string{
	"Our Team",
	"Meet The",
	"About Us",
	"Contact Us",
	"Head Of",
	"Meet Our",
	"About The",
	"Our Founder",
	"Our Founders",
	"Our Story",
	"The Team",
	"Meet The Team",
	"Leadership Team",
}

const (
	defaultMinWords = 2
	defaultMaxWords = 4
)

// Validator decides whether a candidate string looks like a person's name.
// It is pure and safe for concurrent use.
type Validator struct {
	minWords int
	maxWords int
	deny     map[string]struct{}
}

// NewValidator builds a Validator. Non-positive word bounds fall back to 2..4;
// a nil denylist uses DefaultDenylist.
func NewValidator(minWords, maxWords int, denylist []string) *Validator {
	if minWords <= 0 {
		minWords = defaultMinWords
	}
	if maxWords <= 0 {
		maxWords = defaultMaxWords
	}
	if maxWords < minWords {
		maxWords = minWords
	}
	if denylist == nil {
		denylist = DefaultDenylist
	}
	deny := make(map[string]struct{}, len(denylist))
	for _, d := range denylist {
		deny[strings.TrimSpace(d)] = struct{}{}
	}
	return &Validator{minWords: minWords, maxWords: maxWords, deny: deny}
}

// DefaultValidator returns the 2..4 word profile with the default denylist.
func DefaultValidator() *Validator {
	return NewValidator(defaultMinWords, defaultMaxWords, nil)
}

// IsValid reports whether candidate passes the word-count, capitalization and
// denylist rules, in that order.
func (v *Validator) IsValid(candidate string) bool {
	words := strings.Fields(candidate)
	if len(words) < v.minWords || len(words) > v.maxWords {
		return false
	}
	for _, w := range words {
		r, _ := utf8.DecodeRuneInString(w)
		if !unicode.IsLetter(r) || !unicode.IsUpper(r) {
			return false
		}
	}
	if _, denied := v.deny[strings.TrimSpace(candidate)]; denied {
		return false
	}
	return true
}

var credentialSuffixRe = regexp.MustCompile(`(?:,\s*|\s+)(?:Ph\.?D\.?|M\.?D\.?|MSc|MBA)$`)

// NormalizeName trims a raw candidate, collapses inner whitespace and strips
// trailing credential tokens such as "PhD" or ", M.D.".
func NormalizeName(raw string) string {
	s := strings.Join(strings.Fields(norm.NFC.String(raw)), " ")
	for {
		trimmed := strings.TrimSpace(credentialSuffixRe.ReplaceAllString(s, ""))
		if trimmed == s {
			return s
		}
		s = trimmed
	}
}
