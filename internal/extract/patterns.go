package extract

import (
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Placeholders expanded inside rule patterns before compilation. Name words
// are matched case-sensitively even though rules compile case-insensitive, so
// a name ends at the first lowercase word ("Jane Doe and John Smith"). A name
// word never starts a co-founder title ("Jane Doe Co-Founder").
const (
	nameWord = `(?!(?i:co-?founder)\b)\p{Lu}[\p{L}'’\-]*\p{L}`
	name2    = `(?-i:` + nameWord + `(?:[ \t]+` + nameWord + `){1,3})`
	name1    = `(?-i:` + nameWord + `(?:[ \t]+` + nameWord + `){0,3})`
	credOpt  = `(?:[ \t]*,?[ \t]*(?:Ph\.?D\.?|M\.?D\.?|MSc|MBA))?`
	nameEnd  = `(?=[ \t]*(?:$|[,;|(\-–—]))`
	nameList = name2 + `(?:(?:[ \t]*,[ \t]*(?:(?:and|&)[ \t]+)?|[ \t]+(?:and|&)[ \t]+)` + name2 + `)*`
)

var placeholders = strings.NewReplacer(
	"{namelist}", nameList,
	"{name1}", name1,
	"{name}", name2,
	"{cred}", credOpt,
	"{end}", nameEnd,
)

// matchTimeout bounds a single rule's run over one page so a pathological
// page cannot stall the batch on backtracking.
const matchTimeout = 2 * time.Second

// Rule is one entry of the pattern catalogue.
type Rule struct {
	Name     string `yaml:"name"`
	Priority int    `yaml:"priority"`
	Pattern  string `yaml:"pattern"`
	Group    int    `yaml:"group"`
	Split    bool   `yaml:"split"` // split the capture on ",", "and", "&"
}

// DefaultRules returns the built-in catalogue. Every rule runs against the
// same text and the results are unioned; priority only orders execution.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "name-then-founder-line",
			Priority: 10,
			Pattern:  `({name}){cred}[ \t]*,?[ \t]*\n+\s*Founder\b[^\n]*`,
			Group:    1,
		},
		{
			Name:     "founded-by",
			Priority: 20,
			Pattern:  `\b(?:co-)?founded[ \t]+by[ \t]+({namelist})`,
			Group:    1,
			Split:    true,
		},
		{
			Name:     "name-before-founder",
			Priority: 30,
			Pattern:  `({name1})[ \t]*(?=\n+\s*(?:Co-)?Founder\b)`,
			Group:    1,
		},
		{
			Name:     "line-start-name-before-founder",
			Priority: 31,
			Pattern:  `^[ \t]*({name1})[ \t]*(?=\n+\s*(?:Co-)?Founder\b)`,
			Group:    1,
		},
		{
			Name:     "name-then-cofounder-line",
			Priority: 40,
			Pattern:  `({name}){cred}[ \t]*,?[ \t]*\n+\s*Co-?Founder\b`,
			Group:    1,
		},
		{
			Name:     "name-founder-same-line",
			Priority: 50,
			Pattern:  `({name})(?:[ \t]*[,|\-–—][ \t]*|[ \t]+)(?:Co-?)?Founder\b`,
			Group:    1,
		},
		{
			Name:     "role-cofounder-then-name",
			Priority: 60,
			Pattern:  `\b(?:CEO|COO|CTO|CFO|CPO|President)[ \t]*(?:&|and|\+)[ \t]*Co-?Founder[ \t]*\n+[ \t]*({name}){end}`,
			Group:    1,
		},
		{
			Name:     "cofounder-then-name",
			Priority: 70,
			Pattern:  `\bCo-?Founder[ \t]*\n+[ \t]*({name}){end}`,
			Group:    1,
		},
		{
			Name:     "founder-then-name",
			Priority: 80,
			Pattern:  `\bFounder[ \t]*\n+[ \t]*({name}){end}`,
			Group:    1,
		},
	}
}

type rulesFile struct {
	Rules []Rule `yaml:"rules"`
}

// LoadRulesFile reads a YAML catalogue of the form {rules: [...]}.
func LoadRulesFile(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "patterns: read %s", path)
	}
	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrapf(err, "patterns: parse %s", path)
	}
	if len(f.Rules) == 0 {
		return nil, eris.Errorf("patterns: %s defines no rules", path)
	}
	return f.Rules, nil
}

type compiledRule struct {
	Rule
	re *regexp2.Regexp
}

// Candidate is a raw match produced by one rule, before validation.
type Candidate struct {
	Rule  string
	Value string
}

// Library is a compiled, ordered pattern catalogue.
type Library struct {
	rules []compiledRule
}

// NewLibrary expands placeholders and compiles rules case-insensitive and
// multi-line.
func NewLibrary(rules []Rule) (*Library, error) {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority < sorted[j].Priority })

	lib := &Library{rules: make([]compiledRule, 0, len(sorted))}
	for _, r := range sorted {
		if r.Group <= 0 {
			r.Group = 1
		}
		re, err := regexp2.Compile(placeholders.Replace(r.Pattern), regexp2.IgnoreCase|regexp2.Multiline)
		if err != nil {
			return nil, eris.Wrapf(err, "patterns: compile rule %q", r.Name)
		}
		re.MatchTimeout = matchTimeout
		lib.rules = append(lib.rules, compiledRule{Rule: r, re: re})
	}
	return lib, nil
}

// DefaultLibrary compiles DefaultRules. The built-in patterns are known good,
// so a failure here is a programming error.
func DefaultLibrary() *Library {
	lib, err := NewLibrary(DefaultRules())
	if err != nil {
		panic(err)
	}
	return lib
}

// Rules returns the rule names in execution order.
func (l *Library) Rules() []string {
	out := make([]string, 0, len(l.rules))
	for _, r := range l.rules {
		out = append(out, r.Name)
	}
	return out
}

// Candidates runs every rule over text and returns raw captures in rule
// order. A rule that errors (match timeout) contributes what it found so far.
func (l *Library) Candidates(text string) []Candidate {
	var out []Candidate
	for _, r := range l.rules {
		m, err := r.re.FindStringMatch(text)
		for err == nil && m != nil {
			if g := m.GroupByNumber(r.Group); g != nil && g.Length > 0 {
				raw := g.String()
				if r.Split {
					for _, part := range splitNames(raw) {
						out = append(out, Candidate{Rule: r.Name, Value: part})
					}
				} else {
					out = append(out, Candidate{Rule: r.Name, Value: raw})
				}
			}
			m, err = r.re.FindNextMatch(m)
		}
	}
	return out
}

var conjunctionRe = regexp.MustCompile(`(?i)\s*,\s*(?:(?:and|&)\s+)?|\s+(?:and|&)\s+`)

// splitNames breaks "A B, C D and E F" into its names.
func splitNames(s string) []string {
	var out []string
	for _, p := range conjunctionRe.Split(s, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
