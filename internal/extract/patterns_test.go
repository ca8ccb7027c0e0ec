package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLibrary_PriorityOrder(t *testing.T) {
	lib := DefaultLibrary()
	rules := lib.Rules()
	require.Len(t, rules, len(DefaultRules()))
	assert.Equal(t, "name-then-founder-line", rules[0])
	assert.Equal(t, "founded-by", rules[1])
	assert.Equal(t, "founder-then-name", rules[len(rules)-1])
}

func TestNewLibrary_SortsByPriority(t *testing.T) {
	lib, err := NewLibrary([]Rule{
		{Name: "late", Priority: 90, Pattern: `late ({name})`},
		{Name: "early", Priority: 5, Pattern: `early ({name})`},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "late"}, lib.Rules())
}

func TestNewLibrary_InvalidPattern(t *testing.T) {
	_, err := NewLibrary([]Rule{{Name: "broken", Pattern: `(unclosed`}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestCandidates_FoundedBySplitsConjunctions(t *testing.T) {
	lib, err := NewLibrary([]Rule{DefaultRules()[1]})
	require.NoError(t, err)

	got := lib.Candidates("The firm was co-founded by Ann Lee, Bo Kim & Cy Ray.")
	values := make([]string, 0, len(got))
	for _, c := range got {
		assert.Equal(t, "founded-by", c.Rule)
		values = append(values, c.Value)
	}
	assert.Equal(t, []string{"Ann Lee", "Bo Kim", "Cy Ray"}, values)
}

func TestCandidates_NameStopsAtLowercaseWord(t *testing.T) {
	lib, err := NewLibrary([]Rule{DefaultRules()[1]})
	require.NoError(t, err)

	got := lib.Candidates("Founded by Maria Chen in 2019 with seed money.")
	require.Len(t, got, 1)
	assert.Equal(t, "Maria Chen", got[0].Value)
}

func TestCandidates_DefaultGroup(t *testing.T) {
	lib, err := NewLibrary([]Rule{{Name: "g0", Pattern: `visionary: ({name})`}})
	require.NoError(t, err)

	got := lib.Candidates("Visionary: Rosa Parks")
	require.Len(t, got, 1)
	assert.Equal(t, "Rosa Parks", got[0].Value)
}

func TestSplitNames(t *testing.T) {
	assert.Equal(t, []string{"Jane Doe", "John Smith"}, splitNames("Jane Doe and John Smith"))
	assert.Equal(t, []string{"A Bc", "De Fg", "Hi Jk"}, splitNames("A Bc, De Fg, and Hi Jk"))
	assert.Equal(t, []string{"Solo Name"}, splitNames("Solo Name"))
}

func TestLoadRulesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `rules:
  - name: chief-visionary
    priority: 1
    pattern: 'Chief Visionary:[ \t]*({name})'
    group: 1
  - name: founders-list
    priority: 2
    pattern: 'Founders:[ \t]*({namelist})'
    split: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rules, err := LoadRulesFile(path)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "chief-visionary", rules[0].Name)
	assert.True(t, rules[1].Split)

	lib, err := NewLibrary(rules)
	require.NoError(t, err)
	set := NewEngine(nil, lib).ExtractText("Chief Visionary: Rosa Parks\nFounders: Ann Lee and Bo Kim")
	assert.Equal(t, []string{"Ann Lee", "Bo Kim", "Rosa Parks"}, set.Sorted())
}

func TestLoadRulesFile_Errors(t *testing.T) {
	_, err := LoadRulesFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("rules: []\n"), 0o644))
	_, err = LoadRulesFile(empty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rules")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("rules: [\n"), 0o644))
	_, err = LoadRulesFile(bad)
	require.Error(t, err)
}
