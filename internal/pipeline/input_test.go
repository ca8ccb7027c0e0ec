package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/model"
)

func TestParseCompanyLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want model.CompanyRecord
		ok   bool
	}{
		{"name and url", "Acme Inc (https://acme.test)", model.CompanyRecord{Name: "Acme Inc", URL: "https://acme.test"}, true},
		{"surrounding whitespace", "  Beta Labs   ( https://beta.test )  ", model.CompanyRecord{Name: "Beta Labs", URL: "https://beta.test"}, true},
		{"no space before paren", "Gamma(https://gamma.test)", model.CompanyRecord{Name: "Gamma", URL: "https://gamma.test"}, true},
		{"no url", "Acme Inc", model.CompanyRecord{Name: "Acme Inc"}, true},
		{"unclosed paren", "Acme Inc (https://acme.test", model.CompanyRecord{Name: "Acme Inc (https://acme.test"}, true},
		{"blank", "   ", model.CompanyRecord{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCompanyLine(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCompanies(t *testing.T) {
	in := "Acme Inc (https://acme.test)\n\n  \nBeta Labs\r\nGamma (gamma.test)\n"
	recs, err := ParseCompanies(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []model.CompanyRecord{
		{Name: "Acme Inc", URL: "https://acme.test", Line: 1},
		{Name: "Beta Labs", Line: 4},
		{Name: "Gamma", URL: "gamma.test", Line: 5},
	}, recs)
}

func TestReadCompaniesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "companies.txt")
	require.NoError(t, os.WriteFile(path, []byte("Acme Inc (https://acme.test)\n"), 0o644))

	recs, err := ReadCompaniesFile(path)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Acme Inc", recs[0].Name)
}

func TestReadCompaniesFile_Missing(t *testing.T) {
	_, err := ReadCompaniesFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open companies file")
}
