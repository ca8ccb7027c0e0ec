package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/model"
)

func sampleResult() *model.ExtractionResult {
	res := model.NewExtractionResult()
	res.Append(&model.CompanyResult{
		Company:   model.CompanyRecord{Name: "Zeta & Co", URL: "https://zeta.test"},
		Founders:  model.NewFounderSet("John Smith", "Jane Doe"),
		SourceURL: "https://zeta.test/about",
	})
	res.Append(&model.CompanyResult{Company: model.CompanyRecord{Name: "Acme Inc"}})
	return res
}

func TestWriteJSON_OrderedAndIndented(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResult()))
	want := `{
  "Zeta & Co": [
    "Jane Doe",
    "John Smith"
  ],
  "Acme Inc": []
}
`
	assert.Equal(t, want, buf.String())
}

func TestWriteJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, model.NewExtractionResult()))
	assert.Equal(t, "{}\n", buf.String())
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResult()))
	want := "company,founders,source_url\n" +
		"Zeta & Co,Jane Doe; John Smith,https://zeta.test/about\n" +
		"Acme Inc,,\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteResultsFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "founders.json")
	require.NoError(t, WriteResultsFile(jsonPath, FormatJSON, sampleResult()))
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Zeta & Co": ["Jane Doe", "John Smith"], "Acme Inc": []}`, string(data))

	csvPath := filepath.Join(dir, "founders.csv")
	require.NoError(t, WriteResultsFile(csvPath, FormatCSV, sampleResult()))
	data, err = os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "company,founders,source_url")

	err = WriteResultsFile(filepath.Join(dir, "x.xml"), "xml", sampleResult())
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestWriteResultsFile_Unwritable(t *testing.T) {
	err := WriteResultsFile(filepath.Join(t.TempDir(), "missing", "founders.json"), FormatJSON, sampleResult())
	assert.ErrorContains(t, err, "create output")
}
