package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/model"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// WriteJSON writes {"Company": ["Founder", ...]} in input order, two-space
// indented.
func WriteJSON(w io.Writer, res *model.ExtractionResult) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(res), "pipeline: encode json")
}

// WriteCSV writes one row per company: name, founders joined by "; ", and the
// page they were found on.
func WriteCSV(w io.Writer, res *model.ExtractionResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"company", "founders", "source_url"}); err != nil {
		return eris.Wrap(err, "pipeline: write csv header")
	}
	for _, r := range res.Results() {
		row := []string{r.Company.Name, strings.Join(r.Founders.Sorted(), "; "), r.SourceURL}
		if err := cw.Write(row); err != nil {
			return eris.Wrapf(err, "pipeline: write csv row %s", r.Company.Name)
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "pipeline: flush csv")
}

// WriteResultsFile writes res to path in the given format.
func WriteResultsFile(path, format string, res *model.ExtractionResult) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "pipeline: create output %s", path)
	}

	switch format {
	case FormatCSV:
		err = WriteCSV(f, res)
	case FormatJSON, "":
		err = WriteJSON(f, res)
	default:
		err = eris.Errorf("pipeline: unsupported output format %q", format)
	}
	if cerr := f.Close(); err == nil && cerr != nil {
		err = eris.Wrapf(cerr, "pipeline: close output %s", path)
	}
	return err
}
