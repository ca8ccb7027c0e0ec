package pipeline

import (
	"fmt"
	"io"
	"strings"

	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/model"
)

// WriteSummary prints the batch tally followed by one line per company.
func WriteSummary(w io.Writer, res *model.ExtractionResult) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Found founders for %d/%d companies\n", res.FoundCount(), res.Len())
	for _, r := range res.Results() {
		mark := "✗"
		if r.Found() {
			mark = "✓"
		}
		fmt.Fprintf(&b, "  %s %s: [%s]\n", mark, r.Company.Name, strings.Join(r.Founders.Sorted(), ", "))
	}
	_, err := io.WriteString(w, b.String())
	return err
}
