package pipeline

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/model"
)

var companyLineRe = regexp.MustCompile(`^(.+?)\s*\((.+?)\)`)

// ParseCompanyLine parses "Name (URL)". A line without a parenthesized URL
// becomes a record whose name is the whole trimmed line. ok is false for
// blank lines.
func ParseCompanyLine(line string) (rec model.CompanyRecord, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return model.CompanyRecord{}, false
	}
	if m := companyLineRe.FindStringSubmatch(line); m != nil {
		return model.CompanyRecord{
			Name: strings.TrimSpace(m[1]),
			URL:  strings.TrimSpace(m[2]),
		}, true
	}
	return model.CompanyRecord{Name: line}, true
}

// ParseCompanies reads one company per line, skipping blank lines.
func ParseCompanies(r io.Reader) ([]model.CompanyRecord, error) {
	var out []model.CompanyRecord
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		n++
		rec, ok := ParseCompanyLine(sc.Text())
		if !ok {
			continue
		}
		rec.Line = n
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrap(err, "pipeline: read companies")
	}
	return out, nil
}

// ReadCompaniesFile parses the companies file at path. A missing file is a
// terminal error for the run.
func ReadCompaniesFile(path string) ([]model.CompanyRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "pipeline: open companies file %s", path)
	}
	defer f.Close()

	recs, err := ParseCompanies(f)
	if err != nil {
		return nil, eris.Wrapf(err, "pipeline: parse %s", path)
	}
	return recs, nil
}
