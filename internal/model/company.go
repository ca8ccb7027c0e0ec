package model

import "time"

// RunStatus represents the current state of a batch run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// CompanyRecord is one parsed input line. URL is empty when the line carried
// no parenthesized URL.
type CompanyRecord struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
	Line int    `json:"line,omitempty"`
}

// HasURL reports whether the record carries a URL to search.
func (c CompanyRecord) HasURL() bool {
	return c.URL != ""
}

// CompanyResult is the outcome of searching one company.
type CompanyResult struct {
	Company   CompanyRecord `json:"company"`
	Founders  FounderSet    `json:"founders"`
	SourceURL string        `json:"source_url,omitempty"` // page the founders were found on
	Attempted []string      `json:"attempted,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// Found reports whether at least one founder was located.
func (r *CompanyResult) Found() bool {
	return r != nil && r.Founders.Len() > 0
}

// Run is one batch invocation recorded in the store.
type Run struct {
	ID         string     `json:"id"`
	InputPath  string     `json:"input_path"`
	Mode       RenderMode `json:"mode"`
	Status     RunStatus  `json:"status"`
	Total      int        `json:"total"`
	Found      int        `json:"found"`
	CreatedAt  time.Time  `json:"created_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}
