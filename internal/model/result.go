package model

import (
	"bytes"
	"encoding/json"
)

// ExtractionResult maps company name to founders, preserving input order.
// It is built by a single writer; there is no locking.
type ExtractionResult struct {
	order   []string
	results map[string]*CompanyResult
}

// NewExtractionResult returns an empty result.
func NewExtractionResult() *ExtractionResult {
	return &ExtractionResult{results: make(map[string]*CompanyResult)}
}

// Append records r under its company name. A repeated name keeps its first
// position and takes the newer result.
func (e *ExtractionResult) Append(r *CompanyResult) {
	name := r.Company.Name
	if _, ok := e.results[name]; !ok {
		e.order = append(e.order, name)
	}
	e.results[name] = r
}

// Len returns the number of companies.
func (e *ExtractionResult) Len() int {
	return len(e.order)
}

// FoundCount returns how many companies have a non-empty founder set.
func (e *ExtractionResult) FoundCount() int {
	n := 0
	for _, name := range e.order {
		if e.results[name].Found() {
			n++
		}
	}
	return n
}

// Get returns the result for a company name.
func (e *ExtractionResult) Get(name string) (*CompanyResult, bool) {
	r, ok := e.results[name]
	return r, ok
}

// Results returns the company results in input order.
func (e *ExtractionResult) Results() []*CompanyResult {
	out := make([]*CompanyResult, 0, len(e.order))
	for _, name := range e.order {
		out = append(out, e.results[name])
	}
	return out
}

// MarshalJSON writes {"Company": ["Founder", ...], ...} in input order.
func (e *ExtractionResult) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range e.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalUnescaped(name)
		if err != nil {
			return nil, err
		}
		val, err := marshalUnescaped(e.results[name].Founders.Sorted())
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalUnescaped encodes v without HTML escaping, so "AT&T" stays readable.
func marshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
