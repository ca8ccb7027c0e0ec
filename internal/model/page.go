package model

// RenderMode selects which fetcher code path runs. It is decided once per
// process.
type RenderMode string

const (
	RenderModeStatic  RenderMode = "static"
	RenderModeBrowser RenderMode = "browser"
)

// Page is the fetched content of one URL.
type Page struct {
	URL        string `json:"url"`
	Text       string `json:"text"`           // visible text, one block per line
	HTML       string `json:"html,omitempty"` // document source, for structured data
	StatusCode int    `json:"status_code,omitempty"`
}
