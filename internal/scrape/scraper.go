// Package scrape fetches company pages and projects them to the visible text
// the extraction engine reads, either over plain HTTP or through headless
// Chrome.
package scrape

import (
	"context"

	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/model"
)

// Fetcher retrieves a single URL. A non-nil error means no usable page was
// obtained (network failure, non-2xx status, block page, timeout).
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*model.Page, error)
	Mode() model.RenderMode
}
