// Package store persists batch run history and the fetched-page cache.
package store

import (
	"context"
	"time"

	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for founder search runs.
type Store interface {
	// Runs
	CreateRun(ctx context.Context, inputPath string, mode model.RenderMode, total int) (*model.Run, error)
	RecordResult(ctx context.Context, runID string, position int, result *model.CompanyResult) error
	FinishRun(ctx context.Context, runID string, status model.RunStatus, found int) error
	GetRun(ctx context.Context, idOrPrefix string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)
	GetRunResults(ctx context.Context, runID string) ([]model.CompanyResult, error)

	// Page cache
	GetPage(ctx context.Context, url string, mode model.RenderMode) (*model.Page, error)
	PutPage(ctx context.Context, page *model.Page, mode model.RenderMode, ttl time.Duration) error
	DeleteExpiredPages(ctx context.Context) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
