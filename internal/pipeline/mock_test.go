package pipeline

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/model"
)

// --- Fetcher Mock ---

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(ctx context.Context, url string) (*model.Page, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Page), args.Error(1)
}

func (m *mockFetcher) Mode() model.RenderMode { return model.RenderModeStatic }

// --- Recorder Mock ---

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) RecordResult(ctx context.Context, position int, result *model.CompanyResult) error {
	args := m.Called(ctx, position, result)
	return args.Error(0)
}

// --- Extractor Stub ---

type panicExtractor struct{}

func (panicExtractor) Extract(*model.Page) model.FounderSet {
	panic("boom")
}

func textPage(url, text string) *model.Page {
	return &model.Page{URL: url, Text: text, StatusCode: 200}
}
