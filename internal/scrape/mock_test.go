package scrape

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/model"
)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(ctx context.Context, url string) (*model.Page, error) {
	args := m.Called(ctx, url)
	page, _ := args.Get(0).(*model.Page)
	return page, args.Error(1)
}

func (m *mockFetcher) Mode() model.RenderMode { return model.RenderModeStatic }

type mockPageCache struct {
	mock.Mock
}

func (m *mockPageCache) GetPage(ctx context.Context, url string, mode model.RenderMode) (*model.Page, error) {
	args := m.Called(ctx, url, mode)
	page, _ := args.Get(0).(*model.Page)
	return page, args.Error(1)
}

func (m *mockPageCache) PutPage(ctx context.Context, page *model.Page, mode model.RenderMode, ttl time.Duration) error {
	args := m.Called(ctx, page, mode, ttl)
	return args.Error(0)
}
