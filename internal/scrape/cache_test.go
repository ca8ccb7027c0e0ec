package scrape

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/model"
)

const testURL = "https://acme.com/about"

func TestNewCachingFetcher_DisabledReturnsNext(t *testing.T) {
	next := &mockFetcher{}
	assert.Same(t, next, NewCachingFetcher(next, &mockPageCache{}, 0))
	assert.Same(t, next, NewCachingFetcher(next, nil, time.Hour))
}

func TestCachingFetcher_Hit(t *testing.T) {
	ctx := context.Background()
	next := &mockFetcher{}
	cache := &mockPageCache{}
	cached := &model.Page{URL: testURL, Text: "Jane Doe, Founder"}
	cache.On("GetPage", ctx, testURL, model.RenderModeStatic).Return(cached, nil)

	page, err := NewCachingFetcher(next, cache, time.Hour).Fetch(ctx, testURL)
	require.NoError(t, err)
	assert.Same(t, cached, page)
	next.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}

func TestCachingFetcher_MissStores(t *testing.T) {
	ctx := context.Background()
	next := &mockFetcher{}
	cache := &mockPageCache{}
	fresh := &model.Page{URL: testURL, Text: "Jane Doe, Founder"}
	cache.On("GetPage", ctx, testURL, model.RenderModeStatic).Return(nil, nil)
	next.On("Fetch", ctx, testURL).Return(fresh, nil)
	cache.On("PutPage", ctx, fresh, model.RenderModeStatic, time.Hour).Return(nil)

	page, err := NewCachingFetcher(next, cache, time.Hour).Fetch(ctx, testURL)
	require.NoError(t, err)
	assert.Same(t, fresh, page)
	cache.AssertExpectations(t)
}

func TestCachingFetcher_FailureNotCached(t *testing.T) {
	ctx := context.Background()
	next := &mockFetcher{}
	cache := &mockPageCache{}
	cache.On("GetPage", ctx, testURL, model.RenderModeStatic).Return(nil, nil)
	next.On("Fetch", ctx, testURL).Return(nil, errors.New("status 500"))

	_, err := NewCachingFetcher(next, cache, time.Hour).Fetch(ctx, testURL)
	require.Error(t, err)
	cache.AssertNotCalled(t, "PutPage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCachingFetcher_CacheErrorsIgnored(t *testing.T) {
	ctx := context.Background()
	next := &mockFetcher{}
	cache := &mockPageCache{}
	fresh := &model.Page{URL: testURL, Text: "Jane Doe, Founder"}
	cache.On("GetPage", ctx, testURL, model.RenderModeStatic).Return(nil, errors.New("db locked"))
	next.On("Fetch", ctx, testURL).Return(fresh, nil)
	cache.On("PutPage", ctx, fresh, model.RenderModeStatic, time.Hour).Return(errors.New("db locked"))

	page, err := NewCachingFetcher(next, cache, time.Hour).Fetch(ctx, testURL)
	require.NoError(t, err)
	assert.Same(t, fresh, page)
}
