// Package pipeline drives the founder search: for each company it walks the
// fallback page sequence, fetching and extracting until a page yields
// founders.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/config"
	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/extract"
	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/model"
	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/scrape"
)

// Extractor turns a fetched page into a founder set.
type Extractor interface {
	Extract(page *model.Page) model.FounderSet
}

var _ Extractor = (*extract.Engine)(nil)

// Recorder receives each company outcome as soon as it is known.
type Recorder interface {
	RecordResult(ctx context.Context, position int, result *model.CompanyResult) error
}

// Finder is the per-batch orchestrator. Companies are processed one at a
// time and candidates strictly in order.
type Finder struct {
	fetcher  scrape.Fetcher
	engine   Extractor
	paths    []string
	delay    time.Duration
	recorder Recorder
}

// NewFinder creates a Finder using the fallback paths and politeness delay
// from cfg.
func NewFinder(fetcher scrape.Fetcher, engine Extractor, cfg config.StrategyConfig) *Finder {
	return &Finder{
		fetcher: fetcher,
		engine:  engine,
		paths:   cfg.Paths,
		delay:   cfg.Delay(),
	}
}

// WithRecorder streams every company outcome to r.
func (f *Finder) WithRecorder(r Recorder) *Finder {
	f.recorder = r
	return f
}

// FindFounders searches one company. It never fails: fetch errors advance to
// the next candidate and an exhausted sequence yields an empty set.
func (f *Finder) FindFounders(ctx context.Context, rec model.CompanyRecord) *model.CompanyResult {
	result := &model.CompanyResult{Company: rec}
	log := zap.L().With(zap.String("company", rec.Name))

	if !rec.HasURL() {
		log.Info("pipeline: no url provided")
		return result
	}

	candidates, err := CandidateURLs(rec.URL, f.paths)
	if err != nil {
		log.Warn("pipeline: invalid company url", zap.String("url", rec.URL), zap.Error(err))
		result.Error = err.Error()
		return result
	}

	for i, target := range candidates {
		// The first fallback follows the homepage immediately; every later
		// one waits a full delay after the previous fallback finished.
		if i >= 2 {
			if err := politePause(ctx, f.delay); err != nil {
				result.Error = err.Error()
				return result
			}
		}
		if i == 0 {
			log.Info("pipeline: trying homepage", zap.String("url", target))
		} else {
			log.Info("pipeline: trying candidate", zap.String("url", target))
		}
		result.Attempted = append(result.Attempted, target)

		page, err := f.fetcher.Fetch(ctx, target)
		if err != nil {
			log.Debug("pipeline: fetch failed", zap.String("url", target), zap.Error(err))
			if ctx.Err() != nil {
				result.Error = ctx.Err().Error()
				return result
			}
			continue
		}

		founders := f.engine.Extract(page)
		if founders.Len() > 0 {
			result.Founders = founders
			result.SourceURL = target
			log.Info("pipeline: founders found",
				zap.String("url", target),
				zap.Strings("founders", founders.Sorted()),
			)
			return result
		}
	}

	log.Info("pipeline: no founders found", zap.Int("attempted", len(result.Attempted)))
	return result
}

// politePause blocks for d from now, or until ctx is done.
func politePause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	lim := rate.NewLimiter(rate.Every(d), 1)
	lim.Allow()
	return lim.Wait(ctx)
}

// Run searches every company in order and returns the ordered result. A
// panic while processing one company is logged and recorded as an empty
// set; the batch continues. Cancellation stops the batch after the current
// company.
func (f *Finder) Run(ctx context.Context, records []model.CompanyRecord) *model.ExtractionResult {
	out := model.NewExtractionResult()
	for i, rec := range records {
		zap.L().Info(fmt.Sprintf("pipeline: [%d/%d] %s", i+1, len(records), rec.Name),
			zap.String("company", rec.Name),
			zap.String("url", rec.URL),
		)

		result := f.safeFind(ctx, rec)
		out.Append(result)

		if f.recorder != nil {
			if err := f.recorder.RecordResult(ctx, i, result); err != nil {
				zap.L().Warn("pipeline: record result failed",
					zap.String("company", rec.Name),
					zap.Error(err),
				)
			}
		}

		if ctx.Err() != nil {
			zap.L().Warn("pipeline: batch cancelled",
				zap.Int("processed", i+1),
				zap.Int("total", len(records)),
			)
			break
		}
	}
	return out
}

func (f *Finder) safeFind(ctx context.Context, rec model.CompanyRecord) (result *model.CompanyResult) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("pipeline: company processing panicked",
				zap.String("company", rec.Name),
				zap.Any("panic", r),
			)
			result = &model.CompanyResult{
				Company: rec,
				Error:   fmt.Sprintf("panic: %v", r),
			}
		}
	}()
	return f.FindFounders(ctx, rec)
}
