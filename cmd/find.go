package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/config"
	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/extract"
	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/model"
	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/pipeline"
	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/scrape"
	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/store"
)

type findOptions struct {
	Input  string
	Output string
	Format string
	Static bool
}

var findOpts findOptions

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Find founders for every company in an input file",
	Long: `Reads one company per line in the form "Name (https://url)" and writes a
JSON mapping of company name to founder names.

Examples:
  founder-finder find
  founder-finder find --input companies.txt --output founders.json
  founder-finder find --static --format csv --output founders.csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts := findOpts
		if opts.Format == "" {
			opts.Format = cfg.Output.Format
		}
		if !cmd.Flags().Changed("output") && opts.Format == pipeline.FormatCSV {
			opts.Output = "founders.csv"
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runFind(ctx, cfg, opts, cmd.ErrOrStderr())
	},
}

func init() {
	findCmd.Flags().StringVar(&findOpts.Input, "input", "companies.txt", "companies file, one \"Name (URL)\" per line")
	findCmd.Flags().StringVar(&findOpts.Output, "output", "founders.json", "results file")
	findCmd.Flags().StringVar(&findOpts.Format, "format", "", "output format: json or csv (default from config)")
	findCmd.Flags().BoolVar(&findOpts.Static, "static", false, "skip the headless browser and fetch pages over plain HTTP")
	rootCmd.AddCommand(findCmd)
}

// runFind executes one batch. Only file-level problems are returned; per
// company failures end up as empty founder sets.
func runFind(ctx context.Context, c *config.Config, opts findOptions, summary io.Writer) error {
	records, err := pipeline.ReadCompaniesFile(opts.Input)
	if err != nil {
		return err
	}
	zap.L().Info("find: parsed companies", zap.Int("companies", len(records)), zap.String("input", opts.Input))

	engine, err := buildEngine(c.Extract)
	if err != nil {
		return err
	}

	runCfg := *c
	if opts.Static {
		runCfg.Browser.Enabled = false
	}
	session := scrape.Negotiate(ctx, &runCfg, nil)
	defer session.Close()

	st, err := openStore(ctx, c.Store)
	if err != nil {
		return eris.Wrap(err, "find: open store")
	}
	if st != nil {
		defer st.Close() //nolint:errcheck
	}

	fetcher := session.Fetcher
	if st != nil && c.Store.CacheTTL() > 0 {
		if n, err := st.DeleteExpiredPages(ctx); err != nil {
			zap.L().Warn("find: prune page cache", zap.Error(err))
		} else if n > 0 {
			zap.L().Debug("find: pruned page cache", zap.Int("pages", n))
		}
		fetcher = scrape.NewCachingFetcher(fetcher, st, c.Store.CacheTTL())
	}

	finder := pipeline.NewFinder(fetcher, engine, c.Strategy)

	var run *model.Run
	if st != nil {
		run, err = st.CreateRun(ctx, opts.Input, session.Mode(), len(records))
		if err != nil {
			return eris.Wrap(err, "find: create run")
		}
		finder.WithRecorder(&runRecorder{store: st, runID: run.ID})
	}

	res := finder.Run(ctx, records)

	// The run must be closed out even when ctx was cancelled mid-batch.
	finishCtx := context.WithoutCancel(ctx)
	if err := pipeline.WriteResultsFile(opts.Output, opts.Format, res); err != nil {
		finishRun(finishCtx, st, run, model.RunStatusFailed, res.FoundCount())
		return err
	}
	status := model.RunStatusComplete
	if ctx.Err() != nil {
		status = model.RunStatusFailed
	}
	finishRun(finishCtx, st, run, status, res.FoundCount())

	zap.L().Info("find: results saved",
		zap.String("output", opts.Output),
		zap.Int("found", res.FoundCount()),
		zap.Int("total", res.Len()),
	)
	fmt.Fprintf(summary, "Results saved to %s\n", opts.Output)
	return pipeline.WriteSummary(summary, res)
}

// buildEngine assembles the extraction engine from config.
func buildEngine(c config.ExtractConfig) (*extract.Engine, error) {
	validator := extract.NewValidator(c.MinNameWords, c.MaxNameWords, c.Denylist)

	lib := extract.DefaultLibrary()
	if c.PatternsFile != "" {
		rules, err := extract.LoadRulesFile(c.PatternsFile)
		if err != nil {
			return nil, err
		}
		lib, err = extract.NewLibrary(rules)
		if err != nil {
			return nil, err
		}
	}
	return extract.NewEngine(validator, lib).WithStructuredData(c.StructuredData), nil
}

func finishRun(ctx context.Context, st store.Store, run *model.Run, status model.RunStatus, found int) {
	if st == nil || run == nil {
		return
	}
	if err := st.FinishRun(ctx, run.ID, status, found); err != nil {
		zap.L().Warn("find: finish run", zap.String("run_id", run.ID), zap.Error(err))
	}
}

// runRecorder appends company results to a stored run.
type runRecorder struct {
	store store.Store
	runID string
}

func (r *runRecorder) RecordResult(ctx context.Context, position int, result *model.CompanyResult) error {
	return r.store.RecordResult(ctx, r.runID, position, result)
}
