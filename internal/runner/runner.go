// Package runner orchestrates one analysis pass: resolve bars from the
// cache, the quote source, or the demo fallback, run the engine, and
// attach the signal layer.
package runner

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"tickerlab/internal/analysis"
	"tickerlab/internal/analysis/engine"
	"tickerlab/internal/analysis/signal"
	apperrors "tickerlab/internal/errors"
	"tickerlab/internal/models"
	"tickerlab/internal/quote"
	"tickerlab/internal/store"
)

// Options tunes a single run.
type Options struct {
	// Offline skips the quote source entirely and analyzes demo bars.
	Offline bool
}

// Runner owns the analysis pipeline and the single-slot result of the
// most recent run. Only one analysis may be in flight at a time; a
// second concurrent Run fails fast with ErrAnalysisInFlight.
type Runner struct {
	source   quote.Source
	cache    store.BarCache // nil when caching is disabled
	demo     *quote.DemoGenerator
	fx       *quote.FxCache
	engine   *engine.Engine
	cacheAge time.Duration
	logger   zerolog.Logger

	runMu sync.Mutex // held for the duration of a run

	lastMu sync.RWMutex
	last   *analysis.Report
}

// New assembles a runner. cache may be nil to disable bar caching; fx
// may be nil to skip currency conversion.
func New(source quote.Source, cache store.BarCache, fx *quote.FxCache, eng *engine.Engine, cacheAge time.Duration, logger zerolog.Logger) *Runner {
	return &Runner{
		source:   source,
		cache:    cache,
		demo:     quote.NewDemoGenerator(),
		fx:       fx,
		engine:   eng,
		cacheAge: cacheAge,
		logger:   logger,
	}
}

// Run analyzes one symbol end to end and records the report as the
// runner's last result. Returns ErrAnalysisInFlight if another run
// holds the pipeline.
func (r *Runner) Run(ctx context.Context, symbol string, opts Options) (*analysis.Report, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, apperrors.NewValidationError("symbol", symbol, "symbol must not be empty")
	}

	if !r.runMu.TryLock() {
		return nil, apperrors.ErrAnalysisInFlight
	}
	defer r.runMu.Unlock()

	start := time.Now()
	series := r.resolveSeries(ctx, symbol, opts)

	if err := series.Validate(); err != nil {
		return nil, err
	}

	result := r.engine.Analyze(series)

	report := &analysis.Report{
		Result:   result,
		Flow:     signal.Flow(series, result),
		WhyToday: signal.WhyToday(result),
		Patterns: signal.CandlePatterns(series),
		Labels:   signal.Labels(symbol),
		FxRate:   r.fxRate(ctx),
	}
	report.Scenarios = signal.Scenarios(result, report.Flow)

	r.lastMu.Lock()
	r.last = report
	r.lastMu.Unlock()

	r.logger.Info().
		Str("symbol", symbol).
		Int("bars", series.Len()).
		Int("score", result.Score).
		Str("rank", string(result.Rank)).
		Bool("demo", result.DemoData).
		Dur("elapsed", time.Since(start)).
		Msg("analysis complete")

	return report, nil
}

// Last returns the most recent report, or ErrNoAnalysis when no run has
// completed yet.
func (r *Runner) Last() (*analysis.Report, error) {
	r.lastMu.RLock()
	defer r.lastMu.RUnlock()
	if r.last == nil {
		return nil, apperrors.ErrNoAnalysis
	}
	return r.last, nil
}

// resolveSeries finds bars for the symbol: fresh cache first, then the
// quote source, then synthesized demo bars. Fetch failures degrade to
// the demo fallback instead of aborting the run.
func (r *Runner) resolveSeries(ctx context.Context, symbol string, opts Options) *models.PriceSeries {
	if opts.Offline {
		r.logger.Info().Str("symbol", symbol).Msg("offline run, using demo data")
		return r.demo.Generate(symbol)
	}

	if cached := r.freshCached(ctx, symbol); cached != nil {
		r.logger.Debug().Str("symbol", symbol).Int("bars", cached.Len()).Msg("using cached bars")
		return cached
	}

	series, err := r.source.FetchDaily(ctx, symbol)
	if err == nil {
		if r.cache != nil {
			if cerr := r.cache.SaveSeries(ctx, series); cerr != nil {
				r.logger.Warn().Err(cerr).Str("symbol", symbol).Msg("bar cache write failed")
			}
		}
		return series
	}

	r.logger.Warn().Err(err).Str("symbol", symbol).Msg("quote fetch failed, falling back to demo data")
	return r.demo.Generate(symbol)
}

func (r *Runner) freshCached(ctx context.Context, symbol string) *models.PriceSeries {
	if r.cache == nil {
		return nil
	}

	storedAt, err := r.cache.Freshness(ctx, symbol)
	if err != nil {
		r.logger.Warn().Err(err).Str("symbol", symbol).Msg("bar cache freshness check failed")
		return nil
	}
	if storedAt.IsZero() || time.Since(storedAt) > r.cacheAge {
		return nil
	}

	series, err := r.cache.GetSeries(ctx, symbol)
	if err != nil {
		r.logger.Warn().Err(err).Str("symbol", symbol).Msg("bar cache read failed")
		return nil
	}
	if series == nil || series.Len() < models.MinCleanBars {
		return nil
	}
	return series
}

func (r *Runner) fxRate(ctx context.Context) *float64 {
	if r.fx == nil {
		return nil
	}
	return r.fx.Rate(ctx)
}
