package quote

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// FxCache resolves the home-currency-per-USD rate once per session and
// serves the cached value afterwards. A failed fetch is not cached, so
// the next call retries; until then the rate stays unknown and prices
// are presented in the source currency only.
type FxCache struct {
	source Source
	symbol string
	logger zerolog.Logger

	mu   sync.Mutex
	rate *float64
}

// NewFxCache creates an FX cache for the given currency pair symbol.
func NewFxCache(source Source, symbol string, logger zerolog.Logger) *FxCache {
	return &FxCache{source: source, symbol: symbol, logger: logger}
}

// Rate returns the session FX rate, fetching it on first use. Nil means
// unknown.
func (f *FxCache) Rate(ctx context.Context) *float64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.rate != nil {
		return f.rate
	}

	rate, err := f.source.FetchLast(ctx, f.symbol)
	if err != nil || !(rate > 0) {
		f.logger.Warn().Err(err).Str("symbol", f.symbol).Msg("fx fetch failed; prices shown in source currency")
		return nil
	}
	f.rate = &rate
	return f.rate
}
