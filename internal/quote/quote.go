// Package quote retrieves daily OHLCV history and scalar quotes from an
// external chart API, with a synthetic demo generator as the fallback
// when the source is unavailable.
package quote

import (
	"context"

	"tickerlab/internal/models"
)

// Source supplies price history and last prices for symbols.
type Source interface {
	// FetchDaily returns the cleaned daily series for a symbol. Fewer
	// than models.MinCleanBars clean bars is a hard failure.
	FetchDaily(ctx context.Context, symbol string) (*models.PriceSeries, error)

	// FetchLast returns only the most recent price for a symbol, used
	// for FX pairs and macro gauges.
	FetchLast(ctx context.Context, symbol string) (float64, error)
}
