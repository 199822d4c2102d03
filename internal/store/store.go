// Package store provides the local bar cache. Only raw OHLCV history is
// cached; analysis results are never persisted.
package store

import (
	"context"
	"time"

	"tickerlab/internal/models"
)

// BarCache persists fetched daily series so repeated analyses within
// the freshness window skip the network round trip.
type BarCache interface {
	// SaveSeries replaces the cached bars for a symbol.
	SaveSeries(ctx context.Context, series *models.PriceSeries) error

	// GetSeries returns the cached series for a symbol, or nil when the
	// cache has no entry.
	GetSeries(ctx context.Context, symbol string) (*models.PriceSeries, error)

	// Freshness returns when the symbol's bars were last stored; the
	// zero time means never.
	Freshness(ctx context.Context, symbol string) (time.Time, error)

	// Close releases the underlying resources.
	Close() error
}
