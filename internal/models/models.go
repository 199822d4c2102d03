// Package models provides domain models for the analysis application.
package models

import (
	"fmt"
	"math"
)

// MinCleanBars is the minimum number of clean daily bars a series must
// carry before the analysis pipeline will accept it.
const MinCleanBars = 30

// Bar represents one daily OHLCV bar.
type Bar struct {
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Range returns the full extent of the bar, never less than zero.
func (b Bar) Range() float64 {
	hi := math.Max(math.Max(b.High, b.Low), math.Max(b.Open, b.Close))
	lo := math.Min(math.Min(b.High, b.Low), math.Min(b.Open, b.Close))
	return hi - lo
}

// Body returns the absolute open-to-close distance.
func (b Bar) Body() float64 {
	return math.Abs(b.Close - b.Open)
}

// UpperWick returns the distance from the body top to the high.
func (b Bar) UpperWick() float64 {
	return b.High - math.Max(b.Open, b.Close)
}

// LowerWick returns the distance from the body bottom to the low.
func (b Bar) LowerWick() float64 {
	return math.Min(b.Open, b.Close) - b.Low
}

// IsBullish reports whether the bar closed above its open.
func (b Bar) IsBullish() bool {
	return b.Close > b.Open
}

// IsBearish reports whether the bar closed below its open.
func (b Bar) IsBearish() bool {
	return b.Close < b.Open
}

// PriceSeries is a cleaned, chronological daily OHLCV history for one
// symbol. It is immutable once handed to the analysis engine: the engine
// reads it and never appends, reorders, or rewrites bars.
type PriceSeries struct {
	Symbol string
	// Price is the last/regular-market price, which may differ from the
	// final bar's close while the market is open.
	Price float64
	Bars  []Bar
	// Demo marks a synthesized fallback series.
	Demo bool
}

// Len returns the number of bars in the series.
func (s *PriceSeries) Len() int {
	return len(s.Bars)
}

// LastBar returns the most recent bar. Callers validate non-emptiness first.
func (s *PriceSeries) LastBar() Bar {
	return s.Bars[len(s.Bars)-1]
}

// Closes extracts the close column.
func (s *PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Close
	}
	return out
}

// Opens extracts the open column.
func (s *PriceSeries) Opens() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Open
	}
	return out
}

// Highs extracts the high column.
func (s *PriceSeries) Highs() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.High
	}
	return out
}

// Lows extracts the low column.
func (s *PriceSeries) Lows() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Low
	}
	return out
}

// Volumes extracts the volume column.
func (s *PriceSeries) Volumes() []int64 {
	out := make([]int64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Volume
	}
	return out
}

// Validate checks the boundary invariants: at least MinCleanBars bars,
// all prices positive and finite, volumes non-negative. Malformed series
// are rejected here rather than coalesced downstream.
func (s *PriceSeries) Validate() error {
	if len(s.Bars) < MinCleanBars {
		return fmt.Errorf("series %s: %d clean bars, need at least %d", s.Symbol, len(s.Bars), MinCleanBars)
	}
	if !(s.Price > 0) || math.IsInf(s.Price, 0) {
		return fmt.Errorf("series %s: invalid last price %v", s.Symbol, s.Price)
	}
	for i, b := range s.Bars {
		for _, v := range [4]float64{b.Open, b.High, b.Low, b.Close} {
			if !(v > 0) || math.IsInf(v, 0) {
				return fmt.Errorf("series %s: bar %d has a non-positive price", s.Symbol, i)
			}
		}
		if b.Volume < 0 {
			return fmt.Errorf("series %s: bar %d has negative volume", s.Symbol, i)
		}
	}
	return nil
}

// Quote represents a lightweight market quote for a single symbol.
type Quote struct {
	Symbol    string
	LastPrice float64
	Currency  string
}

// FxRate is home-currency units per USD.
type FxRate struct {
	Symbol string
	Rate   float64
}
