// Package engine orchestrates the indicator library and support/
// resistance selection into the full metrics bundle for one ticker.
package engine

import (
	"tickerlab/internal/analysis"
	"tickerlab/internal/analysis/indicators"
	"tickerlab/internal/analysis/levels"
	"tickerlab/internal/analysis/scoring"
	"tickerlab/internal/models"
)

const (
	// minSwingBars is the bar count below which swing detection is
	// skipped entirely and all S/R fields stay nil.
	minSwingBars = 10
	// fallbackLookback bounds the trailing min/max scan used when no
	// cluster-derived level exists.
	fallbackLookback = 60
	// maxRiskPct caps the implied risk of the stop base; a more distant
	// swing low is clamped to exactly this far below price.
	maxRiskPct = 25.0
	// stopBuffer places the final stop 1% under the stop base.
	stopBuffer = 0.99
)

// Engine runs the analysis pipeline. The zero value is not usable;
// construct with New.
type Engine struct {
	swingWindow int
}

// New creates an Engine with the default trailing swing window.
func New() *Engine {
	return &Engine{swingWindow: levels.SwingWindow}
}

// NewWithSwingWindow creates an Engine scanning the given trailing
// window for swing points.
func NewWithSwingWindow(window int) *Engine {
	if window < 3 {
		window = levels.SwingWindow
	}
	return &Engine{swingWindow: window}
}

// Analyze derives the complete metrics bundle from a cleaned series.
// Every quantity the history cannot support degrades to nil or a
// neutral default; the result record is always complete and the pass is
// deterministic for identical input.
func (e *Engine) Analyze(series *models.PriceSeries) *analysis.Result {
	closes := series.Closes()
	highs := series.Highs()
	lows := series.Lows()
	volumes := series.Volumes()
	n := len(closes)

	price := series.Price
	if !(price > 0) && n > 0 {
		price = closes[n-1]
	}

	res := &analysis.Result{
		Symbol:   series.Symbol,
		Price:    price,
		DemoData: series.Demo,
	}

	res.MA5 = emaPtr(closes, 5)
	res.MA20 = emaPtr(closes, 20)
	res.MA60 = emaPtr(closes, 60)
	res.MA120 = emaPtr(closes, 120)

	res.RSI = 50
	if rsi, ok := indicators.WilderRSI(closes, indicators.RSIPeriod); ok {
		res.RSI = rsi
	}
	if macd, ok := indicators.MACD(closes); ok {
		res.MACD = &macd
	}

	if n >= minSwingBars {
		swingHighs, swingLows := levels.DetectSwings(highs, lows, e.swingWindow)

		supports := levels.Select(levels.ClusterSwings(swingLows, n), price, true)
		resistances := levels.Select(levels.ClusterSwings(swingHighs, n), price, false)

		if len(supports) > 0 {
			res.Support1 = fptr(supports[0].Price)
		}
		if len(supports) > 1 {
			res.Support2 = fptr(supports[1].Price)
		}
		if len(resistances) > 0 {
			res.Resistance1 = fptr(resistances[0].Price)
		}
		if len(resistances) > 1 {
			res.Resistance2 = fptr(resistances[1].Price)
		}

		if res.Support1 == nil {
			if low, ok := levels.FallbackSupport(lows, price, fallbackLookback); ok {
				res.Support1 = fptr(low)
			}
		}
		if res.Resistance1 == nil {
			if high, ok := levels.FallbackResistance(highs, price, fallbackLookback); ok {
				res.Resistance1 = fptr(high)
			}
		}
	}

	if res.Support1 != nil && *res.Support1 < price {
		res.RiskPct = fptr((price - *res.Support1) / price * 100)
	}
	if res.Resistance1 != nil && *res.Resistance1 > price {
		res.RewardPct1 = fptr((*res.Resistance1 - price) / price * 100)
	}
	if res.RiskPct != nil && res.RewardPct1 != nil && *res.RiskPct > 0 {
		res.RRRatio = fptr(*res.RewardPct1 / *res.RiskPct)
	}

	// Stop derivation with the distant-swing-low guardrail.
	stopBase := price * 0.95
	if res.Support1 != nil {
		stopBase = *res.Support1
	}
	impliedRisk := (price - stopBase) / price * 100
	if impliedRisk > maxRiskPct {
		stopBase = price * (1 - maxRiskPct/100)
		impliedRisk = (price - stopBase) / price * 100
		res.RiskPct = fptr(impliedRisk)
	}
	res.Stop = stopBase * stopBuffer

	if res.Resistance1 != nil {
		res.Target1 = *res.Resistance1 * 0.995
		if res.Resistance2 != nil {
			res.Target2 = *res.Resistance2 * 0.99
		} else {
			res.Target2 = *res.Resistance1 * 1.05
		}
	} else {
		res.Target1 = price * 1.05
		res.Target2 = price * 1.15
	}

	if n >= 2 {
		prev := closes[n-2]
		if prev > 0 {
			res.DailyChangePct = fptr((price - prev) / prev * 100)
		}
	}

	if len(volumes) >= 21 {
		today := float64(volumes[len(volumes)-1])
		window := volumes[len(volumes)-21 : len(volumes)-1]
		var sum float64
		for _, v := range window {
			sum += float64(v)
		}
		avg := sum / float64(len(window))
		if avg > 0 {
			res.VolumeRatio = fptr(today / avg)
		}
	}

	res.Score, res.Rank, res.Components = scoring.Score(scoring.Inputs{
		Closes:  closes,
		Price:   price,
		MA20:    res.MA20,
		MA60:    res.MA60,
		RSI:     res.RSI,
		RRRatio: res.RRRatio,
	})

	return res
}

func emaPtr(values []float64, period int) *float64 {
	if v, ok := indicators.EMA(values, period); ok {
		return &v
	}
	return nil
}

func fptr(v float64) *float64 {
	return &v
}
