// Package scoring computes the composite 0-99 score and letter rank
// from the indicator bundle of one analysis pass.
package scoring

import (
	"math"

	"tickerlab/internal/analysis"
	"tickerlab/internal/analysis/indicators"
)

// Inputs carries the already-derived quantities the score is built from.
// Optional fields follow the engine's nil semantics.
type Inputs struct {
	Closes  []float64
	Price   float64
	MA20    *float64
	MA60    *float64
	RSI     float64
	RRRatio *float64
}

// Base is the neutral starting score before adjustments.
const Base = 50.0

// Score applies the six additive adjustments to the base score, clamps
// to [0, 99], and rounds to an integer. Components records each factor's
// actual contribution for presentation and debugging.
func Score(in Inputs) (int, analysis.Rank, map[string]float64) {
	score := Base
	components := make(map[string]float64)
	n := len(in.Closes)

	// Short trend: 5-bar return, weighted then clamped.
	var shortTrend float64
	if n >= 6 {
		base := in.Closes[n-6]
		shortTrend = (in.Price - base) / base * 100
	}
	adj := indicators.Clamp(shortTrend*1.5, -15, 15)
	components["short_trend"] = adj
	score += adj

	// Mid trend: 20 vs 60 EMA spread.
	if in.MA20 != nil && in.MA60 != nil {
		midTrend := (*in.MA20 - *in.MA60) / *in.MA60 * 100
		adj = indicators.Clamp(midTrend*0.8, -12, 12)
		components["mid_trend"] = adj
		score += adj
	}

	// RSI bucket.
	adj = rsiAdjustment(in.RSI)
	components["rsi"] = adj
	score += adj

	// Deviation from the 20-day average: reward proximity, punish stretch.
	if in.MA20 != nil {
		dist := (in.Price - *in.MA20) / *in.MA20 * 100
		absDist := math.Abs(dist)
		adj = 0
		if absDist < 2 {
			adj = 4
		} else if absDist > 12 {
			adj = -6
		}
		components["ma20_deviation"] = adj
		score += adj
	}

	// Return volatility over the latest 20 bars (population std-dev, in %).
	if n >= 21 {
		rets := make([]float64, 0, 20)
		for i := n - 20; i < n; i++ {
			rets = append(rets, (in.Closes[i]-in.Closes[i-1])/in.Closes[i-1])
		}
		vol := indicators.StdDev(rets) * 100
		adj = 0
		if vol > 6 {
			adj = -5
		} else if vol > 0 && vol < 2 {
			adj = -2
		}
		components["volatility"] = adj
		score += adj
	}

	// Risk/reward structure.
	if in.RRRatio != nil {
		adj = 0
		if *in.RRRatio >= 2 {
			adj = 10
		} else if *in.RRRatio < 1 {
			adj = -10
		}
		components["risk_reward"] = adj
		score += adj
	}

	final := int(math.Round(indicators.Clamp(score, 0, 99)))
	return final, RankFor(final), components
}

func rsiAdjustment(rsi float64) float64 {
	switch {
	case rsi < 25:
		return 12
	case rsi < 35:
		return 6
	case rsi > 75:
		return -12
	case rsi > 65:
		return -6
	case rsi >= 45 && rsi <= 60:
		return 4
	default:
		return 0
	}
}

// RankFor maps a final score onto its letter rank. Boundaries are
// closed on the lower side: 85 is already an S, 84 still an A.
func RankFor(score int) analysis.Rank {
	switch {
	case score >= 85:
		return analysis.RankS
	case score >= 70:
		return analysis.RankA
	case score >= 55:
		return analysis.RankB
	case score < 35:
		return analysis.RankD
	default:
		return analysis.RankC
	}
}
