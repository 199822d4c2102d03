package signal

import (
	"sort"

	"tickerlab/internal/analysis"
	"tickerlab/internal/models"
)

// Pattern strength grades.
const (
	strengthDoji     = 1
	strengthWick     = 2 // hammer, shooting star
	strengthEngulf   = 3 // engulfing, marubozu
	strengthSoldiers = 4 // three white soldiers, three black crows
)

// CandlePatterns inspects the last three bars and returns every matched
// candlestick pattern, sorted by strength descending. Multiple patterns
// may co-occur; fewer than three bars yields no matches.
func CandlePatterns(series *models.PriceSeries) []analysis.CandlePattern {
	n := series.Len()
	if n < 3 {
		return nil
	}

	cur := series.Bars[n-1]
	prev := series.Bars[n-2]
	prev2 := series.Bars[n-3]

	rng := cur.Range()
	if rng < rangeFloor {
		rng = rangeFloor
	}
	body := cur.Body()
	bodyRatio := body / rng
	upperWick := cur.UpperWick()
	lowerWick := cur.LowerWick()

	prevRange := prev.Range()
	if prevRange < rangeFloor {
		prevRange = rangeFloor
	}
	prevBodyRatio := prev.Body() / prevRange

	prev2Range := prev2.Range()
	if prev2Range < rangeFloor {
		prev2Range = rangeFloor
	}
	prev2BodyRatio := prev2.Body() / prev2Range

	var patterns []analysis.CandlePattern

	// Engulfing: a long body in the opposite direction swallowing a
	// meaningful prior body.
	if cur.IsBullish() && prev.IsBearish() &&
		cur.Open < prev.Close && cur.Close > prev.Open &&
		bodyRatio > 0.4 && prevBodyRatio > 0.2 {
		patterns = append(patterns, analysis.CandlePattern{
			Name:      "Bullish Engulfing",
			Direction: analysis.PatternBullish,
			Strength:  strengthEngulf,
			Comment:   "A strong up candle fully swallowed the prior down candle; short-term reversal odds are elevated.",
		})
	}
	if cur.IsBearish() && prev.IsBullish() &&
		cur.Open > prev.Close && cur.Close < prev.Open &&
		bodyRatio > 0.4 && prevBodyRatio > 0.2 {
		patterns = append(patterns, analysis.CandlePattern{
			Name:      "Bearish Engulfing",
			Direction: analysis.PatternBearish,
			Strength:  strengthEngulf,
			Comment:   "A strong down candle fully reversed the prior up candle; short-term exhaustion or a pullback is likely.",
		})
	}

	if bodyRatio < 0.4 && lowerWick > body*2 && upperWick < body*0.5 && cur.IsBullish() {
		patterns = append(patterns, analysis.CandlePattern{
			Name:      "Hammer",
			Direction: analysis.PatternBullish,
			Strength:  strengthWick,
			Comment:   "Buyers defended the lows hard, leaving a long lower wick; near support this favors a technical bounce.",
		})
	}
	if bodyRatio < 0.4 && upperWick > body*2 && lowerWick < body*0.5 && cur.IsBearish() {
		patterns = append(patterns, analysis.CandlePattern{
			Name:      "Shooting Star",
			Direction: analysis.PatternBearish,
			Strength:  strengthWick,
			Comment:   "Sellers rejected the highs, leaving a long upper wick; near resistance this hints at a short-term top.",
		})
	}

	if bodyRatio < 0.1 {
		patterns = append(patterns, analysis.CandlePattern{
			Name:      "Doji",
			Direction: analysis.PatternNeutral,
			Strength:  strengthDoji,
			Comment:   "Open and close nearly match; buyers and sellers are balanced and the next bar's direction matters most.",
		})
	}

	// Three-in-a-row patterns: staircase closes and opens with solid bodies.
	strongBull := cur.IsBullish() && bodyRatio > 0.5 &&
		cur.Close > (cur.High+cur.Low)/2 &&
		cur.Close > prev.Close && prev.Close > prev2.Close
	if strongBull && prev.IsBullish() && prev2.IsBullish() &&
		prevBodyRatio > 0.3 && prev2BodyRatio > 0.3 &&
		prev.Open >= prev2.Open && cur.Open >= prev.Open {
		patterns = append(patterns, analysis.CandlePattern{
			Name:      "Three White Soldiers",
			Direction: analysis.PatternBullish,
			Strength:  strengthSoldiers,
			Comment:   "Three consecutive strong up candles stepping higher; a powerful continuation or reversal-confirmation pattern.",
		})
	}

	strongBear := cur.IsBearish() && bodyRatio > 0.5 &&
		cur.Close < (cur.High+cur.Low)/2 &&
		cur.Close < prev.Close && prev.Close < prev2.Close
	if strongBear && prev.IsBearish() && prev2.IsBearish() &&
		prevBodyRatio > 0.3 && prev2BodyRatio > 0.3 &&
		prev.Open <= prev2.Open && cur.Open <= prev.Open {
		patterns = append(patterns, analysis.CandlePattern{
			Name:      "Three Black Crows",
			Direction: analysis.PatternBearish,
			Strength:  strengthSoldiers,
			Comment:   "Three consecutive strong down candles stepping lower; holders should manage risk, new entries should stand aside.",
		})
	}

	if cur.IsBullish() && bodyRatio > 0.8 && upperWick < body*0.1 && lowerWick < body*0.1 {
		patterns = append(patterns, analysis.CandlePattern{
			Name:      "Bullish Marubozu",
			Direction: analysis.PatternBullish,
			Strength:  strengthEngulf,
			Comment:   "A near-wickless full-body up candle; buyers controlled the whole session, though a gap-down next day is the risk.",
		})
	}
	if cur.IsBearish() && bodyRatio > 0.8 && upperWick < body*0.1 && lowerWick < body*0.1 {
		patterns = append(patterns, analysis.CandlePattern{
			Name:      "Bearish Marubozu",
			Direction: analysis.PatternBearish,
			Strength:  strengthEngulf,
			Comment:   "A near-wickless full-body down candle; sellers controlled the whole session and bounces may get sold again.",
		})
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Strength > patterns[j].Strength
	})
	return patterns
}
