// Package indicators provides the pure numeric indicator library: EMA,
// Wilder RSI, and the MACD line. Every function returns a scalar for the
// most recent bar plus an ok flag; ok is false when the input is too
// short for the requested period. Nothing here panics or divides by zero.
package indicators

// Default periods used by the analysis engine.
const (
	RSIPeriod      = 14
	MACDFastPeriod = 12
	MACDSlowPeriod = 26
)

// EMA computes the exponential moving average of values at the last
// element. The seed is the simple average of the first period values;
// the recurrence ema = v*k + ema*(1-k) with k = 2/(period+1) is then
// folded over every remaining value. Callers therefore pass the full
// relevant history, not a trailing window.
func EMA(values []float64, period int) (float64, bool) {
	if period <= 0 || len(values) < period {
		return 0, false
	}

	var sum float64
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	ema := sum / float64(period)

	k := 2.0 / float64(period+1)
	for i := period; i < len(values); i++ {
		ema = values[i]*k + ema*(1-k)
	}
	return ema, true
}

// WilderRSI computes the Relative Strength Index with Wilder smoothing.
// The first period differences are averaged by simple mean; subsequent
// differences are folded in via avgGain = (avgGain*(period-1)+gain)/period
// (loss symmetric). A window with no losses yields exactly 100.
func WilderRSI(closes []float64, period int) (float64, bool) {
	if period <= 0 || len(closes) <= period {
		return 0, false
	}

	var gains, losses float64
	for i := 1; i <= period; i++ {
		diff := closes[i] - closes[i-1]
		if diff >= 0 {
			gains += diff
		} else {
			losses -= diff
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	for i := period + 1; i < len(closes); i++ {
		diff := closes[i] - closes[i-1]
		var gain, loss float64
		if diff > 0 {
			gain = diff
		} else if diff < 0 {
			loss = -diff
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100, true
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), true
}

// MACD computes the MACD line, EMA(12) - EMA(26), at the last element.
// Only the line is produced; no signal line or histogram.
func MACD(closes []float64) (float64, bool) {
	if len(closes) < MACDSlowPeriod {
		return 0, false
	}
	fast, okFast := EMA(closes, MACDFastPeriod)
	slow, okSlow := EMA(closes, MACDSlowPeriod)
	if !okFast || !okSlow {
		return 0, false
	}
	return fast - slow, true
}
