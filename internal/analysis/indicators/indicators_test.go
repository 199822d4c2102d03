package indicators

import (
	"math"
	"testing"
)

func TestEMAInsufficientData(t *testing.T) {
	cases := []struct {
		name   string
		values []float64
		period int
	}{
		{"empty", nil, 5},
		{"shorter than period", []float64{1, 2, 3}, 5},
		{"zero period", []float64{1, 2, 3}, 0},
		{"negative period", []float64{1, 2, 3}, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := EMA(tc.values, tc.period); ok {
				t.Errorf("EMA(%v, %d) reported ok, want insufficient data", tc.values, tc.period)
			}
		})
	}
}

func TestEMAExactLengthIsSimpleAverage(t *testing.T) {
	values := []float64{10, 20, 30}
	ema, ok := EMA(values, 3)
	if !ok {
		t.Fatal("EMA reported insufficient data")
	}
	if ema != 20 {
		t.Errorf("EMA = %f, want 20 (simple average seed with nothing folded)", ema)
	}
}

func TestEMARecurrence(t *testing.T) {
	// Seed (1+2+3)/3 = 2, k = 0.5: fold 4 -> 3, fold 5 -> 4.
	values := []float64{1, 2, 3, 4, 5}
	ema, ok := EMA(values, 3)
	if !ok {
		t.Fatal("EMA reported insufficient data")
	}
	if math.Abs(ema-4) > 1e-12 {
		t.Errorf("EMA = %f, want 4", ema)
	}
}

func TestWilderRSIInsufficientData(t *testing.T) {
	closes := make([]float64, RSIPeriod) // needs period+1
	if _, ok := WilderRSI(closes, RSIPeriod); ok {
		t.Error("RSI reported ok with exactly period closes, want insufficient data")
	}
}

func TestWilderRSIAllGains(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	rsi, ok := WilderRSI(closes, RSIPeriod)
	if !ok {
		t.Fatal("RSI reported insufficient data")
	}
	if rsi != 100 {
		t.Errorf("RSI = %f, want exactly 100 for a loss-free window", rsi)
	}
}

func TestWilderRSIAllLosses(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 - float64(i)
	}
	rsi, ok := WilderRSI(closes, RSIPeriod)
	if !ok {
		t.Fatal("RSI reported insufficient data")
	}
	if math.Abs(rsi) > 1e-9 {
		t.Errorf("RSI = %f, want 0 for a gain-free window", rsi)
	}
}

func TestWilderRSIFlatSeriesCountsAsGain(t *testing.T) {
	// Zero differences land on the gain side in the seed window, so a
	// flat series has avgLoss == 0 and reads 100.
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 50
	}
	rsi, ok := WilderRSI(closes, RSIPeriod)
	if !ok {
		t.Fatal("RSI reported insufficient data")
	}
	if rsi != 100 {
		t.Errorf("RSI = %f, want 100 for a flat series", rsi)
	}
}

func TestMACDInsufficientData(t *testing.T) {
	closes := make([]float64, MACDSlowPeriod-1)
	if _, ok := MACD(closes); ok {
		t.Error("MACD reported ok below the slow period, want insufficient data")
	}
}

func TestMACDConstantSeriesIsZero(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 250
	}
	macd, ok := MACD(closes)
	if !ok {
		t.Fatal("MACD reported insufficient data")
	}
	if math.Abs(macd) > 1e-9 {
		t.Errorf("MACD = %f, want 0 on a constant series", macd)
	}
}

func TestMACDUptrendPositive(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 * math.Pow(1.01, float64(i))
	}
	macd, ok := MACD(closes)
	if !ok {
		t.Fatal("MACD reported insufficient data")
	}
	if macd <= 0 {
		t.Errorf("MACD = %f, want positive in a steady uptrend", macd)
	}
}
