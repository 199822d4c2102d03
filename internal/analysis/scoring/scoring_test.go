package scoring

import (
	"testing"

	"tickerlab/internal/analysis"
)

func fptr(v float64) *float64 { return &v }

// flatCloses builds a constant series so that every trend and
// volatility adjustment is zero.
func flatCloses(n int, v float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = v
	}
	return closes
}

func TestScoreNeutralBaseline(t *testing.T) {
	// Flat series, RSI in the dead zone, no MAs, no RR: every
	// component contributes nothing except the RSI dead-zone zero.
	score, rank, components := Score(Inputs{
		Closes: flatCloses(30, 100),
		Price:  100,
		RSI:    40,
	})

	// Flat series: short trend 0, volatility 0 (not in (0,2), so no
	// penalty), leaving exactly the base.
	if score != 50 {
		t.Errorf("score = %d, want 50", score)
	}
	if rank != analysis.RankC {
		t.Errorf("rank = %s, want C", rank)
	}
	if components["short_trend"] != 0 {
		t.Errorf("short_trend = %f, want 0", components["short_trend"])
	}
	if components["volatility"] != 0 {
		t.Errorf("volatility = %f, want 0", components["volatility"])
	}
	if _, present := components["mid_trend"]; present {
		t.Error("mid_trend recorded without both MAs")
	}
	if _, present := components["risk_reward"]; present {
		t.Error("risk_reward recorded without an RR ratio")
	}
}

func TestRSIBuckets(t *testing.T) {
	cases := []struct {
		rsi  float64
		want float64
	}{
		{20, 12},
		{24.9, 12},
		{25, 6},
		{30, 6},
		{34.9, 6},
		{35, 0},
		{44.9, 0},
		{45, 4},
		{60, 4},
		{60.1, 0},
		{65, 0},
		{65.1, -6},
		{75, -6},
		{75.1, -12},
		{90, -12},
	}
	for _, tc := range cases {
		_, _, components := Score(Inputs{
			Closes: flatCloses(30, 100),
			Price:  100,
			RSI:    tc.rsi,
		})
		if got := components["rsi"]; got != tc.want {
			t.Errorf("rsi %.1f: adjustment = %f, want %f", tc.rsi, got, tc.want)
		}
	}
}

func TestShortTrendClamp(t *testing.T) {
	// 5-bar return of +50% would contribute +75 unclamped; it must cap
	// at +15.
	closes := flatCloses(30, 100)
	closes[len(closes)-1] = 150
	_, _, components := Score(Inputs{
		Closes: closes,
		Price:  150,
		RSI:    40,
	})
	if components["short_trend"] != 15 {
		t.Errorf("short_trend = %f, want clamp at 15", components["short_trend"])
	}
}

func TestMidTrendClamp(t *testing.T) {
	_, _, components := Score(Inputs{
		Closes: flatCloses(30, 100),
		Price:  100,
		MA20:   fptr(200),
		MA60:   fptr(100),
		RSI:    40,
	})
	if components["mid_trend"] != 12 {
		t.Errorf("mid_trend = %f, want clamp at 12", components["mid_trend"])
	}
}

func TestMA20DeviationBuckets(t *testing.T) {
	cases := []struct {
		name  string
		price float64
		want  float64
	}{
		{"tight to the average", 101, 4},
		{"moderate stretch", 105, 0},
		{"overstretched", 115, -6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, components := Score(Inputs{
				Closes: flatCloses(30, tc.price),
				Price:  tc.price,
				MA20:   fptr(100),
				MA60:   fptr(100),
				RSI:    40,
			})
			if got := components["ma20_deviation"]; got != tc.want {
				t.Errorf("price %.0f: ma20_deviation = %f, want %f", tc.price, got, tc.want)
			}
		})
	}
}

func TestRiskRewardBuckets(t *testing.T) {
	cases := []struct {
		rr   float64
		want float64
	}{
		{2.5, 10},
		{2.0, 10},
		{1.5, 0},
		{1.0, 0},
		{0.99, -10},
	}
	for _, tc := range cases {
		_, _, components := Score(Inputs{
			Closes:  flatCloses(30, 100),
			Price:   100,
			RSI:     40,
			RRRatio: fptr(tc.rr),
		})
		if got := components["risk_reward"]; got != tc.want {
			t.Errorf("rr %.2f: adjustment = %f, want %f", tc.rr, got, tc.want)
		}
	}
}

func TestVolatilityPenalty(t *testing.T) {
	// Alternate +-10% daily moves: population std-dev near 10%, well
	// past the choppiness threshold.
	closes := make([]float64, 30)
	closes[0] = 100
	for i := 1; i < len(closes); i++ {
		if i%2 == 0 {
			closes[i] = closes[i-1] * 0.9
		} else {
			closes[i] = closes[i-1] * 1.1
		}
	}
	_, _, components := Score(Inputs{
		Closes: closes,
		Price:  closes[len(closes)-1],
		RSI:    40,
	})
	if components["volatility"] != -5 {
		t.Errorf("volatility = %f, want -5 for violent swings", components["volatility"])
	}
}

func TestLowVolatilityPenalty(t *testing.T) {
	// Gentle alternating +-0.5% moves: std-dev in (0, 2), the drift
	// penalty.
	closes := make([]float64, 30)
	closes[0] = 100
	for i := 1; i < len(closes); i++ {
		if i%2 == 0 {
			closes[i] = closes[i-1] * 0.995
		} else {
			closes[i] = closes[i-1] * 1.005
		}
	}
	_, _, components := Score(Inputs{
		Closes: closes,
		Price:  closes[len(closes)-1],
		RSI:    40,
	})
	if components["volatility"] != -2 {
		t.Errorf("volatility = %f, want -2 for a drifting tape", components["volatility"])
	}
}

func TestRankBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  analysis.Rank
	}{
		{99, analysis.RankS},
		{85, analysis.RankS},
		{84, analysis.RankA},
		{70, analysis.RankA},
		{69, analysis.RankB},
		{55, analysis.RankB},
		{54, analysis.RankC},
		{35, analysis.RankC},
		{34, analysis.RankD},
		{0, analysis.RankD},
	}
	for _, tc := range cases {
		if got := RankFor(tc.score); got != tc.want {
			t.Errorf("RankFor(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}
