package models

import (
	"math"
	"testing"
)

func TestBarGeometry(t *testing.T) {
	b := Bar{Open: 100, High: 106, Low: 98, Close: 104, Volume: 1000}

	if b.Range() != 8 {
		t.Errorf("range = %f, want 8", b.Range())
	}
	if b.Body() != 4 {
		t.Errorf("body = %f, want 4", b.Body())
	}
	if b.UpperWick() != 2 {
		t.Errorf("upper wick = %f, want 2", b.UpperWick())
	}
	if b.LowerWick() != 2 {
		t.Errorf("lower wick = %f, want 2", b.LowerWick())
	}
	if !b.IsBullish() || b.IsBearish() {
		t.Error("bar should read bullish")
	}
}

func TestBarRangeToleratesBadHighLow(t *testing.T) {
	// A malformed feed row with high/low inside the body still yields a
	// non-negative range spanning the true extremes.
	b := Bar{Open: 100, High: 99, Low: 101, Close: 105}
	if b.Range() != 6 {
		t.Errorf("range = %f, want 6", b.Range())
	}
}

func TestFlatBarIsNeitherBullishNorBearish(t *testing.T) {
	b := Bar{Open: 100, High: 100, Low: 100, Close: 100}
	if b.IsBullish() || b.IsBearish() {
		t.Error("flat bar misclassified")
	}
}

func validSeries(n int) *PriceSeries {
	s := &PriceSeries{Symbol: "TEST", Price: 100}
	for i := 0; i < n; i++ {
		s.Bars = append(s.Bars, Bar{Open: 100, High: 101, Low: 99, Close: 100, Volume: 10})
	}
	return s
}

func TestValidate(t *testing.T) {
	if err := validSeries(MinCleanBars).Validate(); err != nil {
		t.Errorf("minimal valid series rejected: %v", err)
	}
	if err := validSeries(MinCleanBars - 1).Validate(); err == nil {
		t.Error("thin series accepted")
	}

	s := validSeries(MinCleanBars)
	s.Price = 0
	if err := s.Validate(); err == nil {
		t.Error("zero price accepted")
	}

	s = validSeries(MinCleanBars)
	s.Bars[4].Low = -1
	if err := s.Validate(); err == nil {
		t.Error("negative price accepted")
	}

	s = validSeries(MinCleanBars)
	s.Bars[4].Close = math.Inf(1)
	if err := s.Validate(); err == nil {
		t.Error("infinite price accepted")
	}

	s = validSeries(MinCleanBars)
	s.Bars[4].Volume = -5
	if err := s.Validate(); err == nil {
		t.Error("negative volume accepted")
	}
}

func TestColumnExtraction(t *testing.T) {
	s := &PriceSeries{Bars: []Bar{
		{Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 10},
		{Open: 1.5, High: 3, Low: 1, Close: 2.5, Volume: 20},
	}}

	if got := s.Closes(); got[0] != 1.5 || got[1] != 2.5 {
		t.Errorf("closes = %v", got)
	}
	if got := s.Highs(); got[1] != 3 {
		t.Errorf("highs = %v", got)
	}
	if got := s.Volumes(); got[0] != 10 || got[1] != 20 {
		t.Errorf("volumes = %v", got)
	}
	if s.Len() != 2 || s.LastBar().Close != 2.5 {
		t.Error("len/last bar mismatch")
	}
}
