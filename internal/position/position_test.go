package position

import (
	"testing"

	apperrors "tickerlab/internal/errors"
)

func TestCalculateFloorsShares(t *testing.T) {
	// 10_000 * 1% = 100 at risk, 3.33 per share -> 30 shares.
	sizing, err := Calculate(Request{
		EntryPrice:  100,
		StopPrice:   96.67,
		Capital:     10_000,
		RiskPercent: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sizing.Shares != 30 {
		t.Errorf("shares = %d, want 30", sizing.Shares)
	}
	if sizing.RiskAmount != 100 {
		t.Errorf("risk amount = %f, want 100", sizing.RiskAmount)
	}
}

func TestCalculateStopAboveEntry(t *testing.T) {
	// Direction does not matter; only the distance does.
	sizing, err := Calculate(Request{
		EntryPrice:  100,
		StopPrice:   105,
		Capital:     10_000,
		RiskPercent: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sizing.Shares != 100 {
		t.Errorf("shares = %d, want 100", sizing.Shares)
	}
	if sizing.RiskPerShare != 5 {
		t.Errorf("risk per share = %f, want 5", sizing.RiskPerShare)
	}
}

func TestCalculateValidation(t *testing.T) {
	base := Request{EntryPrice: 100, StopPrice: 95, Capital: 10_000, RiskPercent: 1}

	cases := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero capital", func(r *Request) { r.Capital = 0 }},
		{"negative capital", func(r *Request) { r.Capital = -5 }},
		{"zero risk", func(r *Request) { r.RiskPercent = 0 }},
		{"risk above 100", func(r *Request) { r.RiskPercent = 101 }},
		{"zero entry", func(r *Request) { r.EntryPrice = 0 }},
		{"zero stop", func(r *Request) { r.StopPrice = 0 }},
		{"stop equals entry", func(r *Request) { r.StopPrice = r.EntryPrice }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			tc.mutate(&req)
			_, err := Calculate(req)
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !apperrors.Is(err, apperrors.ErrInputValidation) {
				t.Errorf("error %v does not unwrap to input validation", err)
			}
		})
	}
}

func TestCalculateStopTooWideForBudget(t *testing.T) {
	// 1_000 * 0.1% = 1 at risk with a 50-point stop: zero shares fit.
	_, err := Calculate(Request{
		EntryPrice:  100,
		StopPrice:   50,
		Capital:     1_000,
		RiskPercent: 0.1,
	})
	if err == nil {
		t.Fatal("expected an error when no shares fit the budget")
	}
	if !apperrors.Is(err, apperrors.ErrInputValidation) {
		t.Errorf("error %v does not unwrap to input validation", err)
	}
}
