// Package position sizes a trade from the last analysis result and the
// user's risk budget.
package position

import (
	"math"

	apperrors "tickerlab/internal/errors"
)

// Request carries the position-sizing inputs. Entry and stop normally
// come from the last analysis; capital and risk percent from the user.
type Request struct {
	EntryPrice  float64
	StopPrice   float64
	Capital     float64
	RiskPercent float64
}

// Sizing is the computed position.
type Sizing struct {
	Shares       int64   `json:"shares"`
	RiskAmount   float64 `json:"riskAmount"`   // capital at risk, capital * riskPct/100
	RiskPerShare float64 `json:"riskPerShare"` // |entry - stop|
}

// Calculate validates the request and computes
// shares = floor(capital * riskPct/100 / |entry - stop|).
// Invalid inputs are rejected at this boundary; no partial computation
// is attempted.
func Calculate(req Request) (*Sizing, error) {
	if !(req.Capital > 0) || math.IsInf(req.Capital, 0) {
		return nil, apperrors.NewValidationError("capital", req.Capital, "must be a positive amount")
	}
	if !(req.RiskPercent > 0) || req.RiskPercent > 100 {
		return nil, apperrors.NewValidationError("risk_percent", req.RiskPercent, "must be in (0, 100]")
	}
	if !(req.EntryPrice > 0) {
		return nil, apperrors.NewValidationError("entry_price", req.EntryPrice, "must be a positive price")
	}
	if !(req.StopPrice > 0) {
		return nil, apperrors.NewValidationError("stop_price", req.StopPrice, "must be a positive price")
	}

	riskPerShare := math.Abs(req.EntryPrice - req.StopPrice)
	if riskPerShare <= 0 {
		return nil, apperrors.NewValidationError("stop_price", req.StopPrice, "entry and stop must differ")
	}

	riskAmount := req.Capital * req.RiskPercent / 100
	shares := int64(math.Floor(riskAmount / riskPerShare))
	if shares <= 0 {
		return nil, apperrors.NewValidationError("risk_percent", req.RiskPercent,
			"stop distance is too wide for this risk budget")
	}

	return &Sizing{
		Shares:       shares,
		RiskAmount:   riskAmount,
		RiskPerShare: riskPerShare,
	}, nil
}
