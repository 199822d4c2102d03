// Package signal derives supply/demand labels, why-today narratives,
// scenario eligibility, and candlestick pattern matches from the raw
// bars and the engine's result.
package signal

import (
	"fmt"

	"tickerlab/internal/analysis"
	"tickerlab/internal/models"
)

// rangeFloor avoids division by zero on a completely flat bar.
const rangeFloor = 1e-9

// Flow classification thresholds.
const (
	flowVolumeHigh = 1.3
	flowVolumeLow  = 0.6
	flowBodyLong   = 0.4
	flowBodyShort  = 0.3
)

// Flow classifies the latest bar's supply/demand character from its
// body ratio and the volume ratio. Rules are evaluated in declared
// order; the first match wins.
func Flow(series *models.PriceSeries, res *analysis.Result) analysis.FlowSignal {
	if series.Len() == 0 {
		return analysis.FlowSignal{
			Type:  analysis.FlowNeutral,
			Label: "Insufficient data",
			Note:  "No bars available to judge the candle body and volume.",
		}
	}

	bar := series.LastBar()
	rng := bar.Range()
	if rng < rangeFloor {
		rng = rangeFloor
	}
	bodyRatio := bar.Body() / rng
	vol := res.VolumeRatio

	sig := analysis.FlowSignal{
		Type:      analysis.FlowNeutral,
		Label:     "Balanced flow",
		Note:      "Volume and candle structure are both near average; trend and support/resistance matter more than flow here.",
		BodyRatio: bodyRatio,
	}

	switch {
	case vol != nil && *vol >= flowVolumeHigh && bodyRatio >= flowBodyLong && bar.IsBullish():
		sig.Type = analysis.FlowBuyDominant
		sig.Label = "Buyers dominant"
		sig.Note = fmt.Sprintf("Volume ran about %.1fx the recent average on a long-bodied up candle; likely institutional buying, favoring pullback entries if the trend holds.", *vol)
	case vol != nil && *vol >= flowVolumeHigh && bodyRatio >= flowBodyLong && bar.IsBearish():
		sig.Type = analysis.FlowSellDominant
		sig.Label = "Sellers dominant"
		sig.Note = fmt.Sprintf("Volume ran about %.1fx the recent average on a long-bodied down candle; likely liquidation or stop-outs, with follow-through risk.", *vol)
	case vol != nil && *vol >= flowVolumeHigh && bodyRatio < flowBodyShort:
		sig.Type = analysis.FlowBattle
		sig.Label = "Contested session"
		sig.Note = "Volume is elevated but the body is short with long wicks on both sides; buyers and sellers are fighting it out, so waiting beats entering until direction resolves."
	case vol != nil && *vol <= flowVolumeLow:
		sig.Type = analysis.FlowEmpty
		sig.Label = "Participation vacuum"
		sig.Note = "Volume is well below normal; large players have not taken positions yet and short-term trading efficiency is poor."
	}

	return sig
}
