package cli

import (
	"fmt"

	"tickerlab/internal/analysis"
	"tickerlab/pkg/utils"
)

// formatOptional renders an optional quantity, showing a dash when the
// history could not support it.
func formatOptional(v *float64, format string) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf(format, *v)
}

// formatPriceOpt renders an optional price.
func formatPriceOpt(v *float64) string {
	if v == nil {
		return "—"
	}
	return utils.FormatPrice(*v)
}

// formatHomeCurrency renders a dollar price converted at the session FX
// rate, or just the dollar price when the rate is unknown.
func formatHomeCurrency(usd float64, fxRate *float64) string {
	if fxRate == nil {
		return utils.FormatUSD(usd)
	}
	home := usd * *fxRate
	return fmt.Sprintf("%s (≈%s)", utils.FormatUSD(usd), utils.GroupThousands(fmt.Sprintf("%.0f", home)))
}

// rankText colors the letter rank by tier.
func rankText(o *Output, rank analysis.Rank) string {
	label := fmt.Sprintf("%s rank", rank)
	switch rank {
	case analysis.RankS, analysis.RankA:
		return o.Green(label)
	case analysis.RankB:
		return o.Yellow(label)
	default:
		return o.Red(label)
	}
}

// flowText colors the flow label by its directional bias.
func flowText(o *Output, flow analysis.FlowSignal) string {
	switch flow.Type {
	case analysis.FlowBuyDominant:
		return o.Green(flow.Label)
	case analysis.FlowSellDominant:
		return o.Red(flow.Label)
	case analysis.FlowBattle:
		return o.Yellow(flow.Label)
	case analysis.FlowEmpty:
		return o.DimText(flow.Label)
	default:
		return flow.Label
	}
}

// patternText colors a candlestick pattern name by direction.
func patternText(o *Output, p analysis.CandlePattern) string {
	switch p.Direction {
	case analysis.PatternBullish:
		return o.Green(p.Name)
	case analysis.PatternBearish:
		return o.Red(p.Name)
	default:
		return o.Yellow(p.Name)
	}
}
