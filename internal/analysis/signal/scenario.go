package signal

import (
	"tickerlab/internal/analysis"
)

// scenarioRule is one entry in the ranked rule table. Rules are
// evaluated in declared priority order and every rule contributes a
// scenario regardless of eligibility; callers filter on Eligible.
type scenarioRule struct {
	name      string
	entryHint string
	comment   string
	eligible  func(res *analysis.Result, flow analysis.FlowSignal) bool
}

var scenarioRules = []scenarioRule{
	{
		name:      "Trend/support pullback buy",
		entryHint: "Scale in near the primary support; cut immediately on a close below it.",
		comment:   "A pullback inside an intact trend where the upside to resistance outweighs the stop distance.",
		eligible: func(res *analysis.Result, _ analysis.FlowSignal) bool {
			if res.Support1 == nil || !(res.Price > 0) || res.RRRatio == nil {
				return false
			}
			distPct := (res.Price - *res.Support1) / res.Price * 100
			return distPct <= 5 && res.RSI >= 30 && res.RSI <= 65 && *res.RRRatio >= 1.5
		},
	},
	{
		name:      "Breakout continuation",
		entryHint: "Re-enter on the pullback after the resistance break, or follow a confirmed close above it with small size.",
		comment:   "A breakout attempt carried by dominant buying; wait for the retest or chase lightly once the level is reclaimed.",
		eligible: func(res *analysis.Result, flow analysis.FlowSignal) bool {
			if res.Resistance1 == nil || !(res.Price > 0) {
				return false
			}
			distPct := (*res.Resistance1 - res.Price) / *res.Resistance1 * 100
			return distPct <= 3 && res.RSI >= 55 && flow.Type == analysis.FlowBuyDominant
		},
	},
	{
		name:      "Oversold reversal (high risk)",
		entryHint: "Small, staged entries only in the oversold zone; abandon the idea on a support break.",
		comment:   "A counter-trend bounce attempt inside a weak tape; stop discipline and position size are the whole trade.",
		eligible: func(res *analysis.Result, _ analysis.FlowSignal) bool {
			return res.RSI < 30 && res.Support1 != nil && !(res.Price <= 0) &&
				res.RRRatio != nil && *res.RRRatio >= 1.2
		},
	},
}

// Scenarios evaluates the ranked rule table against one result and flow
// signal. The returned slice preserves declaration order, which is the
// priority order presentations should respect.
func Scenarios(res *analysis.Result, flow analysis.FlowSignal) []analysis.Scenario {
	out := make([]analysis.Scenario, 0, len(scenarioRules))
	for _, rule := range scenarioRules {
		out = append(out, analysis.Scenario{
			Name:      rule.name,
			Eligible:  rule.eligible(res, flow),
			EntryHint: rule.entryHint,
			Comment:   rule.comment,
		})
	}
	return out
}
