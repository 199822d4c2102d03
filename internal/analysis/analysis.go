// Package analysis defines the result types shared by the analysis
// engine and the flow/signal layer. Optional quantities are pointers:
// nil means the input history was too short to derive the value, never
// that a computation failed silently.
package analysis

// Rank is the letter grade derived from the composite score.
type Rank string

const (
	RankS Rank = "S"
	RankA Rank = "A"
	RankB Rank = "B"
	RankC Rank = "C"
	RankD Rank = "D"
)

// Result is the full metrics bundle for one ticker analysis pass.
type Result struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`

	// Exponential moving averages; nil when history is shorter than the period.
	MA5   *float64 `json:"ma5"`
	MA20  *float64 `json:"ma20"`
	MA60  *float64 `json:"ma60"`
	MA120 *float64 `json:"ma120"`

	// RSI defaults to the neutral 50 when indeterminate.
	RSI  float64  `json:"rsi"`
	MACD *float64 `json:"macd"`

	// Composite score in [0, 99] and its letter rank.
	Score int  `json:"score"`
	Rank  Rank `json:"rank"`
	// Components records the per-factor score adjustments.
	Components map[string]float64 `json:"components"`

	Support1    *float64 `json:"support1"`
	Support2    *float64 `json:"support2"`
	Resistance1 *float64 `json:"resistance1"`
	Resistance2 *float64 `json:"resistance2"`

	RiskPct    *float64 `json:"riskPct"`
	RewardPct1 *float64 `json:"rewardPct1"`
	RRRatio    *float64 `json:"rrRatio"`

	Target1 float64 `json:"target1"`
	Target2 float64 `json:"target2"`
	Stop    float64 `json:"stop"`

	DailyChangePct *float64 `json:"dailyChangePct"`
	VolumeRatio    *float64 `json:"volumeRatio"`

	// DemoData marks a result computed from synthesized fallback bars.
	DemoData bool `json:"demoData"`
}

// FlowType classifies the supply/demand character of the latest bar.
type FlowType string

const (
	FlowBuyDominant  FlowType = "BUY_DOMINANT"
	FlowSellDominant FlowType = "SELL_DOMINANT"
	FlowBattle       FlowType = "BATTLE"
	FlowEmpty        FlowType = "EMPTY"
	FlowNeutral      FlowType = "NEUTRAL"
)

// FlowSignal is the supply/demand classification with its narrative.
type FlowSignal struct {
	Type      FlowType `json:"type"`
	Label     string   `json:"label"`
	Note      string   `json:"note"`
	BodyRatio float64  `json:"bodyRatio"`
}

// WhyLabel names the "why today" narrative driver.
type WhyLabel string

const (
	WhyStrongCatalyst WhyLabel = "STRONG_CATALYST"
	WhyBadNews        WhyLabel = "BAD_NEWS_LIQUIDATION"
	WhyWaiting        WhyLabel = "WAITING_SESSION"
	WhyOrdinary       WhyLabel = "ORDINARY_SESSION"
)

// WhyTodaySignal explains the day's move from change and volume alone.
type WhyTodaySignal struct {
	Label WhyLabel `json:"label"`
	Note  string   `json:"note"`
}

// Scenario is one rule-based trading setup. Eligible records whether its
// condition held; the hint and comment are attached regardless so the
// presentation layer can show near-miss setups.
type Scenario struct {
	Name      string `json:"name"`
	Eligible  bool   `json:"eligible"`
	EntryHint string `json:"entryHint"`
	Comment   string `json:"comment"`
}

// PatternDirection is the expected direction of a candlestick pattern.
type PatternDirection string

const (
	PatternBullish PatternDirection = "bullish"
	PatternBearish PatternDirection = "bearish"
	PatternNeutral PatternDirection = "neutral"
)

// CandlePattern is one matched candlestick pattern. Strength ranks
// pattern significance: Doji 1, Hammer/Shooting Star 2,
// Engulfing/Marubozu 3, Three Soldiers/Crows 4.
type CandlePattern struct {
	Name      string           `json:"name"`
	Direction PatternDirection `json:"direction"`
	Strength  int              `json:"strength"`
	Comment   string           `json:"comment"`
}

// Report bundles everything one run produces for presentation.
type Report struct {
	Result    *Result         `json:"result"`
	Flow      FlowSignal      `json:"flow"`
	WhyToday  WhyTodaySignal  `json:"whyToday"`
	Scenarios []Scenario      `json:"scenarios"`
	Patterns  []CandlePattern `json:"patterns"`
	Labels    []string        `json:"labels"`
	// FxRate is home-currency units per USD; nil when unknown.
	FxRate *float64 `json:"fxRate"`
}
