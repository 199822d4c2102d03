package signal

import (
	"fmt"
	"math"

	"tickerlab/internal/analysis"
)

// Why-today thresholds on daily change percent and volume ratio.
const (
	whyStrongChange = 3.0
	whyStrongVolume = 1.5
	whyQuietChange  = 1.0
	whyQuietVolume  = 0.7
)

// WhyToday infers the day's narrative driver from the daily change and
// volume ratio alone. Both inputs must be known for anything beyond the
// ordinary-session default.
func WhyToday(res *analysis.Result) analysis.WhyTodaySignal {
	sig := analysis.WhyTodaySignal{
		Label: analysis.WhyOrdinary,
		Note:  "Price change and volume are both inside normal ranges; this looks like routine positioning rather than an event.",
	}

	chg := res.DailyChangePct
	vol := res.VolumeRatio
	if chg == nil || vol == nil {
		return sig
	}

	switch {
	case *chg >= whyStrongChange && *vol >= whyStrongVolume:
		sig.Label = analysis.WhyStrongCatalyst
		sig.Note = fmt.Sprintf("Up %.1f%% on %.1fx average volume; odds favor a strong catalyst such as an earnings surprise, raised guidance, or major deal news.", *chg, *vol)
	case *chg <= -whyStrongChange && *vol >= whyStrongVolume:
		sig.Label = analysis.WhyBadNews
		sig.Note = fmt.Sprintf("Down %.1f%% on %.1fx average volume; consistent with bad news, a guidance cut, or forced institutional liquidation.", math.Abs(*chg), *vol)
	case math.Abs(*chg) < whyQuietChange && *vol <= whyQuietVolume:
		sig.Label = analysis.WhyWaiting
		sig.Note = "Both price and volume are quiet; the market is likely waiting on the next event (earnings, a central-bank decision, or a report)."
	}

	return sig
}
