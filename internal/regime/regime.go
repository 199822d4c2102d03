// Package regime classifies the macro backdrop from a handful of broad
// market quotes: the 10-year yield, the VIX, the home FX rate, and BTC.
package regime

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"tickerlab/internal/quote"
)

// Classification thresholds. The yield quote (^TNX) is reported as
// percent x 10, so it is divided by 10 before comparison.
const (
	riskOnRateMax  = 3.0
	riskOnVixMax   = 18.0
	riskOffRateMin = 5.0
	riskOffVixMin  = 25.0

	fxWeakMin   = 1400.0
	fxStrongMax = 1300.0

	cryptoHotMin  = 80000.0
	cryptoColdMax = 40000.0
)

// RiskState is the combined rate/volatility read.
type RiskState string

const (
	RiskOn      RiskState = "RISK_ON"
	RiskOff     RiskState = "RISK_OFF"
	RiskNeutral RiskState = "RISK_NEUTRAL"
)

// FxState describes the home currency against the dollar.
type FxState string

const (
	FxWeak    FxState = "FX_WEAK"
	FxStrong  FxState = "FX_STRONG"
	FxNeutral FxState = "FX_NEUTRAL"
	FxUnknown FxState = "FX_UNKNOWN"
)

// CryptoState is a coarse read on speculative appetite via BTC.
type CryptoState string

const (
	CryptoHot     CryptoState = "CRYPTO_HOT"
	CryptoCold    CryptoState = "CRYPTO_COLD"
	CryptoNeutral CryptoState = "CRYPTO_NEUTRAL"
	CryptoUnknown CryptoState = "CRYPTO_UNKNOWN"
)

// Snapshot holds the fetched values and their classification. A nil
// value means that leg could not be fetched; classification degrades to
// the unknown/neutral state rather than failing the snapshot.
type Snapshot struct {
	Rate10Y *float64 `json:"rate10y"` // percent, ^TNX / 10
	VIX     *float64 `json:"vix"`
	FxRate  *float64 `json:"fxRate"`
	BTC     *float64 `json:"btc"`

	Risk   RiskState   `json:"risk"`
	Fx     FxState     `json:"fx"`
	Crypto CryptoState `json:"crypto"`
}

// Classify derives the regime states from raw values. Pure so tests can
// probe the thresholds directly.
func Classify(rate10y, vix, fx, btc *float64) Snapshot {
	snap := Snapshot{
		Rate10Y: rate10y,
		VIX:     vix,
		FxRate:  fx,
		BTC:     btc,
		Risk:    RiskNeutral,
		Fx:      FxUnknown,
		Crypto:  CryptoUnknown,
	}

	if rate10y != nil && vix != nil {
		switch {
		case *rate10y < riskOnRateMax && *vix < riskOnVixMax:
			snap.Risk = RiskOn
		case *rate10y > riskOffRateMin || *vix > riskOffVixMin:
			snap.Risk = RiskOff
		}
	}

	if fx != nil {
		switch {
		case *fx > fxWeakMin:
			snap.Fx = FxWeak
		case *fx < fxStrongMax:
			snap.Fx = FxStrong
		default:
			snap.Fx = FxNeutral
		}
	}

	if btc != nil {
		switch {
		case *btc > cryptoHotMin:
			snap.Crypto = CryptoHot
		case *btc < cryptoColdMax:
			snap.Crypto = CryptoCold
		default:
			snap.Crypto = CryptoNeutral
		}
	}

	return snap
}

// Monitor fetches the macro quotes and classifies them.
type Monitor struct {
	source   quote.Source
	fxSymbol string
	logger   zerolog.Logger
}

// NewMonitor creates a regime monitor on top of a quote source. fxSymbol
// names the currency pair to watch (e.g. "KRW=X").
func NewMonitor(source quote.Source, fxSymbol string, logger zerolog.Logger) *Monitor {
	return &Monitor{source: source, fxSymbol: fxSymbol, logger: logger}
}

// Snapshot fetches the four macro legs concurrently and classifies the
// result. A leg that fails to fetch stays nil; the snapshot is always
// returned.
func (m *Monitor) Snapshot(ctx context.Context) Snapshot {
	legs := []struct {
		symbol string
		scale  float64
	}{
		{"^TNX", 0.1},
		{"^VIX", 1},
		{m.fxSymbol, 1},
		{"BTC-USD", 1},
	}

	values := make([]*float64, len(legs))
	var wg sync.WaitGroup
	for i, leg := range legs {
		wg.Add(1)
		go func(i int, symbol string, scale float64) {
			defer wg.Done()
			v, err := m.source.FetchLast(ctx, symbol)
			if err != nil {
				m.logger.Warn().Err(err).Str("symbol", symbol).Msg("macro quote unavailable")
				return
			}
			v *= scale
			values[i] = &v
		}(i, leg.symbol, leg.scale)
	}
	wg.Wait()

	return Classify(values[0], values[1], values[2], values[3])
}
