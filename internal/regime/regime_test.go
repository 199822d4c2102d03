package regime

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"tickerlab/internal/models"
)

func fptr(v float64) *float64 { return &v }

func TestClassifyRisk(t *testing.T) {
	cases := []struct {
		name string
		rate *float64
		vix  *float64
		want RiskState
	}{
		{"risk on", fptr(2.5), fptr(15), RiskOn},
		{"high rate blocks risk on", fptr(3.5), fptr(15), RiskNeutral},
		{"risk off by rate", fptr(5.5), fptr(15), RiskOff},
		{"risk off by vix", fptr(4.0), fptr(30), RiskOff},
		{"neutral middle", fptr(4.0), fptr(20), RiskNeutral},
		{"missing rate", nil, fptr(10), RiskNeutral},
		{"missing vix", fptr(2.0), nil, RiskNeutral},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap := Classify(tc.rate, tc.vix, nil, nil)
			if snap.Risk != tc.want {
				t.Errorf("risk = %s, want %s", snap.Risk, tc.want)
			}
		})
	}
}

func TestClassifyFx(t *testing.T) {
	cases := []struct {
		fx   *float64
		want FxState
	}{
		{fptr(1450), FxWeak},
		{fptr(1400), FxNeutral},
		{fptr(1350), FxNeutral},
		{fptr(1300), FxNeutral},
		{fptr(1250), FxStrong},
		{nil, FxUnknown},
	}
	for _, tc := range cases {
		if snap := Classify(nil, nil, tc.fx, nil); snap.Fx != tc.want {
			t.Errorf("fx %v: state = %s, want %s", tc.fx, snap.Fx, tc.want)
		}
	}
}

func TestClassifyCrypto(t *testing.T) {
	cases := []struct {
		btc  *float64
		want CryptoState
	}{
		{fptr(90_000), CryptoHot},
		{fptr(60_000), CryptoNeutral},
		{fptr(30_000), CryptoCold},
		{nil, CryptoUnknown},
	}
	for _, tc := range cases {
		if snap := Classify(nil, nil, nil, tc.btc); snap.Crypto != tc.want {
			t.Errorf("btc %v: state = %s, want %s", tc.btc, snap.Crypto, tc.want)
		}
	}
}

// mapSource serves FetchLast from a symbol map.
type mapSource struct {
	mu     sync.Mutex
	quotes map[string]float64
}

func (m *mapSource) FetchDaily(ctx context.Context, symbol string) (*models.PriceSeries, error) {
	return nil, errors.New("not implemented")
}

func (m *mapSource) FetchLast(ctx context.Context, symbol string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.quotes[symbol]
	if !ok {
		return 0, errors.New("symbol unavailable")
	}
	return v, nil
}

func TestMonitorSnapshot(t *testing.T) {
	source := &mapSource{quotes: map[string]float64{
		"^TNX":    25.0, // reported as percent x 10
		"^VIX":    14.0,
		"KRW=X":   1450,
		"BTC-USD": 95_000,
	}}
	monitor := NewMonitor(source, "KRW=X", zerolog.Nop())

	snap := monitor.Snapshot(context.Background())

	if snap.Rate10Y == nil || *snap.Rate10Y != 2.5 {
		t.Errorf("rate = %v, want 2.5 after the /10 scale", snap.Rate10Y)
	}
	if snap.Risk != RiskOn {
		t.Errorf("risk = %s, want RISK_ON", snap.Risk)
	}
	if snap.Fx != FxWeak {
		t.Errorf("fx = %s, want FX_WEAK", snap.Fx)
	}
	if snap.Crypto != CryptoHot {
		t.Errorf("crypto = %s, want CRYPTO_HOT", snap.Crypto)
	}
}

func TestMonitorSnapshotDegradesPerLeg(t *testing.T) {
	// Only the VIX resolves: risk needs both legs, the rest go unknown.
	source := &mapSource{quotes: map[string]float64{"^VIX": 40.0}}
	monitor := NewMonitor(source, "KRW=X", zerolog.Nop())

	snap := monitor.Snapshot(context.Background())

	if snap.Rate10Y != nil {
		t.Errorf("rate = %v, want nil", snap.Rate10Y)
	}
	if snap.VIX == nil || *snap.VIX != 40 {
		t.Errorf("vix = %v, want 40", snap.VIX)
	}
	if snap.Risk != RiskNeutral {
		t.Errorf("risk = %s, want neutral with a missing leg", snap.Risk)
	}
	if snap.Fx != FxUnknown || snap.Crypto != CryptoUnknown {
		t.Errorf("fx/crypto = %s/%s, want unknown", snap.Fx, snap.Crypto)
	}
}
