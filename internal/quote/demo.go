package quote

import (
	"math"
	"math/rand"
	"time"

	"tickerlab/internal/models"
)

// Demo series shape: a random walk seeded at 100 with +-5% daily moves
// and a slight upward bias, 120 bars, wick jitter up to 1%.
const (
	demoBars      = 120
	demoSeedPrice = 100.0
	demoBaseVol   = 1_000_000
	demoVolJitter = 500_000
)

// DemoGenerator synthesizes a plausible OHLCV series when the quote
// source is unavailable. Randomness lives only here; the analysis
// pipeline itself is deterministic.
type DemoGenerator struct {
	rnd *rand.Rand
}

// NewDemoGenerator creates a generator seeded from the clock.
func NewDemoGenerator() *DemoGenerator {
	return NewDemoGeneratorWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewDemoGeneratorWithSource creates a generator with a caller-supplied
// source, letting tests pin the sequence.
func NewDemoGeneratorWithSource(src rand.Source) *DemoGenerator {
	return &DemoGenerator{rnd: rand.New(src)}
}

// Generate produces the synthetic fallback series for a symbol.
func (g *DemoGenerator) Generate(symbol string) *models.PriceSeries {
	series := &models.PriceSeries{
		Symbol: symbol,
		Demo:   true,
		Bars:   make([]models.Bar, 0, demoBars),
	}

	price := demoSeedPrice
	for i := 0; i < demoBars; i++ {
		change := (g.rnd.Float64() - 0.45) * 0.05
		open := price
		price = price * (1 + change)

		high := math.Max(open, price) * (1 + g.rnd.Float64()*0.01)
		low := math.Min(open, price) * (1 - g.rnd.Float64()*0.01)
		volume := demoBaseVol + int64(g.rnd.Float64()*demoVolJitter)

		series.Bars = append(series.Bars, models.Bar{
			Open:   open,
			High:   high,
			Low:    low,
			Close:  price,
			Volume: volume,
		})
	}

	series.Price = price
	return series
}
