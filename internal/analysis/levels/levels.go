// Package levels detects swing points in OHLC history, clusters them
// into support/resistance candidates, and selects the levels nearest to
// the current price among the best-validated clusters.
package levels

import (
	"math"
	"sort"
)

// ClusterTolerance is the relative price distance within which two swing
// points are considered touches of the same level.
const ClusterTolerance = 0.03

// SwingWindow is the trailing number of bars scanned for swing points.
const SwingWindow = 80

// MaxRanked is the number of top-scored clusters kept before the
// proximity re-sort.
const MaxRanked = 5

// SwingPoint is a local price extremum relative to its immediate
// neighboring bars.
type SwingPoint struct {
	Price    float64
	BarIndex int
}

// Cluster groups nearby swing points into one level. Price is the
// running mean of the member touches.
type Cluster struct {
	Price     float64
	Touches   []int
	LastIndex int
	Score     float64
}

// DetectSwings finds swing highs and lows over the trailing window
// (strict one-bar neighbors on each side). Both ends of the series are
// excluded since they lack a neighbor.
func DetectSwings(highs, lows []float64, window int) (swingHighs, swingLows []SwingPoint) {
	n := len(highs)
	if n != len(lows) || n < 3 {
		return nil, nil
	}
	if window <= 0 {
		window = SwingWindow
	}

	start := n - window
	if start < 1 {
		start = 1
	}
	for i := start; i < n-1; i++ {
		if highs[i] > highs[i-1] && highs[i] > highs[i+1] {
			swingHighs = append(swingHighs, SwingPoint{Price: highs[i], BarIndex: i})
		}
		if lows[i] < lows[i-1] && lows[i] < lows[i+1] {
			swingLows = append(swingLows, SwingPoint{Price: lows[i], BarIndex: i})
		}
	}
	return swingHighs, swingLows
}

// ClusterSwings groups swing points into proximity clusters. Points are
// placed in arrival order into the first cluster whose current
// representative price lies within ClusterTolerance; merging updates the
// running mean price and the most recent touch index. Each cluster is
// then scored touchCount * (1 + lastIndex/totalBars), rewarding levels
// touched more often and more recently.
func ClusterSwings(points []SwingPoint, totalBars int) []Cluster {
	var clusters []Cluster

	for _, p := range points {
		merged := false
		for i := range clusters {
			c := &clusters[i]
			diff := math.Abs(p.Price-c.Price) / c.Price
			if diff <= ClusterTolerance {
				c.Touches = append(c.Touches, p.BarIndex)
				if p.BarIndex > c.LastIndex {
					c.LastIndex = p.BarIndex
				}
				k := float64(len(c.Touches))
				c.Price = (c.Price*(k-1) + p.Price) / k
				merged = true
				break
			}
		}
		if !merged {
			clusters = append(clusters, Cluster{
				Price:     p.Price,
				Touches:   []int{p.BarIndex},
				LastIndex: p.BarIndex,
			})
		}
	}

	denom := float64(totalBars)
	if denom < 1 {
		denom = 1
	}
	for i := range clusters {
		c := &clusters[i]
		timeBoost := 1 + float64(c.LastIndex)/denom
		c.Score = float64(len(c.Touches)) * timeBoost
	}
	return clusters
}

// Select filters clusters to the support side (strictly below lastPrice)
// or resistance side (strictly above), ranks the survivors by score
// descending, keeps the top MaxRanked, and re-sorts that subset by
// absolute distance to lastPrice ascending: among the best-validated
// levels, the nearest wins. Index 0 is the primary level.
func Select(clusters []Cluster, lastPrice float64, support bool) []Cluster {
	var filtered []Cluster
	for _, c := range clusters {
		if support && c.Price < lastPrice {
			filtered = append(filtered, c)
		} else if !support && c.Price > lastPrice {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Score > filtered[j].Score
	})
	if len(filtered) > MaxRanked {
		filtered = filtered[:MaxRanked]
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return math.Abs(lastPrice-filtered[i].Price) < math.Abs(lastPrice-filtered[j].Price)
	})
	return filtered
}

// FallbackSupport returns the minimum low over the trailing lookback
// bars when it sits below lastPrice; ok is false otherwise.
func FallbackSupport(lows []float64, lastPrice float64, lookback int) (float64, bool) {
	if len(lows) == 0 {
		return 0, false
	}
	start := len(lows) - lookback
	if start < 0 {
		start = 0
	}
	min := lows[start]
	for _, v := range lows[start+1:] {
		if v < min {
			min = v
		}
	}
	if min < lastPrice {
		return min, true
	}
	return 0, false
}

// FallbackResistance returns the maximum high over the trailing lookback
// bars when it sits above lastPrice; ok is false otherwise.
func FallbackResistance(highs []float64, lastPrice float64, lookback int) (float64, bool) {
	if len(highs) == 0 {
		return 0, false
	}
	start := len(highs) - lookback
	if start < 0 {
		start = 0
	}
	max := highs[start]
	for _, v := range highs[start+1:] {
		if v > max {
			max = v
		}
	}
	if max > lastPrice {
		return max, true
	}
	return 0, false
}
