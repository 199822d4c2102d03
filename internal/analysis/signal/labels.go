package signal

import "strings"

var (
	megaTechSymbols = map[string]bool{
		"AAPL": true, "MSFT": true, "GOOGL": true, "META": true,
		"AMZN": true, "NVDA": true, "TSLA": true,
	}
	semiSymbols = map[string]bool{
		"NVDA": true, "AMD": true, "AVGO": true, "ASML": true,
		"TSM": true, "SMH": true, "SOXX": true,
	}
	indexETFSymbols = map[string]bool{
		"QQQ": true, "SPY": true, "VOO": true, "DIA": true,
	}
)

// Labels tags a symbol with coarse sector/asset-class labels for the
// result header. Unrecognized symbols get the single-stock default.
func Labels(symbol string) []string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	var labels []string

	if megaTechSymbols[s] {
		labels = append(labels, "Mega Tech")
	}
	if semiSymbols[s] {
		labels = append(labels, "Semi / AI")
	}
	if strings.HasSuffix(s, "USD") {
		labels = append(labels, "Crypto")
	}
	if indexETFSymbols[s] {
		labels = append(labels, "Index ETF")
	}
	if len(labels) == 0 {
		labels = append(labels, "Single Stock")
	}
	return labels
}
