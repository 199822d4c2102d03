package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickerlab/internal/config"
	apperrors "tickerlab/internal/errors"
	"tickerlab/internal/models"
)

// chartJSON builds a chart API payload with n bars; nullAt marks row
// indices whose close is a JSON null.
func chartJSON(symbol string, n int, marketPrice *float64, nullAt ...int) string {
	nulls := make(map[int]bool, len(nullAt))
	for _, i := range nullAt {
		nulls[i] = true
	}

	col := func(base float64, skipNull bool) string {
		parts := make([]string, n)
		for i := 0; i < n; i++ {
			if !skipNull && nulls[i] {
				parts[i] = "null"
			} else {
				parts[i] = fmt.Sprintf("%.2f", base+float64(i)*0.1)
			}
		}
		return "[" + strings.Join(parts, ",") + "]"
	}
	vols := make([]string, n)
	for i := 0; i < n; i++ {
		vols[i] = "1000000"
	}

	meta := fmt.Sprintf(`{"symbol":%q,"currency":"USD"}`, symbol)
	if marketPrice != nil {
		meta = fmt.Sprintf(`{"symbol":%q,"currency":"USD","regularMarketPrice":%.2f}`, symbol, *marketPrice)
	}

	return fmt.Sprintf(`{"chart":{"result":[{"meta":%s,"indicators":{"quote":[{
		"open":%s,"high":%s,"low":%s,"close":%s,"volume":[%s]}]}}],"error":null}}`,
		meta, col(100, true), col(101, true), col(99, true), col(100.5, false), strings.Join(vols, ","))
}

func testClient(t *testing.T, handler http.HandlerFunc) *YahooClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.Default().Quote
	cfg.BaseURL = server.URL + "/"
	cfg.Timeout = 5 * time.Second
	return NewYahooClient(cfg, zerolog.Nop())
}

func TestFetchDailyParsesAndCleans(t *testing.T) {
	price := 123.45
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "AAPL")
		assert.Equal(t, "6mo", r.URL.Query().Get("range"))
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		fmt.Fprint(w, chartJSON("AAPL", 40, &price, 3, 17))
	})

	series, err := client.FetchDaily(context.Background(), "aapl")
	require.NoError(t, err)

	// Two null rows dropped.
	assert.Equal(t, 38, series.Len())
	assert.Equal(t, "AAPL", series.Symbol)
	assert.Equal(t, price, series.Price)
	assert.False(t, series.Demo)
	require.NoError(t, series.Validate())
}

func TestFetchDailyFallsBackToLastClose(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartJSON("MSFT", 35, nil))
	})

	series, err := client.FetchDaily(context.Background(), "MSFT")
	require.NoError(t, err)
	assert.Equal(t, series.LastBar().Close, series.Price)
}

func TestFetchDailyRejectsThinHistory(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartJSON("NEWIPO", models.MinCleanBars-1, nil))
	})

	_, err := client.FetchDaily(context.Background(), "NEWIPO")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInsufficientData), "got %v", err)
}

func TestFetchDailyNullsCanStarveTheSeries(t *testing.T) {
	// Enough raw rows, but nulls push the clean count under the floor.
	nullRows := make([]int, 15)
	for i := range nullRows {
		nullRows[i] = i * 2
	}
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartJSON("SPARSE", 40, nil, nullRows...))
	})

	_, err := client.FetchDaily(context.Background(), "SPARSE")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInsufficientData), "got %v", err)
}

func TestFetchDailyEmptySymbol(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an empty symbol")
	})

	_, err := client.FetchDaily(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInputValidation), "got %v", err)
}

func TestFetchDailyNotFound(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.FetchDaily(context.Background(), "NOPE")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrSymbolNotFound), "got %v", err)
}

func TestFetchDailyMalformedBody(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>rate limited</html>")
	})

	_, err := client.FetchDaily(context.Background(), "AAPL")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidResponse), "got %v", err)
}

func TestFetchLastPrefersMetaPrice(t *testing.T) {
	price := 42.5
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartJSON("^VIX", 3, &price))
	})

	v, err := client.FetchLast(context.Background(), "^VIX")
	require.NoError(t, err)
	assert.Equal(t, price, v)
}

func TestFetchLastFallsBackToLastNonNullClose(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Last close is null; the scan walks back to the prior row.
		fmt.Fprint(w, chartJSON("KRW=X", 3, nil, 2))
	})

	v, err := client.FetchLast(context.Background(), "KRW=X")
	require.NoError(t, err)
	assert.InDelta(t, 100.6, v, 1e-9)
}

func TestFetchChartThroughProxy(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.RequestURI()
		fmt.Fprint(w, chartJSON("AAPL", 35, nil))
	}))
	t.Cleanup(server.Close)

	cfg := config.Default().Quote
	cfg.BaseURL = "https://upstream.example/v8/finance/chart/"
	cfg.ProxyURL = server.URL + "/raw?url="
	cfg.Timeout = 5 * time.Second
	client := NewYahooClient(cfg, zerolog.Nop())

	_, err := client.FetchDaily(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Contains(t, gotPath, "url=https%3A%2F%2Fupstream.example")
}

func TestChartResponseDecodesNulls(t *testing.T) {
	var cr chartResponse
	require.NoError(t, json.Unmarshal([]byte(chartJSON("X", 3, nil, 1)), &cr))
	q := cr.Chart.Result[0].Indicators.Quote[0]
	assert.Nil(t, q.Close[1])
	assert.NotNil(t, q.Close[0])
}
