package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tickerlab/internal/config"
	apperrors "tickerlab/internal/errors"
	"tickerlab/internal/models"
	"tickerlab/pkg/utils"
)

// YahooClient fetches chart data from a Yahoo-finance-compatible
// endpoint, optionally through a CORS-style proxy prefix.
type YahooClient struct {
	cfg    config.QuoteConfig
	client *http.Client
	logger zerolog.Logger
}

// NewYahooClient creates a chart API client from configuration.
func NewYahooClient(cfg config.QuoteConfig, logger zerolog.Logger) *YahooClient {
	return &YahooClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// chartResponse mirrors the chart API payload. Quote arrays are pointer
// typed so null holes survive decoding and can be filtered out.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string   `json:"symbol"`
				Currency           string   `json:"currency"`
				RegularMarketPrice *float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error json.RawMessage `json:"error"`
	} `json:"chart"`
}

// FetchDaily retrieves and cleans the daily series for a symbol.
func (c *YahooClient) FetchDaily(ctx context.Context, symbol string) (*models.PriceSeries, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, apperrors.NewValidationError("symbol", symbol, "must not be empty")
	}

	start := time.Now()
	resp, err := c.fetchChart(ctx, symbol, c.cfg.Range, c.cfg.Interval)
	if err != nil {
		c.logger.Debug().Err(err).Str("symbol", symbol).Msg("chart fetch failed")
		return nil, err
	}

	result := resp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, apperrors.NewDataError("chart", symbol, "quote array missing", apperrors.ErrInvalidResponse)
	}
	q := result.Indicators.Quote[0]

	series := &models.PriceSeries{Symbol: symbol}
	if result.Meta.Symbol != "" {
		series.Symbol = result.Meta.Symbol
	}

	// Keep only rows where all five fields are present.
	n := len(q.Close)
	for i := 0; i < n; i++ {
		if i >= len(q.Open) || i >= len(q.High) || i >= len(q.Low) || i >= len(q.Volume) {
			break
		}
		if q.Open[i] == nil || q.High[i] == nil || q.Low[i] == nil || q.Close[i] == nil || q.Volume[i] == nil {
			continue
		}
		series.Bars = append(series.Bars, models.Bar{
			Open:   *q.Open[i],
			High:   *q.High[i],
			Low:    *q.Low[i],
			Close:  *q.Close[i],
			Volume: *q.Volume[i],
		})
	}

	if len(series.Bars) < models.MinCleanBars {
		return nil, apperrors.NewDataError("chart", symbol,
			fmt.Sprintf("%d clean bars, need %d", len(series.Bars), models.MinCleanBars),
			apperrors.ErrInsufficientData)
	}

	if result.Meta.RegularMarketPrice != nil {
		series.Price = *result.Meta.RegularMarketPrice
	} else {
		series.Price = series.Bars[len(series.Bars)-1].Close
	}

	if err := series.Validate(); err != nil {
		return nil, apperrors.NewDataError("chart", symbol, "series failed validation", err)
	}

	c.logger.Debug().
		Str("symbol", symbol).
		Int("bars", len(series.Bars)).
		Dur("duration", time.Since(start)).
		Msg("chart fetch completed")
	return series, nil
}

// FetchLast retrieves only the most recent price for a symbol.
func (c *YahooClient) FetchLast(ctx context.Context, symbol string) (float64, error) {
	resp, err := c.fetchChart(ctx, symbol, "1d", "1d")
	if err != nil {
		return 0, err
	}

	result := resp.Chart.Result[0]
	if result.Meta.RegularMarketPrice != nil {
		return *result.Meta.RegularMarketPrice, nil
	}
	if len(result.Indicators.Quote) > 0 {
		closes := result.Indicators.Quote[0].Close
		for i := len(closes) - 1; i >= 0; i-- {
			if closes[i] != nil {
				return *closes[i], nil
			}
		}
	}
	return 0, apperrors.NewDataError("quote", symbol, "no usable close", apperrors.ErrInvalidResponse)
}

func (c *YahooClient) fetchChart(ctx context.Context, symbol, rng, interval string) (*chartResponse, error) {
	target := fmt.Sprintf("%s%s?range=%s&interval=%s",
		c.cfg.BaseURL, url.PathEscape(symbol), url.QueryEscape(rng), url.QueryEscape(interval))
	finalURL := target
	if c.cfg.ProxyURL != "" {
		finalURL = c.cfg.ProxyURL + url.QueryEscape(target)
	}

	var parsed *chartResponse
	err := utils.Retry(ctx, utils.DefaultRetryConfig(), func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, finalURL, nil)
		if err != nil {
			return err
		}
		if c.cfg.UserAgent != "" {
			req.Header.Set("User-Agent", c.cfg.UserAgent)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrConnectionFailed, err.Error())
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return apperrors.ErrSymbolNotFound
		}
		if resp.StatusCode != http.StatusOK {
			return apperrors.Wrapf(apperrors.ErrConnectionFailed, "status %d", resp.StatusCode)
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
		if err != nil {
			return apperrors.Wrap(apperrors.ErrConnectionFailed, "reading response")
		}

		var cr chartResponse
		if err := json.Unmarshal(body, &cr); err != nil {
			return apperrors.Wrap(apperrors.ErrInvalidResponse, err.Error())
		}
		if len(cr.Chart.Result) == 0 {
			return apperrors.ErrInvalidResponse
		}
		parsed = &cr
		return nil
	})
	if err != nil {
		return nil, err
	}
	return parsed, nil
}
