package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/niveshlabs/nivesh-backend/internal/httputil"
)

// Config holds the endpoint bases for the four capabilities. Separate fields
// so tests can point each one at its own fake server.
type Config struct {
	QuoteBaseURL   string
	SummaryBaseURL string
	ChartBaseURL   string
	SearchBaseURL  string
	Timeout        time.Duration
}

// Client talks to Yahoo-Finance-shaped endpoints. Each call is independently
// fallible; there is no caching and no per-symbol retry beyond the
// transport-level backoff in httputil.
type Client struct {
	cfg        Config
	httpClient *http.Client
	retry      httputil.RetryConfig
	log        *logrus.Logger
}

func NewClient(cfg Config, log *logrus.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		retry: httputil.RetryConfig{
			MaxAttempts: 2,
			BaseDelay:   500 * time.Millisecond,
			MaxDelay:    2 * time.Second,
		},
		log: log,
	}
}

// Quote fetches the basic live quote for one symbol.
func (c *Client) Quote(ctx context.Context, symbol string) (*Quote, error) {
	u := fmt.Sprintf("%s?symbols=%s", c.cfg.QuoteBaseURL, url.QueryEscape(symbol))

	var payload quoteResponse
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return nil, fmt.Errorf("quote %s: %w", symbol, err)
	}
	if e := payload.QuoteResponse.Error; e != nil {
		return nil, fmt.Errorf("quote %s: provider error: %s", symbol, e.Description)
	}
	if len(payload.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("quote %s: no data returned", symbol)
	}
	return &payload.QuoteResponse.Result[0], nil
}

// QuoteSummary fetches the detail bundle for one symbol. The modules slice
// names the quoteSummary modules to request (price, summaryDetail,
// defaultKeyStatistics).
func (c *Client) QuoteSummary(ctx context.Context, symbol string, modules []string) (*Summary, error) {
	q := url.Values{}
	q.Set("modules", joinModules(modules))
	u := fmt.Sprintf("%s/%s?%s", c.cfg.SummaryBaseURL, url.PathEscape(symbol), q.Encode())

	var payload summaryResponse
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return nil, fmt.Errorf("summary %s: %w", symbol, err)
	}
	if e := payload.QuoteSummary.Error; e != nil {
		return nil, fmt.Errorf("summary %s: provider error: %s", symbol, e.Description)
	}
	if len(payload.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("summary %s: no data returned", symbol)
	}
	return &payload.QuoteSummary.Result[0], nil
}

// Chart fetches daily (or intraday, per interval) bars between from and to.
// Bars the provider reports with a null close are dropped; nothing is
// synthesised for gaps.
func (c *Client) Chart(ctx context.Context, symbol, interval string, from, to time.Time) ([]Bar, error) {
	q := url.Values{}
	q.Set("period1", strconv.FormatInt(from.Unix(), 10))
	q.Set("period2", strconv.FormatInt(to.Unix(), 10))
	q.Set("interval", interval)
	u := fmt.Sprintf("%s/%s?%s", c.cfg.ChartBaseURL, url.PathEscape(symbol), q.Encode())

	var payload chartResponse
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return nil, fmt.Errorf("chart %s: %w", symbol, err)
	}
	if e := payload.Chart.Error; e != nil {
		return nil, fmt.Errorf("chart %s: provider error: %s", symbol, e.Description)
	}
	if len(payload.Chart.Result) == 0 || len(payload.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("chart %s: no data returned", symbol)
	}

	result := payload.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("chart %s: missing quote indicators", symbol)
	}
	quote := result.Indicators.Quote[0]

	bars := make([]Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		bars = append(bars, Bar{
			Date:   time.Unix(ts, 0),
			Open:   deref(at(quote.Open, i)),
			High:   deref(at(quote.High, i)),
			Low:    deref(at(quote.Low, i)),
			Close:  *quote.Close[i],
			Volume: deref(at(quote.Volume, i)),
		})
	}
	return bars, nil
}

// Search fetches candidate matches for a free-text query.
func (c *Client) Search(ctx context.Context, query string, quotesCount, newsCount int) ([]SearchQuote, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("quotesCount", strconv.Itoa(quotesCount))
	q.Set("newsCount", strconv.Itoa(newsCount))
	u := c.cfg.SearchBaseURL + "?" + q.Encode()

	var payload searchResponse
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return payload.Quotes, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	c.log.WithField("url", rawURL).Debug("provider request")
	resp, err := httputil.Do(ctx, c.httpClient, c.retry, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "Mozilla/5.0")
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func joinModules(modules []string) string {
	if len(modules) == 0 {
		return "price,summaryDetail,defaultKeyStatistics"
	}
	return strings.Join(modules, ",")
}

func at(vals []*float64, i int) *float64 {
	if i >= len(vals) {
		return nil
	}
	return vals[i]
}
