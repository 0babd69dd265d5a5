package market

import (
	"context"
	"time"

	"github.com/niveshlabs/nivesh-backend/internal/yahoo"
)

// Gateway is the market-data provider boundary. Every call is fallible and
// latency-bearing; none retries at this level.
type Gateway interface {
	Quote(ctx context.Context, symbol string) (*yahoo.Quote, error)
	QuoteSummary(ctx context.Context, symbol string, modules []string) (*yahoo.Summary, error)
	Chart(ctx context.Context, symbol, interval string, from, to time.Time) ([]yahoo.Bar, error)
	Search(ctx context.Context, query string, quotesCount, newsCount int) ([]yahoo.SearchQuote, error)
}

// QuoteRecord is the canonical per-symbol quote. Required numerics default to
// zero when the provider omits them; the statistical fields are pointers so
// an absent detail bundle serialises as null rather than a misleading zero.
type QuoteRecord struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	PreviousClose float64 `json:"previousClose"`
	Open          float64 `json:"open"`
	DayHigh       float64 `json:"dayHigh"`
	DayLow        float64 `json:"dayLow"`
	Volume        float64 `json:"volume"`
	MarketCap     float64 `json:"marketCap"`
	MarketState   string  `json:"marketState"`

	FiftyTwoWeekHigh *float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow  *float64 `json:"fiftyTwoWeekLow"`
	DividendYield    *float64 `json:"dividendYield"`
	Beta             *float64 `json:"beta"`
	TrailingPE       *float64 `json:"trailingPE"`
	ForwardPE        *float64 `json:"forwardPE"`
}

// AggregationResult is the surviving subset of a batch quote request, in the
// original request order. Succeeded <= Requested always holds.
type AggregationResult struct {
	Quotes    []QuoteRecord
	Requested int
	Succeeded int
}

// RankedMovers holds the top-N gainers and losers derived from one
// aggregation. Gainers are sorted by percent change descending, losers
// ascending (most negative first).
type RankedMovers struct {
	Gainers     []QuoteRecord `json:"gainers"`
	Losers      []QuoteRecord `json:"losers"`
	TotalStocks int           `json:"totalStocks"`
}

// HistoricalPoint is one charted bar with an integer epoch-seconds timestamp.
type HistoricalPoint struct {
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// HistoricalSeries is a chronologically ascending series plus the echoed
// request parameters.
type HistoricalSeries struct {
	Symbol string            `json:"symbol"`
	Period string            `json:"period"`
	Points []HistoricalPoint `json:"data"`
	Count  int               `json:"count"`
}

// SearchMatch is one classified search survivor.
type SearchMatch struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Type     string `json:"type"`
	IsIndex  bool   `json:"isIndex"`
}

// DateRange is a concrete [From, To] window resolved from a period token.
type DateRange struct {
	From time.Time
	To   time.Time
}
