package market

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/niveshlabs/nivesh-backend/internal/yahoo"
)

// fakeGateway is a controllable in-memory Gateway for unit tests.
type fakeGateway struct {
	mu sync.Mutex

	quotes    map[string]*yahoo.Quote
	quoteErr  map[string]error
	summaries map[string]*yahoo.Summary
	sumErr    map[string]error

	bars     []yahoo.Bar
	chartErr error

	searchResults []yahoo.SearchQuote
	searchErr     error

	quoteCalls   int
	summaryCalls int
	chartCalls   int
	searchCalls  int

	lastInterval string
	lastFrom     time.Time
	lastTo       time.Time

	// delay per symbol, to exercise out-of-order completion
	delays map[string]time.Duration
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		quotes:    map[string]*yahoo.Quote{},
		quoteErr:  map[string]error{},
		summaries: map[string]*yahoo.Summary{},
		sumErr:    map[string]error{},
		delays:    map[string]time.Duration{},
	}
}

func (f *fakeGateway) Quote(_ context.Context, symbol string) (*yahoo.Quote, error) {
	f.mu.Lock()
	delay := f.delays[symbol]
	f.quoteCalls++
	q, err := f.quotes[symbol], f.quoteErr[symbol]
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (f *fakeGateway) QuoteSummary(_ context.Context, symbol string, _ []string) (*yahoo.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.summaryCalls++
	if err := f.sumErr[symbol]; err != nil {
		return nil, err
	}
	return f.summaries[symbol], nil
}

func (f *fakeGateway) Chart(_ context.Context, _, interval string, from, to time.Time) ([]yahoo.Bar, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chartCalls++
	f.lastInterval = interval
	f.lastFrom = from
	f.lastTo = to
	if f.chartErr != nil {
		return nil, f.chartErr
	}
	return f.bars, nil
}

func (f *fakeGateway) Search(_ context.Context, _ string, _, _ int) ([]yahoo.SearchQuote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchResults, nil
}

// --- builders ---

func fp(v float64) *float64 { return &v }

func sp(v string) *string { return &v }

func fakeQuote(symbol string, price, changePct float64) *yahoo.Quote {
	return &yahoo.Quote{
		Symbol:                     symbol,
		ShortName:                  sp(symbol + " Ltd"),
		RegularMarketPrice:         fp(price),
		RegularMarketChange:        fp(price * changePct / 100),
		RegularMarketChangePercent: fp(changePct),
		RegularMarketPreviousClose: fp(price / (1 + changePct/100)),
		RegularMarketVolume:        fp(1_000_000),
		MarketState:                sp("REGULAR"),
	}
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
