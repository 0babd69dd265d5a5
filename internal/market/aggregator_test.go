package market

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/niveshlabs/nivesh-backend/internal/yahoo"
)

func TestAggregator_PartialFailure(t *testing.T) {
	gw := newFakeGateway()
	gw.quotes["^NSEI"] = fakeQuote("^NSEI", 24500, 0.8)
	gw.quotes["^BSESN"] = fakeQuote("^BSESN", 80500, 0.6)
	gw.quoteErr["^NSEBANK"] = errors.New("upstream 502")

	agg := NewAggregator(gw, testLogger())
	res, err := agg.Fetch(context.Background(), BatchRequest{
		Symbols: []string{"^NSEI", "^BSESN", "^NSEBANK"},
		Names:   []string{"NIFTY 50", "SENSEX", "NIFTY BANK"},
	})
	require.NoError(t, err)

	require.Equal(t, 3, res.Requested)
	require.Equal(t, 2, res.Succeeded)
	require.Len(t, res.Quotes, 2)

	require.Equal(t, "^NSEI", res.Quotes[0].Symbol)
	require.Equal(t, "NIFTY 50", res.Quotes[0].Name)
	require.Equal(t, "^BSESN", res.Quotes[1].Symbol)
	require.Equal(t, "SENSEX", res.Quotes[1].Name)
}

func TestAggregator_AllFail(t *testing.T) {
	gw := newFakeGateway()
	gw.quoteErr["RELIANCE.NS"] = errors.New("timeout")
	gw.quoteErr["TCS.NS"] = errors.New("timeout")

	agg := NewAggregator(gw, testLogger())
	res, err := agg.Fetch(context.Background(), BatchRequest{
		Symbols: []string{"RELIANCE.NS", "TCS.NS"},
	})
	require.ErrorIs(t, err, ErrAllSymbolsFailed)
	require.Nil(t, res)
}

func TestAggregator_OrderSurvivesSlowSymbols(t *testing.T) {
	gw := newFakeGateway()
	symbols := []string{"RELIANCE.NS", "TCS.NS", "HDFCBANK.NS", "INFY.NS"}
	for i, s := range symbols {
		gw.quotes[s] = fakeQuote(s, float64(100*(i+1)), 1)
	}
	// First symbol finishes last.
	gw.delays["RELIANCE.NS"] = 30 * time.Millisecond

	agg := NewAggregator(gw, testLogger())
	res, err := agg.Fetch(context.Background(), BatchRequest{Symbols: symbols})
	require.NoError(t, err)

	require.Len(t, res.Quotes, len(symbols))
	for i, s := range symbols {
		require.Equal(t, s, res.Quotes[i].Symbol)
	}
}

func TestAggregator_DuplicateSymbolsFetchedIndependently(t *testing.T) {
	gw := newFakeGateway()
	gw.quotes["INFY.NS"] = fakeQuote("INFY.NS", 1500, -0.4)

	agg := NewAggregator(gw, testLogger())
	res, err := agg.Fetch(context.Background(), BatchRequest{
		Symbols: []string{"INFY.NS", "INFY.NS"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, res.Succeeded)
	require.Equal(t, 2, gw.quoteCalls)
}

func TestAggregator_DetailBundleMerged(t *testing.T) {
	gw := newFakeGateway()
	gw.quotes["RELIANCE.NS"] = fakeQuote("RELIANCE.NS", 2950, 1.2)
	gw.summaries["RELIANCE.NS"] = &yahoo.Summary{
		Price: &yahoo.PriceBlock{
			Symbol:             "RELIANCE.NS",
			RegularMarketPrice: &yahoo.Value{Raw: fp(2955.5)},
		},
		SummaryDetail: &yahoo.SummaryDetail{
			FiftyTwoWeekHigh: &yahoo.Value{Raw: fp(3217.6)},
			Beta:             &yahoo.Value{Raw: fp(1.1)},
		},
	}

	agg := NewAggregator(gw, testLogger())
	res, err := agg.Fetch(context.Background(), BatchRequest{
		Symbols:    []string{"RELIANCE.NS"},
		WithDetail: true,
	})
	require.NoError(t, err)
	require.Equal(t, 1, gw.summaryCalls)

	rec := res.Quotes[0]
	require.Equal(t, 2955.5, rec.Price)
	require.NotNil(t, rec.FiftyTwoWeekHigh)
	require.Equal(t, 3217.6, *rec.FiftyTwoWeekHigh)
	require.NotNil(t, rec.Beta)
}

func TestAggregator_DetailFailureFallsBackToQuote(t *testing.T) {
	gw := newFakeGateway()
	gw.quotes["TCS.NS"] = fakeQuote("TCS.NS", 4100, 0.3)
	gw.sumErr["TCS.NS"] = errors.New("quoteSummary 401")

	agg := NewAggregator(gw, testLogger())
	res, err := agg.Fetch(context.Background(), BatchRequest{
		Symbols:    []string{"TCS.NS"},
		WithDetail: true,
	})
	require.NoError(t, err)

	rec := res.Quotes[0]
	require.Equal(t, 4100.0, rec.Price)
	require.Nil(t, rec.FiftyTwoWeekHigh)
	require.Nil(t, rec.Beta)
}

func TestAggregator_QuoteWithoutDetailSkipsSummaryCall(t *testing.T) {
	gw := newFakeGateway()
	gw.quotes["^NSEI"] = fakeQuote("^NSEI", 24500, 0.8)

	agg := NewAggregator(gw, testLogger())
	_, err := agg.Fetch(context.Background(), BatchRequest{Symbols: []string{"^NSEI"}})
	require.NoError(t, err)
	require.Equal(t, 0, gw.summaryCalls)
}
