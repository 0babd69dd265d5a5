package market

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/niveshlabs/nivesh-backend/internal/config"
)

// Service is the façade the API layer calls. It owns the gateway and the
// immutable universe; nothing here is shared mutable state, so concurrent
// requests need no coordination.
type Service struct {
	gw         Gateway
	uni        *config.Universe
	aggregator *Aggregator
	history    *HistoryFormatter
	search     *SearchFilter
	log        *logrus.Logger
}

func NewService(gw Gateway, uni *config.Universe, log *logrus.Logger) *Service {
	return &Service{
		gw:         gw,
		uni:        uni,
		aggregator: NewAggregator(gw, log),
		history:    NewHistoryFormatter(gw, DefaultPeriods()),
		search:     NewSearchFilter(gw, uni.ExchangeSuffixes, uni.IndexPrefix, uni.SearchQuotesCount),
		log:        log,
	}
}

// Indices aggregates quotes for the configured named indices.
func (s *Service) Indices(ctx context.Context) (*AggregationResult, error) {
	symbols := make([]string, len(s.uni.Indices))
	names := make([]string, len(s.uni.Indices))
	for i, idx := range s.uni.Indices {
		symbols[i] = idx.Symbol
		names[i] = idx.Name
	}
	return s.aggregator.Fetch(ctx, BatchRequest{Symbols: symbols, Names: names})
}

// Stocks aggregates quotes for the curated equity universe.
func (s *Service) Stocks(ctx context.Context) (*AggregationResult, error) {
	return s.aggregator.Fetch(ctx, BatchRequest{Symbols: s.uni.Stocks})
}

// QuotesFor aggregates quotes for an arbitrary symbol list (watchlist and
// portfolio valuation).
func (s *Service) QuotesFor(ctx context.Context, symbols []string) (*AggregationResult, error) {
	return s.aggregator.Fetch(ctx, BatchRequest{Symbols: symbols})
}

// TopMovers derives gainers and losers over the equity universe. Symbols
// that fail aggregation are simply missing from the ranking.
func (s *Service) TopMovers(ctx context.Context) (*RankedMovers, error) {
	agg, err := s.Stocks(ctx)
	if err != nil {
		return nil, err
	}
	movers := RankMovers(agg, s.uni.MoversTopN)
	return &movers, nil
}

// QuoteDetail fetches one symbol with its detail bundle. Unlike a batch,
// a failure here is total and surfaces to the caller.
func (s *Service) QuoteDetail(ctx context.Context, symbol string) (*QuoteRecord, error) {
	agg, err := s.aggregator.Fetch(ctx, BatchRequest{Symbols: []string{symbol}, WithDetail: true})
	if err != nil {
		return nil, fmt.Errorf("quote %s: %w", symbol, err)
	}
	return &agg.Quotes[0], nil
}

// History returns the reshaped chart series for one symbol and period token.
func (s *Service) History(ctx context.Context, symbol, period string) (*HistoricalSeries, error) {
	return s.history.Series(ctx, symbol, period)
}

// Search runs the filtered symbol search.
func (s *Service) Search(ctx context.Context, query string) ([]SearchMatch, error) {
	return s.search.Search(ctx, query)
}

// Ping checks provider reachability with a single quote fetch against the
// first configured index. Used by the health endpoint.
func (s *Service) Ping(ctx context.Context) error {
	if len(s.uni.Indices) == 0 {
		return nil
	}
	_, err := s.gw.Quote(ctx, s.uni.Indices[0].Symbol)
	return err
}
