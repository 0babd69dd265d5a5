package market

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/niveshlabs/nivesh-backend/internal/yahoo"
)

var detailModules = []string{"price", "summaryDetail", "defaultKeyStatistics"}

// BatchRequest describes one aggregation: the symbols to fetch, optional
// display-name overrides aligned by index (may be nil or shorter), and
// whether to also fetch the detail bundle per symbol.
type BatchRequest struct {
	Symbols    []string
	Names      []string
	WithDetail bool
}

// Aggregator fans a symbol list out to the gateway concurrently and collects
// per-symbol outcomes independently. It holds no state across calls.
type Aggregator struct {
	gw  Gateway
	log *logrus.Logger
}

func NewAggregator(gw Gateway, log *logrus.Logger) *Aggregator {
	return &Aggregator{gw: gw, log: log}
}

// Fetch issues one quote fetch (plus, when requested, one detail fetch) per
// symbol, all concurrently, and joins on the full set. Results land in a
// fixed slice indexed by request position, so output order always matches
// request order no matter which call finished first. A failed symbol is
// logged and dropped; it never affects its neighbours. When nothing
// survives, the whole batch fails with ErrAllSymbolsFailed.
func (a *Aggregator) Fetch(ctx context.Context, req BatchRequest) (*AggregationResult, error) {
	results := make([]*QuoteRecord, len(req.Symbols))

	var wg sync.WaitGroup
	for i, symbol := range req.Symbols {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()

			rec, err := a.fetchOne(ctx, symbol, nameAt(req.Names, i), req.WithDetail)
			if err != nil {
				a.log.WithFields(logrus.Fields{
					"symbol": symbol,
				}).Warnf("dropping symbol from aggregate: %v", err)
				return
			}
			results[i] = rec
		}(i, symbol)
	}
	wg.Wait()

	out := &AggregationResult{
		Quotes:    make([]QuoteRecord, 0, len(req.Symbols)),
		Requested: len(req.Symbols),
	}
	for _, rec := range results {
		if rec != nil {
			out.Quotes = append(out.Quotes, *rec)
			out.Succeeded++
		}
	}

	if out.Succeeded == 0 {
		return nil, ErrAllSymbolsFailed
	}
	return out, nil
}

func (a *Aggregator) fetchOne(ctx context.Context, symbol, name string, withDetail bool) (*QuoteRecord, error) {
	quote, err := a.gw.Quote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	var detail *yahoo.Summary
	if withDetail {
		// The bundle may legitimately be unavailable even when the plain
		// quote succeeds; fall back to quote-only normalization.
		d, derr := a.gw.QuoteSummary(ctx, symbol, detailModules)
		if derr != nil {
			a.log.WithField("symbol", symbol).Debugf("detail bundle unavailable: %v", derr)
		} else {
			detail = d
		}
	}

	rec, err := Normalize(quote, detail, name)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func nameAt(names []string, i int) string {
	if i < len(names) {
		return names[i]
	}
	return ""
}
