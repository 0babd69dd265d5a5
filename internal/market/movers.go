package market

import "sort"

// RankMovers derives top-N gainers and losers from an aggregation. The sort
// is stable, so records with equal percent change keep their input order.
// With fewer than 2N survivors the two lists may overlap; that is accepted
// behaviour, not an error.
func RankMovers(agg *AggregationResult, topN int) RankedMovers {
	if topN <= 0 {
		topN = 5
	}

	ranked := make([]QuoteRecord, len(agg.Quotes))
	copy(ranked, agg.Quotes)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ChangePercent > ranked[j].ChangePercent
	})

	n := min(topN, len(ranked))

	gainers := make([]QuoteRecord, n)
	copy(gainers, ranked[:n])

	// Last n of the sorted slice, reversed so the most negative leads.
	losers := make([]QuoteRecord, n)
	for i := 0; i < n; i++ {
		losers[i] = ranked[len(ranked)-1-i]
	}

	return RankedMovers{
		Gainers:     gainers,
		Losers:      losers,
		TotalStocks: len(ranked),
	}
}
