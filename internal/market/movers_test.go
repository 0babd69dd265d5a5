package market

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func moversInput(changes ...float64) *AggregationResult {
	agg := &AggregationResult{Requested: len(changes), Succeeded: len(changes)}
	for i, ch := range changes {
		agg.Quotes = append(agg.Quotes, QuoteRecord{
			Symbol:        string(rune('A'+i)) + ".NS",
			ChangePercent: ch,
		})
	}
	return agg
}

func TestRankMovers(t *testing.T) {
	agg := moversInput(1.5, -2.0, 0.3, 4.2, -0.7, 2.8, -3.1, 0.0, 1.1, -1.4, 0.9, 3.5)

	m := RankMovers(agg, 5)
	require.Len(t, m.Gainers, 5)
	require.Len(t, m.Losers, 5)
	require.Equal(t, 12, m.TotalStocks)

	require.Equal(t, 4.2, m.Gainers[0].ChangePercent)
	for i := 1; i < len(m.Gainers); i++ {
		require.LessOrEqual(t, m.Gainers[i].ChangePercent, m.Gainers[i-1].ChangePercent)
	}

	require.Equal(t, -3.1, m.Losers[0].ChangePercent)
	for i := 1; i < len(m.Losers); i++ {
		require.GreaterOrEqual(t, m.Losers[i].ChangePercent, m.Losers[i-1].ChangePercent)
	}
}

func TestRankMovers_InputUntouched(t *testing.T) {
	agg := moversInput(3.0, -1.0, 2.0)

	_ = RankMovers(agg, 2)
	require.Equal(t, 3.0, agg.Quotes[0].ChangePercent)
	require.Equal(t, -1.0, agg.Quotes[1].ChangePercent)
	require.Equal(t, 2.0, agg.Quotes[2].ChangePercent)
}

func TestRankMovers_Idempotent(t *testing.T) {
	agg := moversInput(0.5, 0.5, -0.5, 1.0, -1.0, 0.0)

	first := RankMovers(agg, 3)
	second := RankMovers(agg, 3)
	require.Equal(t, first, second)
}

func TestRankMovers_FewerThanTwoN(t *testing.T) {
	agg := moversInput(2.0, -1.0, 0.5)

	m := RankMovers(agg, 5)
	require.Len(t, m.Gainers, 3)
	require.Len(t, m.Losers, 3)
	require.Equal(t, 3, m.TotalStocks)

	// With 3 survivors and N=5 the lists overlap; both must still cover
	// every survivor.
	require.Equal(t, 2.0, m.Gainers[0].ChangePercent)
	require.Equal(t, -1.0, m.Losers[0].ChangePercent)
}

func TestRankMovers_StableTies(t *testing.T) {
	agg := moversInput(1.0, 1.0, 1.0)

	m := RankMovers(agg, 3)
	require.Equal(t, "A.NS", m.Gainers[0].Symbol)
	require.Equal(t, "B.NS", m.Gainers[1].Symbol)
	require.Equal(t, "C.NS", m.Gainers[2].Symbol)
}

func TestRankMovers_DefaultTopN(t *testing.T) {
	agg := moversInput(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12)

	m := RankMovers(agg, 0)
	require.Len(t, m.Gainers, 5)
	require.Len(t, m.Losers, 5)
}
