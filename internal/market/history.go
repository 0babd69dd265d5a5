package market

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Period maps a relative-period token onto a lookback window and the bar
// interval requested from the provider.
type Period struct {
	Days     int
	Interval string
}

// PeriodTable resolves period tokens to concrete date ranges. The mapping is
// pure: it depends only on the token and the current time.
type PeriodTable map[string]Period

const defaultPeriodToken = "1mo"

// DefaultPeriods returns the closed token set the history endpoint accepts.
func DefaultPeriods() PeriodTable {
	return PeriodTable{
		"1d":  {Days: 1, Interval: "15m"},
		"5d":  {Days: 5, Interval: "1d"},
		"1mo": {Days: 30, Interval: "1d"},
		"3mo": {Days: 90, Interval: "1d"},
		"6mo": {Days: 180, Interval: "1d"},
		"1y":  {Days: 365, Interval: "1d"},
		"5y":  {Days: 1825, Interval: "1d"},
	}
}

// Resolve maps a token to its date range relative to now. Unrecognized
// tokens silently fall back to the 1mo mapping.
func (t PeriodTable) Resolve(token string, now time.Time) (string, Period, DateRange) {
	p, ok := t[token]
	if !ok {
		token = defaultPeriodToken
		p = t[defaultPeriodToken]
	}
	return token, p, DateRange{
		From: now.AddDate(0, 0, -p.Days),
		To:   now,
	}
}

// HistoryFormatter turns a symbol plus period token into a uniform
// chronologically ascending series of epoch-seconds points.
type HistoryFormatter struct {
	gw      Gateway
	periods PeriodTable
}

func NewHistoryFormatter(gw Gateway, periods PeriodTable) *HistoryFormatter {
	if periods == nil {
		periods = DefaultPeriods()
	}
	return &HistoryFormatter{gw: gw, periods: periods}
}

// Series fetches and reshapes the bars for one symbol. A provider failure
// fails the whole operation: partial history is meaningless for charting.
func (h *HistoryFormatter) Series(ctx context.Context, symbol, periodToken string) (*HistoricalSeries, error) {
	token, period, rng := h.periods.Resolve(periodToken, time.Now())

	bars, err := h.gw.Chart(ctx, symbol, period.Interval, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("history %s: %w", symbol, err)
	}

	points := make([]HistoricalPoint, len(bars))
	for i, b := range bars {
		points[i] = HistoricalPoint{
			Time:   b.Date.Unix(),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		}
	}

	// Providers normally return chronological bars; the sort is a guard
	// against the weaker ordering some mirrors exhibit.
	sort.SliceStable(points, func(i, j int) bool { return points[i].Time < points[j].Time })

	return &HistoricalSeries{
		Symbol: symbol,
		Period: token,
		Points: points,
		Count:  len(points),
	}, nil
}
