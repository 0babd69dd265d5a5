package market

import "github.com/niveshlabs/nivesh-backend/internal/yahoo"

// Normalize merges one primary quote and an optional detail bundle for the
// same symbol into a canonical QuoteRecord.
//
// Precedence is per field: a value the bundle's price block actually carries
// supersedes the primary quote, but a field the block omits keeps the quote's
// value. A numeric resolves to zero only when no source supplied it. The
// statistical fields (52-week range, dividend yield, beta, P/E) only ever
// come from the bundle's summaryDetail/defaultKeyStatistics modules and stay
// nil when the bundle is absent; the primary quote does not carry them.
//
// Returns ErrUnusableQuote when no source supplies a symbol or a current
// price.
func Normalize(q *yahoo.Quote, detail *yahoo.Summary, displayName string) (QuoteRecord, error) {
	var rec QuoteRecord

	if q != nil {
		rec = QuoteRecord{
			Symbol:        q.Symbol,
			Name:          pickName(q.ShortName, q.LongName, q.Symbol),
			Price:         num(q.RegularMarketPrice),
			Change:        num(q.RegularMarketChange),
			ChangePercent: num(q.RegularMarketChangePercent),
			PreviousClose: num(q.RegularMarketPreviousClose),
			Open:          num(q.RegularMarketOpen),
			DayHigh:       num(q.RegularMarketDayHigh),
			DayLow:        num(q.RegularMarketDayLow),
			Volume:        num(q.RegularMarketVolume),
			MarketCap:     num(q.MarketCap),
			MarketState:   str(q.MarketState),
		}
	}

	if detail != nil {
		if p := detail.Price; p != nil {
			if p.Symbol != "" {
				rec.Symbol = p.Symbol
			}
			if name := pickName(p.ShortName, p.LongName, ""); name != "" {
				rec.Name = name
			}
			overlay(&rec.Price, p.RegularMarketPrice)
			overlay(&rec.Change, p.RegularMarketChange)
			overlay(&rec.ChangePercent, p.RegularMarketChangePercent)
			overlay(&rec.PreviousClose, p.RegularMarketPreviousClose)
			overlay(&rec.Open, p.RegularMarketOpen)
			overlay(&rec.DayHigh, p.RegularMarketDayHigh)
			overlay(&rec.DayLow, p.RegularMarketDayLow)
			overlay(&rec.Volume, p.RegularMarketVolume)
			overlay(&rec.MarketCap, p.MarketCap)
			if p.MarketState != nil {
				rec.MarketState = *p.MarketState
			}
		}
		if d := detail.SummaryDetail; d != nil {
			rec.FiftyTwoWeekHigh = d.FiftyTwoWeekHigh.Float()
			rec.FiftyTwoWeekLow = d.FiftyTwoWeekLow.Float()
			rec.DividendYield = d.DividendYield.Float()
			rec.Beta = d.Beta.Float()
			rec.TrailingPE = d.TrailingPE.Float()
			rec.ForwardPE = d.ForwardPE.Float()
		}
		if k := detail.KeyStatistics; k != nil {
			if rec.Beta == nil {
				rec.Beta = k.Beta.Float()
			}
			if rec.ForwardPE == nil {
				rec.ForwardPE = k.ForwardPE.Float()
			}
		}
	}

	if displayName != "" {
		rec.Name = displayName
	}
	if rec.Name == "" {
		rec.Name = rec.Symbol
	}

	if rec.Symbol == "" || !hasPrice(q, detail) {
		return QuoteRecord{}, ErrUnusableQuote
	}
	return rec, nil
}

// hasPrice reports whether any source actually supplied a current price.
// A defaulted zero does not count: price is a required field.
func hasPrice(q *yahoo.Quote, detail *yahoo.Summary) bool {
	if detail != nil && detail.Price != nil && detail.Price.RegularMarketPrice.Float() != nil {
		return true
	}
	return q != nil && q.RegularMarketPrice != nil
}

// overlay writes the wrapped value over dst only when the detail block
// actually carries one; an absent wrapper leaves the quote's value intact.
func overlay(dst *float64, v *yahoo.Value) {
	if f := v.Float(); f != nil {
		*dst = *f
	}
}

func pickName(short, long *string, fallback string) string {
	if short != nil && *short != "" {
		return *short
	}
	if long != nil && *long != "" {
		return *long
	}
	return fallback
}

func num(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func str(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
