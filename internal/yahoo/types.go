package yahoo

import "time"

// Quote is one result entry from the v7 quote endpoint. Every numeric field
// may be absent for thinly-traded symbols, so all of them are pointers;
// callers decide how absence maps onto their own contract.
type Quote struct {
	Symbol                     string   `json:"symbol"`
	ShortName                  *string  `json:"shortName"`
	LongName                   *string  `json:"longName"`
	RegularMarketPrice         *float64 `json:"regularMarketPrice"`
	RegularMarketChange        *float64 `json:"regularMarketChange"`
	RegularMarketChangePercent *float64 `json:"regularMarketChangePercent"`
	RegularMarketPreviousClose *float64 `json:"regularMarketPreviousClose"`
	RegularMarketOpen          *float64 `json:"regularMarketOpen"`
	RegularMarketDayHigh       *float64 `json:"regularMarketDayHigh"`
	RegularMarketDayLow        *float64 `json:"regularMarketDayLow"`
	RegularMarketVolume        *float64 `json:"regularMarketVolume"`
	MarketCap                  *float64 `json:"marketCap"`
	MarketState                *string  `json:"marketState"`
}

type quoteResponse struct {
	QuoteResponse struct {
		Result []Quote   `json:"result"`
		Error  *apiError `json:"error"`
	} `json:"quoteResponse"`
}

// Value is the {raw, fmt} wrapper the quoteSummary endpoint puts around
// every number.
type Value struct {
	Raw *float64 `json:"raw"`
}

// Float returns the wrapped value, or nil when the wrapper or its raw field
// is absent.
func (v *Value) Float() *float64 {
	if v == nil {
		return nil
	}
	return v.Raw
}

// PriceBlock is the quoteSummary "price" module.
type PriceBlock struct {
	Symbol                     string  `json:"symbol"`
	ShortName                  *string `json:"shortName"`
	LongName                   *string `json:"longName"`
	RegularMarketPrice         *Value  `json:"regularMarketPrice"`
	RegularMarketChange        *Value  `json:"regularMarketChange"`
	RegularMarketChangePercent *Value  `json:"regularMarketChangePercent"`
	RegularMarketPreviousClose *Value  `json:"regularMarketPreviousClose"`
	RegularMarketOpen          *Value  `json:"regularMarketOpen"`
	RegularMarketDayHigh       *Value  `json:"regularMarketDayHigh"`
	RegularMarketDayLow        *Value  `json:"regularMarketDayLow"`
	RegularMarketVolume        *Value  `json:"regularMarketVolume"`
	MarketCap                  *Value  `json:"marketCap"`
	MarketState                *string `json:"marketState"`
}

// SummaryDetail is the quoteSummary "summaryDetail" module.
type SummaryDetail struct {
	FiftyTwoWeekHigh *Value `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow  *Value `json:"fiftyTwoWeekLow"`
	DividendYield    *Value `json:"dividendYield"`
	Beta             *Value `json:"beta"`
	TrailingPE       *Value `json:"trailingPE"`
	ForwardPE        *Value `json:"forwardPE"`
}

// KeyStatistics is the quoteSummary "defaultKeyStatistics" module. Beta and
// forward P/E also appear here for symbols where summaryDetail omits them.
type KeyStatistics struct {
	Beta      *Value `json:"beta"`
	ForwardPE *Value `json:"forwardPE"`
}

// Summary is one quoteSummary result: the detail bundle for a symbol.
// Any module may be missing even on a successful call.
type Summary struct {
	Price         *PriceBlock    `json:"price"`
	SummaryDetail *SummaryDetail `json:"summaryDetail"`
	KeyStatistics *KeyStatistics `json:"defaultKeyStatistics"`
}

type summaryResponse struct {
	QuoteSummary struct {
		Result []Summary `json:"result"`
		Error  *apiError `json:"error"`
	} `json:"quoteSummary"`
}

// Bar is one historical trading period. Bars whose close the provider
// reports as null (holidays, halts) are dropped by the client.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"chart"`
}

// SearchQuote is one candidate from the search endpoint.
type SearchQuote struct {
	Symbol    string  `json:"symbol"`
	ShortName *string `json:"shortname"`
	LongName  *string `json:"longname"`
	Exchange  string  `json:"exchange"`
	ExchDisp  string  `json:"exchDisp"`
	QuoteType string  `json:"quoteType"`
}

type searchResponse struct {
	Quotes []SearchQuote `json:"quotes"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
