package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// NamedSymbol pairs a provider ticker with the display name shown to clients.
type NamedSymbol struct {
	Symbol string `yaml:"symbol"`
	Name   string `yaml:"name"`
}

// Universe is the immutable market configuration: which indices and equities
// the aggregated endpoints cover, and how symbols are classified.
type Universe struct {
	Indices           []NamedSymbol `yaml:"indices"`
	Stocks            []string      `yaml:"stocks"`
	ExchangeSuffixes  []string      `yaml:"exchange_suffixes"`
	IndexPrefix       string        `yaml:"index_prefix"`
	MoversTopN        int           `yaml:"movers_top_n"`
	SearchQuotesCount int           `yaml:"search_quotes_count"`
}

// LoadUniverse reads the universe from a YAML file. An empty path (or a
// missing file) yields the built-in NSE/BSE defaults.
func LoadUniverse(path string) (*Universe, error) {
	uni := defaultUniverse()

	if path == "" {
		return uni, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return uni, nil
		}
		return nil, fmt.Errorf("read universe: %w", err)
	}
	if err := yaml.Unmarshal(data, uni); err != nil {
		return nil, fmt.Errorf("parse universe: %w", err)
	}

	if len(uni.Indices) == 0 {
		return nil, fmt.Errorf("universe: indices list is empty")
	}
	if len(uni.Stocks) == 0 {
		return nil, fmt.Errorf("universe: stocks list is empty")
	}
	applyUniverseDefaults(uni)
	return uni, nil
}

func defaultUniverse() *Universe {
	uni := &Universe{
		Indices: []NamedSymbol{
			{Symbol: "^NSEI", Name: "NIFTY 50"},
			{Symbol: "^BSESN", Name: "SENSEX"},
			{Symbol: "^NSEBANK", Name: "NIFTY BANK"},
		},
		Stocks: []string{
			"RELIANCE.NS", "TCS.NS", "HDFCBANK.NS", "INFY.NS", "ICICIBANK.NS",
			"HINDUNILVR.NS", "SBIN.NS", "BHARTIARTL.NS", "ITC.NS", "KOTAKBANK.NS",
			"LT.NS", "AXISBANK.NS", "ASIANPAINT.NS", "MARUTI.NS", "BAJFINANCE.NS",
			"HCLTECH.NS", "WIPRO.NS", "SUNPHARMA.NS", "TITAN.NS", "ULTRACEMCO.NS",
		},
	}
	applyUniverseDefaults(uni)
	return uni
}

func applyUniverseDefaults(uni *Universe) {
	if len(uni.ExchangeSuffixes) == 0 {
		uni.ExchangeSuffixes = []string{".NS", ".BO"}
	}
	if uni.IndexPrefix == "" {
		uni.IndexPrefix = "^"
	}
	if uni.MoversTopN <= 0 {
		uni.MoversTopN = 5
	}
	if uni.SearchQuotesCount <= 0 {
		uni.SearchQuotesCount = 15
	}
}
