package market

import (
	"context"
	"fmt"
	"strings"
)

// SearchFilter narrows raw provider search matches to the exchanges this
// service covers and classifies each survivor as index or equity.
type SearchFilter struct {
	gw          Gateway
	suffixes    []string
	indexPrefix string
	quotesCount int
}

func NewSearchFilter(gw Gateway, suffixes []string, indexPrefix string, quotesCount int) *SearchFilter {
	if indexPrefix == "" {
		indexPrefix = "^"
	}
	if quotesCount <= 0 {
		quotesCount = 15
	}
	return &SearchFilter{
		gw:          gw,
		suffixes:    suffixes,
		indexPrefix: indexPrefix,
		quotesCount: quotesCount,
	}
}

// Search runs a free-text query. Empty or whitespace-only queries
// short-circuit to an empty result without touching the provider. Candidates
// outside the covered exchanges are silently dropped.
func (s *SearchFilter) Search(ctx context.Context, query string) ([]SearchMatch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []SearchMatch{}, nil
	}

	candidates, err := s.gw.Search(ctx, query, s.quotesCount, 0)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	matches := make([]SearchMatch, 0, len(candidates))
	for _, c := range candidates {
		if !s.covered(c.Symbol) {
			continue
		}
		matches = append(matches, SearchMatch{
			Symbol:   c.Symbol,
			Name:     pickName(c.ShortName, c.LongName, c.Symbol),
			Exchange: c.Exchange,
			Type:     c.QuoteType,
			IsIndex:  strings.HasPrefix(c.Symbol, s.indexPrefix),
		})
	}
	return matches, nil
}

func (s *SearchFilter) covered(symbol string) bool {
	if strings.HasPrefix(symbol, s.indexPrefix) {
		return true
	}
	for _, suffix := range s.suffixes {
		if strings.HasSuffix(symbol, suffix) {
			return true
		}
	}
	return false
}
