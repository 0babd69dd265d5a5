package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/niveshlabs/nivesh-backend/internal/market"
)

func (s *Server) handleIndices(w http.ResponseWriter, r *http.Request) {
	agg, err := s.mkt.Indices(r.Context())
	if err != nil {
		s.log.Errorf("indices aggregation failed: %v", err)
		s.writeAggregateFailure(w, "indices", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"indices":     agg.Quotes,
		"count":       agg.Succeeded,
		"lastUpdated": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleStocks(w http.ResponseWriter, r *http.Request) {
	agg, err := s.mkt.Stocks(r.Context())
	if err != nil {
		s.log.Errorf("stocks aggregation failed: %v", err)
		s.writeAggregateFailure(w, "stocks", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"stocks":      agg.Quotes,
		"count":       agg.Succeeded,
		"lastUpdated": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleMovers(w http.ResponseWriter, r *http.Request) {
	movers, err := s.mkt.TopMovers(r.Context())
	if err != nil {
		s.log.Errorf("movers aggregation failed: %v", err)
		writeError(w, http.StatusBadGateway, "failed to fetch market movers")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    movers,
	})
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")
	if !validSymbol(symbol) {
		writeError(w, http.StatusBadRequest, "invalid symbol")
		return
	}

	quote, err := s.mkt.QuoteDetail(r.Context(), symbol)
	if err != nil {
		s.log.Errorf("quote %s failed: %v", symbol, err)
		writeError(w, http.StatusBadGateway, "failed to fetch quote for "+symbol)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"quote":   quote,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")
	if !validSymbol(symbol) {
		writeError(w, http.StatusBadRequest, "invalid symbol")
		return
	}
	period := r.URL.Query().Get("period")

	series, err := s.mkt.History(r.Context(), symbol, period)
	if err != nil {
		s.log.Errorf("history %s failed: %v", symbol, err)
		writeError(w, http.StatusBadGateway, "failed to fetch history for "+symbol)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    series.Points,
		"period":  series.Period,
		"symbol":  series.Symbol,
		"count":   series.Count,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	results, err := s.mkt.Search(r.Context(), query)
	if err != nil {
		s.log.Errorf("search %q failed: %v", query, err)
		writeError(w, http.StatusBadGateway, "search failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"results": results,
		"query":   query,
		"total":   len(results),
	})
}

// writeAggregateFailure distinguishes "every symbol failed" from transport
// trouble; both surface as a top-level failure, never as an empty success.
func (s *Server) writeAggregateFailure(w http.ResponseWriter, what string, err error) {
	if errors.Is(err, market.ErrAllSymbolsFailed) {
		s.notifyOutage(what)
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"success": false,
			"error":   "no " + what + " data available from the market data provider",
			what:      []any{},
		})
		return
	}
	writeError(w, http.StatusBadGateway, "failed to fetch "+what)
}

// notifyOutage raises a webhook notice for a total provider failure, at most
// one per topic per 15 minutes.
func (s *Server) notifyOutage(what string) {
	if s.notify == nil || !s.notify.Enabled() {
		return
	}
	go s.notify.SendThrottled("outage:"+what,
		fmt.Sprintf("provider outage: all %s symbol fetches failed", what),
		15*time.Minute)
}
