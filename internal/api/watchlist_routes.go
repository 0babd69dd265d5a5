package api

import (
	"encoding/json"
	"net/http"

	"github.com/niveshlabs/nivesh-backend/internal/models"
)

func (s *Server) handleWatchlist(w http.ResponseWriter, r *http.Request) {
	items, err := s.watchRepo.List(r.Context())
	if err != nil {
		s.log.Errorf("watchlist list failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch watchlist")
		return
	}
	if items == nil {
		items = []models.WatchlistItem{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"items":   items,
		"count":   len(items),
	})
}

// handleWatchlistQuotes returns live quotes for every watched symbol. An
// empty watchlist is a successful empty response, not a provider failure.
func (s *Server) handleWatchlistQuotes(w http.ResponseWriter, r *http.Request) {
	items, err := s.watchRepo.List(r.Context())
	if err != nil {
		s.log.Errorf("watchlist list failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch watchlist")
		return
	}
	if len(items) == 0 {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"stocks":  []any{},
			"count":   0,
		})
		return
	}

	symbols := make([]string, len(items))
	for i, item := range items {
		symbols[i] = item.Symbol
	}

	agg, err := s.mkt.QuotesFor(r.Context(), symbols)
	if err != nil {
		s.log.Errorf("watchlist quotes failed: %v", err)
		s.writeAggregateFailure(w, "stocks", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stocks":  agg.Quotes,
		"count":   agg.Succeeded,
	})
}

type watchlistAddRequest struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

func (s *Server) handleWatchlistAdd(w http.ResponseWriter, r *http.Request) {
	var req watchlistAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if !validSymbol(req.Symbol) {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	// Best effort: resolve the display name from a live quote when the
	// client did not supply one.
	if req.Name == "" {
		if quote, err := s.mkt.QuoteDetail(r.Context(), req.Symbol); err == nil {
			req.Name = quote.Name
		}
	}

	item, err := s.watchRepo.Add(r.Context(), req.Symbol, req.Name)
	if err != nil {
		s.log.Errorf("watchlist add %s failed: %v", req.Symbol, err)
		writeError(w, http.StatusInternalServerError, "failed to add to watchlist")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"item":    item,
	})
}

func (s *Server) handleWatchlistRemove(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")
	if !validSymbol(symbol) {
		writeError(w, http.StatusBadRequest, "invalid symbol")
		return
	}

	removed, err := s.watchRepo.Remove(r.Context(), symbol)
	if err != nil {
		s.log.Errorf("watchlist remove %s failed: %v", symbol, err)
		writeError(w, http.StatusInternalServerError, "failed to remove from watchlist")
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "symbol not in watchlist")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"symbol":  symbol,
	})
}
