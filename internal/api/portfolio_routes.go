package api

import (
	"encoding/json"
	"net/http"

	"github.com/niveshlabs/nivesh-backend/internal/models"
)

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	holdings, err := s.portRepo.List(r.Context())
	if err != nil {
		s.log.Errorf("portfolio list failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch portfolio")
		return
	}
	if holdings == nil {
		holdings = []models.Holding{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"holdings": holdings,
		"count":    len(holdings),
	})
}

// handlePortfolioValue joins holdings with live quotes. Holdings whose
// symbol failed aggregation still appear, flagged unquoted and excluded
// from the live totals.
func (s *Server) handlePortfolioValue(w http.ResponseWriter, r *http.Request) {
	holdings, err := s.portRepo.List(r.Context())
	if err != nil {
		s.log.Errorf("portfolio list failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch portfolio")
		return
	}
	if len(holdings) == 0 {
		writeJSON(w, http.StatusOK, map[string]any{
			"success":  true,
			"holdings": []any{},
			"summary":  map[string]float64{"invested": 0, "currentValue": 0, "profitLoss": 0},
		})
		return
	}

	symbols := make([]string, len(holdings))
	for i, h := range holdings {
		symbols[i] = h.Symbol
	}

	agg, err := s.mkt.QuotesFor(r.Context(), symbols)
	if err != nil {
		s.log.Errorf("portfolio valuation failed: %v", err)
		writeError(w, http.StatusBadGateway, "failed to fetch quotes for portfolio valuation")
		return
	}

	prices := make(map[string]float64, agg.Succeeded)
	for _, q := range agg.Quotes {
		prices[q.Symbol] = q.Price
	}

	var totalInvested, totalCurrent float64
	values := make([]models.HoldingValue, len(holdings))
	for i, h := range holdings {
		hv := models.HoldingValue{
			Holding:  h,
			Invested: h.Quantity * h.AvgPrice,
		}
		if price, ok := prices[h.Symbol]; ok {
			hv.Quoted = true
			hv.QuotedPrice = price
			hv.CurrentValue = h.Quantity * price
			hv.ProfitLoss = hv.CurrentValue - hv.Invested
			if hv.Invested > 0 {
				hv.ProfitLossPct = hv.ProfitLoss / hv.Invested * 100
			}
			totalInvested += hv.Invested
			totalCurrent += hv.CurrentValue
		}
		values[i] = hv
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"holdings": values,
		"summary": map[string]float64{
			"invested":     totalInvested,
			"currentValue": totalCurrent,
			"profitLoss":   totalCurrent - totalInvested,
		},
	})
}

type portfolioAddRequest struct {
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

func (s *Server) handlePortfolioAdd(w http.ResponseWriter, r *http.Request) {
	var req portfolioAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if !validSymbol(req.Symbol) {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}
	if req.Quantity <= 0 || req.Price <= 0 {
		writeError(w, http.StatusBadRequest, "quantity and price must be positive")
		return
	}

	holding, err := s.portRepo.Upsert(r.Context(), req.Symbol, req.Quantity, req.Price)
	if err != nil {
		s.log.Errorf("portfolio add %s failed: %v", req.Symbol, err)
		writeError(w, http.StatusInternalServerError, "failed to add holding")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"holding": holding,
	})
}

func (s *Server) handlePortfolioRemove(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")
	if !validSymbol(symbol) {
		writeError(w, http.StatusBadRequest, "invalid symbol")
		return
	}

	removed, err := s.portRepo.Remove(r.Context(), symbol)
	if err != nil {
		s.log.Errorf("portfolio remove %s failed: %v", symbol, err)
		writeError(w, http.StatusInternalServerError, "failed to remove holding")
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "symbol not in portfolio")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"symbol":  symbol,
	})
}
