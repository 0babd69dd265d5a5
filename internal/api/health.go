package api

import (
	"context"
	"net/http"
	"time"
)

type healthResponse struct {
	Status    string         `json:"status"`
	Timestamp string         `json:"timestamp"`
	Services  healthServices `json:"services"`
}

type healthServices struct {
	Database   string `json:"database"`
	MarketData string `json:"marketData"`
}

// handleHealth reports both backing services. Overall status degrades when
// either the database or the market data provider is down; the response
// itself stays 200 so orchestrators read the body, not the code.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"

	dbStatus := "connected"
	if err := s.pool.Ping(r.Context()); err != nil {
		dbStatus = "disconnected"
		status = "degraded"
	}

	providerStatus := "reachable"
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()
	if err := s.mkt.Ping(ctx); err != nil {
		providerStatus = "unreachable"
		status = "degraded"
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services: healthServices{
			Database:   dbStatus,
			MarketData: providerStatus,
		},
	})
}
