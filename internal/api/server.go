package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/niveshlabs/nivesh-backend/internal/market"
	"github.com/niveshlabs/nivesh-backend/internal/notifications"
	"github.com/niveshlabs/nivesh-backend/internal/repository"
)

var symbolRegexp = regexp.MustCompile(`^[A-Za-z0-9.^&\-]{1,24}$`)

type Server struct {
	pool       *pgxpool.Pool
	mkt        *market.Service
	watchRepo  *repository.WatchlistRepo
	portRepo   *repository.PortfolioRepo
	httpServer *http.Server
	apiKey     string
	notify     *notifications.Sender
	log        *logrus.Logger
}

func NewServer(pool *pgxpool.Pool, mkt *market.Service, port int, apiKey, corsOrigin string, notify *notifications.Sender, log *logrus.Logger) *Server {
	s := &Server{
		pool:      pool,
		mkt:       mkt,
		watchRepo: repository.NewWatchlistRepo(pool),
		portRepo:  repository.NewPortfolioRepo(pool),
		apiKey:    apiKey,
		notify:    notify,
		log:       log,
	}

	mux := http.NewServeMux()

	// Market routes
	mux.HandleFunc("GET /v1/market/indices", s.handleIndices)
	mux.HandleFunc("GET /v1/market/stocks", s.handleStocks)
	mux.HandleFunc("GET /v1/market/movers", s.handleMovers)
	mux.HandleFunc("GET /v1/market/quote/{symbol}", s.handleQuote)
	mux.HandleFunc("GET /v1/market/history/{symbol}", s.handleHistory)
	mux.HandleFunc("GET /v1/market/search", s.handleSearch)

	// Watchlist routes
	mux.HandleFunc("GET /v1/watchlist", s.handleWatchlist)
	mux.HandleFunc("GET /v1/watchlist/quotes", s.handleWatchlistQuotes)
	mux.HandleFunc("POST /v1/watchlist", s.handleWatchlistAdd)
	mux.HandleFunc("DELETE /v1/watchlist/{symbol}", s.handleWatchlistRemove)

	// Portfolio routes
	mux.HandleFunc("GET /v1/portfolio", s.handlePortfolio)
	mux.HandleFunc("GET /v1/portfolio/value", s.handlePortfolioValue)
	mux.HandleFunc("POST /v1/portfolio", s.handlePortfolioAdd)
	mux.HandleFunc("DELETE /v1/portfolio/{symbol}", s.handlePortfolioRemove)

	// Health check (no auth required)
	mux.HandleFunc("GET /health", s.handleHealth)

	handler := s.authMiddleware(corsMiddleware(mux, corsOrigin))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

func (s *Server) Start() error {
	s.log.WithField("addr", s.httpServer.Addr).Info("REST API server started")
	if s.apiKey != "" {
		s.log.Info("mutation auth: enabled (Bearer token)")
	} else {
		s.log.Warn("mutation auth: disabled (no API_KEY configured)")
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// --- middleware ---

// authMiddleware guards mutating requests. Read-only market data stays
// public, matching the web client's unauthenticated browse mode.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey == "" || r.Method == http.MethodGet || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		auth := r.Header.Get("Authorization")
		if auth == "" {
			writeError(w, http.StatusUnauthorized, "missing Authorization header")
			return
		}

		token := strings.TrimPrefix(auth, "Bearer ")
		if token == auth || token != s.apiKey {
			writeError(w, http.StatusUnauthorized, "invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func corsMiddleware(next http.Handler, allowOrigin string) http.Handler {
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- validation helpers ---

func validSymbol(symbol string) bool {
	return symbolRegexp.MatchString(symbol)
}

// --- response helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError emits the uniform failure envelope: an explicit success flag
// plus a short message.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}
