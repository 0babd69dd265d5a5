package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/niveshlabs/nivesh-backend/internal/api"
	"github.com/niveshlabs/nivesh-backend/internal/config"
	"github.com/niveshlabs/nivesh-backend/internal/db"
	"github.com/niveshlabs/nivesh-backend/internal/logging"
	"github.com/niveshlabs/nivesh-backend/internal/market"
	"github.com/niveshlabs/nivesh-backend/internal/notifications"
	"github.com/niveshlabs/nivesh-backend/internal/yahoo"
)

const banner = `
╔══════════════════════════════════════╗
║      Nivesh Markets Backend v0.3     ║
║                                      ║
╚══════════════════════════════════════╝
`

func main() {
	fmt.Print(banner)

	log := logging.New("nivesh-backend")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	cfg.Print()

	uni, err := config.LoadUniverse(cfg.UniverseFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "universe load error: %v\n", err)
		os.Exit(1)
	}
	log.WithFields(logrus.Fields{
		"indices": len(uni.Indices),
		"stocks":  len(uni.Stocks),
	}).Info("market universe loaded")

	// Database
	fmt.Printf("\n[DB] Connecting to %s:%d/%s ...\n", cfg.DBHost, cfg.DBPort, cfg.DBName)
	pool, err := db.Connect(cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "[DB] Connection failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		pool.Close()
		fmt.Println("[DB] Connection pool closed")
	}()

	if err := db.TestConnection(pool); err != nil {
		fmt.Fprintf(os.Stderr, "[DB] Test query failed: %v\n", err)
		os.Exit(1)
	}
	if err := db.EnsureSchema(pool); err != nil {
		fmt.Fprintf(os.Stderr, "[DB] Schema setup failed: %v\n", err)
		os.Exit(1)
	}

	// Market data gateway + service
	gateway := yahoo.NewClient(yahoo.Config{
		QuoteBaseURL:   cfg.QuoteBaseURL,
		SummaryBaseURL: cfg.SummaryBaseURL,
		ChartBaseURL:   cfg.ChartBaseURL,
		SearchBaseURL:  cfg.SearchBaseURL,
		Timeout:        time.Duration(cfg.ProviderTimeoutSeconds) * time.Second,
	}, log)
	mkt := market.NewService(gateway, uni, log)

	// Notifications
	notify := notifications.NewSender(cfg.WebhookURL, cfg.BotName, log)

	// Graceful shutdown context
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := api.NewServer(pool, mkt, cfg.Port, cfg.APIKey, cfg.CORSAllowOrigin, notify, log)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "[API] Server error: %v\n", err)
			os.Exit(1)
		}
	}()

	if notify.Enabled() {
		notify.Send(fmt.Sprintf("backend started on port %d (%d indices, %d stocks in universe)",
			cfg.Port, len(uni.Indices), len(uni.Stocks)))
	}

	fmt.Println("\nAll services started successfully")

	// Wait for shutdown signal
	<-ctx.Done()
	fmt.Println("\nShutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "[API] Shutdown error: %v\n", err)
	}
	fmt.Println("[API] Server closed")
	fmt.Println("Shutdown complete")
}
