package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dankessler/skills-getting-started-with-github-copilot/internal/backend"
	"github.com/dankessler/skills-getting-started-with-github-copilot/internal/board"
	"github.com/dankessler/skills-getting-started-with-github-copilot/internal/config"
	"github.com/dankessler/skills-getting-started-with-github-copilot/internal/web"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := backend.NewClient(cfg.BackendURL,
		backend.WithHTTPClient(&http.Client{Timeout: cfg.BackendTimeout}))
	controller := board.New(client, board.WithBannerTTL(cfg.BannerTTL))

	// Initial fetch. A failed load renders the failure notice until the
	// next action-triggered refresh succeeds.
	go controller.Dispatch(ctx, board.Loaded{})

	handler := web.NewHandler(controller)

	server := &http.Server{
		Addr:         cfg.HTTPAddress,
		Handler:      handler.Routes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("activity board listening on %s", cfg.HTTPAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-shutdownCh
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
