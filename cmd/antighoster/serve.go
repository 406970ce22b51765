package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/antighoster/antighoster/internal/api"
	"github.com/antighoster/antighoster/internal/beeper"
	"github.com/antighoster/antighoster/internal/chatcache"
	"github.com/antighoster/antighoster/internal/config"
	"github.com/antighoster/antighoster/internal/logger"
	"github.com/antighoster/antighoster/internal/settings"
)

func newServeCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Override ANTIGHOSTER_HTTP_PORT")
	return cmd
}

func runServe(portOverride int) error {
	log := logger.New("antighoster")

	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if portOverride != 0 {
		cfg.HTTPPort = portOverride
	}

	log.Info().
		Str("beeper_base_url", cfg.BeeperBaseURL).
		Int("http_port", cfg.HTTPPort).
		Msg("antighoster starting…")

	client := beeper.NewClient(cfg)
	cache := chatcache.New(client, cfg.CacheTTL)
	store := settings.NewStore(cfg.SettingsPath)

	router := api.NewRouter(client, cache, store, cfg)
	server := &http.Server{
		Addr:         cfg.GetHTTPAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server…")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
	return nil
}
