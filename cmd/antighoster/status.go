package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/antighoster/antighoster/internal/beeper"
	"github.com/antighoster/antighoster/internal/config"
	"github.com/antighoster/antighoster/internal/logger"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Probe Beeper Desktop connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.NewConsole("antighoster")

			cfg, err := config.New()
			if err != nil {
				return err
			}

			client := beeper.NewClient(cfg)
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			if err := client.Probe(ctx); err != nil {
				log.Error().Err(err).Msg("not connected")
				return fmt.Errorf("not connected: %s", err)
			}
			fmt.Println("connected")
			return nil
		},
	}
}
