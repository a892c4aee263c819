package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hospital-admin-api/internal"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewProduction()
			if err != nil {
				return fmt.Errorf("cannot initialize zap logger: %w", err)
			}

			cfg, err := internal.LoadConfig()
			if err != nil {
				logger.Error("config error", zap.Error(err))
				return err
			}

			app, err := internal.NewApp(cmd.Context(), logger, cfg)
			if err != nil {
				logger.Error("init app failed", zap.Error(err))
				return err
			}
			defer app.Close()

			app.InitControllers()

			if err = app.Run(cmd.Context()); err != nil {
				app.Logger().Error("hospitaladmin stopped with error", zap.Error(err))
				return err
			}
			return nil
		},
	}
}
