package main

import (
	"github.com/deppfellow/showtracker/internal/config"
	"github.com/deppfellow/showtracker/internal/database"
	"github.com/deppfellow/showtracker/internal/logger"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded SQL migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			log := logger.NewLoggerWithService(cfg.Observability, nil)

			return database.Migrate(cmd.Context(), &log, cfg)
		},
	}
}
