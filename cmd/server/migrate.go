package main

import (
	"github.com/spf13/cobra"
	"github.com/tasknest/tasknest-api/internal/database"
	"go.uber.org/zap"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := database.Open(cfg, logger)
			if err != nil {
				return err
			}
			if err := database.Migrate(db, logger); err != nil {
				return err
			}

			logger.Info("migrations complete", zap.String("driver", cfg.DBDriver))
			return nil
		},
	}
}
