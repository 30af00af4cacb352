package cmd

import (
	"fmt"

	"github.com/itsakphyo/myanlang-translation-platform/internal/config"
	"github.com/itsakphyo/myanlang-translation-platform/internal/database"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Long: `Create or update the marketplace tables (languages, freelancers, QA members,
language pairs, jobs, tasks) and the indexes the claim queries depend on.
Database settings come from the config file or APP_ environment variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logrus.WithFields(logrus.Fields{
			"host":     cfg.Database.Host,
			"port":     cfg.Database.Port,
			"database": cfg.Database.DBName,
		}).Info("connecting to database")

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer database.Close(db)

		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}

		logrus.Info("migrations applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().String("config", "", "config file path (default: search ./, ./config, $HOME/.myanlang)")
}
