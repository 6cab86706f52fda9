package main

import (
	"fmt"

	"go-resume-backend/config"
	"go-resume-backend/internal/repository/postgres"
	"go-resume-backend/pkg/database"
	"go-resume-backend/pkg/logger"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema",
	Long:  "Create missing tables and indexes. With --recreate every table is dropped first and all data is lost.",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

var migrateRecreate bool

func init() {
	migrateCmd.Flags().BoolVar(&migrateRecreate, "recreate", false, "Drop and recreate every table")

	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	ctx := cmd.Context()
	pool, err := database.NewPostgresConnection(ctx, cfg.DatabaseURL, database.PoolOptions{
		MaxConns:       2,
		MinConns:       1,
		SimpleProtocol: cfg.DBSimpleProtocol,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	schema := postgres.NewSchemaManager(pool)
	if migrateRecreate {
		if err := schema.RecreateSchema(ctx); err != nil {
			return err
		}
		logger.Log.Warn("database schema recreated")
		return nil
	}

	if err := schema.EnsureSchema(ctx); err != nil {
		return err
	}
	logger.Log.Info("database schema up to date")
	return nil
}
