package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldserve/dispatchboard/cmd/cli/commands"
	"github.com/fieldserve/dispatchboard/internal/config"
	"github.com/fieldserve/dispatchboard/pkg/core/services"
	"github.com/fieldserve/dispatchboard/pkg/core/store"
	"github.com/fieldserve/dispatchboard/pkg/postgres"
	"github.com/fieldserve/dispatchboard/pkg/snapshot"
	"github.com/fieldserve/dispatchboard/pkg/utils/logging"
)

var (
	env string
	app = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dispatchboard",
		Short: "Dispatch board CLI - reconcile schedules and manage technician bookings",
		Long:  `A CLI for syncing the scheduling source of truth, inspecting technicians and jobs, and checking booking conflicts before moves.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			teardownApp()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.SyncCmd(app))
	rootCmd.AddCommand(commands.TechniciansCmd(app))
	rootCmd.AddCommand(commands.JobsCmd(app))
	rootCmd.AddCommand(commands.CheckConflictCmd(app))
	rootCmd.AddCommand(commands.MoveJobCmd(app))
	rootCmd.AddCommand(commands.DuplicateJobCmd(app))
	rootCmd.AddCommand(commands.BulkUpdateCmd(app))
	rootCmd.AddCommand(commands.BulkDeleteCmd(app))
	rootCmd.AddCommand(commands.SaveSnapshotCmd(app))
	rootCmd.AddCommand(commands.LoadSnapshotCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, database, snapshot backend, and the
// in-memory store, then rehydrates the store from the latest snapshot so
// read commands work without a fresh sync
func initApp() error {
	ctx := context.Background()

	logger, err := logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	database, err := postgres.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(ctx); err != nil {
		database.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	snapshots, err := buildSnapshotStore(ctx, cfg)
	if err != nil {
		database.Close()
		return err
	}

	st := store.New()
	if _, _, err := services.LoadSnapshot(ctx, snapshots, st, logger); err != nil {
		logger.Warn("could not restore snapshot, starting empty")
	}

	app.Cfg = cfg
	app.Source = database
	app.Store = st
	app.Snapshots = snapshots
	app.Database = database
	app.Logger = logger
	app.Ctx = ctx

	return nil
}

func buildSnapshotStore(ctx context.Context, cfg *config.Config) (snapshot.Store, error) {
	switch cfg.Snapshot.Driver {
	case "sqlite":
		backend, err := snapshot.OpenSQLiteStore(cfg.Snapshot.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite snapshot store: %w", err)
		}
		return backend, nil
	case "s3":
		backend, err := snapshot.NewS3Store(ctx, snapshot.S3Config{
			Region:    cfg.Snapshot.Region,
			Bucket:    cfg.Snapshot.Bucket,
			Key:       cfg.Snapshot.Key,
			Endpoint:  cfg.Snapshot.Endpoint,
			PathStyle: cfg.Snapshot.PathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open s3 snapshot store: %w", err)
		}
		return backend, nil
	default:
		return snapshot.NewFileStore(cfg.Snapshot.Path), nil
	}
}

func teardownApp() {
	if app.Logger != nil {
		app.Logger.Sync()
	}
	if app.Database != nil {
		app.Database.Close()
	}
	if closer, ok := app.Snapshots.(interface{ Close() error }); ok {
		closer.Close()
	}
}
