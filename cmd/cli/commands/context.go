package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/fieldserve/dispatchboard/internal/config"
	"github.com/fieldserve/dispatchboard/pkg/core/store"
	"github.com/fieldserve/dispatchboard/pkg/db"
	"github.com/fieldserve/dispatchboard/pkg/postgres"
	"github.com/fieldserve/dispatchboard/pkg/snapshot"
)

// AppContext holds the application dependencies shared across all commands.
// Fields are populated by the root command's PersistentPreRunE before any
// subcommand runs.
type AppContext struct {
	Cfg       *config.Config
	Source    db.SourceStore
	Store     *store.Store
	Snapshots snapshot.Store
	Database  *postgres.DB
	Logger    *zap.Logger
	Ctx       context.Context
}
