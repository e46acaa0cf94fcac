package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldserve/dispatchboard/pkg/core/services"
)

// SaveSnapshotCmd creates the saveSnapshot command
func SaveSnapshotCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "saveSnapshot",
		Short: "Write the current board to the configured snapshot backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := services.SaveSnapshot(app.Ctx, app.Snapshots, app.Store, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\n✅ Snapshot %s saved (%d technicians, %d jobs)\n",
				snap.ID, len(snap.Technicians), len(snap.Jobs))
			return nil
		},
	}
}

// LoadSnapshotCmd creates the loadSnapshot command
func LoadSnapshotCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "loadSnapshot",
		Short: "Rehydrate the board from the latest snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, found, err := services.LoadSnapshot(app.Ctx, app.Snapshots, app.Store, app.Logger)
			if err != nil {
				return err
			}
			if !found {
				fmt.Println("\nNo snapshot available.")
				return nil
			}

			fmt.Printf("\n✅ Restored snapshot %s from %s (%d technicians, %d jobs)\n",
				snap.ID, snap.SavedAt.Format("2006-01-02 15:04:05"),
				len(snap.Technicians), len(snap.Jobs))
			return nil
		},
	}
}
