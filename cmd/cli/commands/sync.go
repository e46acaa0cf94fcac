package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fieldserve/dispatchboard/pkg/core/model"
	"github.com/fieldserve/dispatchboard/pkg/core/services"
)

// SyncCmd creates the sync command
func SyncCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile the board with the scheduling source of truth",
		Long:  "Fetch team members and schedules from the database, rebuild the technician directory and job list, and replace the in-memory board atomically",
		RunE: func(cmd *cobra.Command, args []string) error {
			noSave, _ := cmd.Flags().GetBool("no-save")

			hours := model.WorkingHours{
				Start: app.Cfg.WorkingHours.Start,
				End:   app.Cfg.WorkingHours.End,
			}
			result, err := services.Sync(app.Ctx, app.Source, app.Store, hours, app.Logger)
			if err != nil {
				fmt.Printf("❌ Sync failed: %v\n", err)
				fmt.Println("Previous board state is unchanged.")
				return err
			}

			fmt.Printf("\n✅ Sync complete\n\n")
			fmt.Printf("Technicians:    %d\n", result.TechnicianCount)
			fmt.Printf("Jobs:           %d\n", result.JobCount)
			fmt.Printf("Unassigned:     %d\n", result.UnassignedJobs)
			fmt.Printf("Synced at:      %s\n", result.SyncedAt.Format("2006-01-02 15:04:05 MST"))

			if noSave {
				return nil
			}
			if _, err := services.SaveSnapshot(app.Ctx, app.Snapshots, app.Store, app.Logger); err != nil {
				app.Logger.Warn("failed to persist snapshot after sync", zap.Error(err))
			}
			return nil
		},
	}

	cmd.Flags().Bool("no-save", false, "Skip writing a snapshot after the sync")
	return cmd
}
