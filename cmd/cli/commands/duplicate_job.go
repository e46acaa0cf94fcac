package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fieldserve/dispatchboard/pkg/core/services"
)

// DuplicateJobCmd creates the duplicateJob command
func DuplicateJobCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "duplicateJob",
		Short: "Clone a job under a new id with a shifted window",
		Long:  "Copy a job, keeping its assignments and details, with the window shifted by the given offset and the status reset to scheduled",
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID, _ := cmd.Flags().GetString("job")
			shiftStr, _ := cmd.Flags().GetString("shift")

			shift, err := time.ParseDuration(shiftStr)
			if err != nil {
				return fmt.Errorf("invalid shift %q (want a duration like 24h or 168h): %w", shiftStr, err)
			}

			clone, ok := app.Store.DuplicateJob(jobID, shift)
			if !ok {
				return fmt.Errorf("job %s not found", jobID)
			}

			app.Logger.Info("job duplicated",
				zap.String("source_job_id", jobID),
				zap.String("new_job_id", clone.ID))

			fmt.Printf("\n✅ Duplicated job %s → %s\n", jobID, clone.ID)
			fmt.Printf("   %s – %s, status %s\n",
				clone.StartTime.Format(timeLayout), clone.EndTime.Format(timeLayout), clone.Status)

			if _, err := services.SaveSnapshot(app.Ctx, app.Snapshots, app.Store, app.Logger); err != nil {
				app.Logger.Warn("failed to persist snapshot after duplicate", zap.Error(err))
			}
			return nil
		},
	}

	cmd.Flags().String("job", "", "Job id (required)")
	cmd.Flags().String("shift", "168h", "Duration to shift the clone's window by")
	cmd.MarkFlagRequired("job")
	return cmd
}
