package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fieldserve/dispatchboard/pkg/core/services"
)

// MoveJobCmd creates the moveJob command
func MoveJobCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "moveJob",
		Short: "Retime and optionally reassign a job",
		Long:  "Move a job to a new window and/or technician in one atomic update. The conflict check runs first (excluding the job itself); use --force to book over a conflict.",
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID, _ := cmd.Flags().GetString("job")
			technicianID, _ := cmd.Flags().GetString("technician")
			startStr, _ := cmd.Flags().GetString("start")
			endStr, _ := cmd.Flags().GetString("end")
			force, _ := cmd.Flags().GetBool("force")

			start, end, err := parseWindow(startStr, endStr)
			if err != nil {
				return err
			}

			job, ok := app.Store.Job(jobID)
			if !ok {
				return fmt.Errorf("job %s not found", jobID)
			}

			targetTech := technicianID
			if targetTech == "" {
				targetTech = job.TechnicianID
			}

			// Advisory check before the mutation; the store itself never
			// rejects conflicting writes
			if targetTech != "" {
				result := app.Store.CheckConflict(targetTech, start, end, jobID)
				if result.Conflicts && !force {
					fmt.Printf("\n❌ Move blocked: conflicts with job %s (use --force to override)\n", result.ConflictingJobID)
					return fmt.Errorf("booking conflict with job %s", result.ConflictingJobID)
				}
				if result.Conflicts {
					fmt.Printf("\n⚠️  Moving despite conflict with job %s\n", result.ConflictingJobID)
				}
			}

			moved, ok := app.Store.MoveJob(jobID, technicianID, start, end)
			if !ok {
				return fmt.Errorf("job %s not found", jobID)
			}

			app.Logger.Info("job moved",
				zap.String("job_id", jobID),
				zap.String("technician_id", moved.TechnicianID),
				zap.Time("start", moved.StartTime),
				zap.Time("end", moved.EndTime))

			fmt.Printf("\n✅ Moved job %s to %s – %s", jobID,
				moved.StartTime.Format(timeLayout), moved.EndTime.Format(timeLayout))
			if moved.TechnicianID != "" {
				fmt.Printf(" (technician %s)", moved.TechnicianID)
			}
			fmt.Println()

			if _, err := services.SaveSnapshot(app.Ctx, app.Snapshots, app.Store, app.Logger); err != nil {
				app.Logger.Warn("failed to persist snapshot after move", zap.Error(err))
			}
			return nil
		},
	}

	cmd.Flags().String("job", "", "Job id (required)")
	cmd.Flags().String("technician", "", "New technician id (empty keeps the current assignee)")
	cmd.Flags().String("start", "", "New start time (required)")
	cmd.Flags().String("end", "", "New end time (required)")
	cmd.Flags().Bool("force", false, "Move even if a conflict is detected")
	cmd.MarkFlagRequired("job")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")
	return cmd
}
