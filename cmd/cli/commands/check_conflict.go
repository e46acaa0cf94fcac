package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// timeLayout is the wall-clock format accepted by booking flags
const timeLayout = "2006-01-02T15:04"

func parseWindow(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(timeLayout, startStr)
	if err != nil {
		start, err = time.Parse(time.RFC3339, startStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start time %q (want %s): %w", startStr, timeLayout, err)
		}
	}
	end, err := time.Parse(timeLayout, endStr)
	if err != nil {
		end, err = time.Parse(time.RFC3339, endStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end time %q (want %s): %w", endStr, timeLayout, err)
		}
	}
	return start, end, nil
}

// CheckConflictCmd creates the checkConflict command
func CheckConflictCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkConflict",
		Short: "Check whether a booking window conflicts with a technician's schedule",
		Long:  "Test a candidate [start, end) interval against every job booked for the technician, in any role. Back-to-back bookings are not conflicts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			technicianID, _ := cmd.Flags().GetString("technician")
			startStr, _ := cmd.Flags().GetString("start")
			endStr, _ := cmd.Flags().GetString("end")
			excludeJobID, _ := cmd.Flags().GetString("exclude")

			start, end, err := parseWindow(startStr, endStr)
			if err != nil {
				return err
			}

			result := app.Store.CheckConflict(technicianID, start, end, excludeJobID)
			if !result.Conflicts {
				fmt.Printf("\n✅ No conflict: technician %s is free %s – %s\n",
					technicianID, start.Format(timeLayout), end.Format(timeLayout))
				return nil
			}

			fmt.Printf("\n❌ Conflict with job %s\n", result.ConflictingJobID)
			if job, ok := app.Store.Job(result.ConflictingJobID); ok {
				fmt.Printf("   %s (%s – %s)\n", job.Title,
					job.StartTime.Format(timeLayout), job.EndTime.Format(timeLayout))
			}
			return nil
		},
	}

	cmd.Flags().String("technician", "", "Technician id (required)")
	cmd.Flags().String("start", "", "Candidate start time (required)")
	cmd.Flags().String("end", "", "Candidate end time (required)")
	cmd.Flags().String("exclude", "", "Job id to exclude, for move/edit previews")
	cmd.MarkFlagRequired("technician")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")
	return cmd
}
