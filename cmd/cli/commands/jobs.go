package commands

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fieldserve/dispatchboard/pkg/core/model"
)

// JobsCmd creates the jobs command
func JobsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List jobs on the board",
		RunE: func(cmd *cobra.Command, args []string) error {
			technicianID, _ := cmd.Flags().GetString("technician")
			unassigned, _ := cmd.Flags().GetBool("unassigned")
			showOccurrences, _ := cmd.Flags().GetBool("occurrences")

			jobs := app.Store.Jobs()

			list := make([]model.Job, 0, len(jobs))
			for _, j := range jobs {
				if technicianID != "" && !j.AssignedTo(technicianID) {
					continue
				}
				if unassigned && !j.IsUnassigned {
					continue
				}
				list = append(list, j)
			}
			sort.Slice(list, func(i, j int) bool { return list[i].StartTime.Before(list[j].StartTime) })

			fmt.Printf("\n📅 Jobs (%d)\n\n", len(list))

			horizon := time.Now().AddDate(0, 0, 7*app.Cfg.OccurrenceHorizonWeeks)
			for _, j := range list {
				window := fmt.Sprintf("%s – %s",
					j.StartTime.Format("Mon 2006-01-02 15:04"),
					j.EndTime.Format("15:04"))
				if j.AllDay {
					window = j.StartTime.Format("Mon 2006-01-02") + " (all day)"
				}

				assignee := "UNASSIGNED"
				if !j.IsUnassigned {
					assignee = j.Assignments[0].DisplayName
					if len(j.Assignments) > 1 {
						assignee = fmt.Sprintf("%s +%d crew", assignee, len(j.Assignments)-1)
					}
				}

				fmt.Printf("  %-10s %-32s %-12s %s  →  %s\n", j.ID, window, j.Status, j.Customer.Name, assignee)

				if showOccurrences {
					// A configured override rule beats the job's own
					// recurrence and applies even to one-off jobs
					var occurrences []time.Time
					var err error
					if ruleText, ok := app.Cfg.RecurrenceRuleFor(j.ID); ok {
						occurrences, err = model.OccurrencesFromRule(ruleText, j, horizon)
					} else if j.Recurrence != nil {
						occurrences, err = model.Occurrences(j, horizon)
					}
					if err != nil {
						app.Logger.Warn("failed to expand recurrence",
							zap.String("job_id", j.ID), zap.Error(err))
						continue
					}
					for _, o := range occurrences {
						if o.Equal(j.StartTime) {
							continue
						}
						fmt.Printf("             ↻ %s\n", o.Format("Mon 2006-01-02 15:04"))
					}
				}
			}

			if last := app.Store.LastSync(); last != nil {
				fmt.Printf("\nLast sync: %s\n", last.Format("2006-01-02 15:04:05 MST"))
			}
			if msg := app.Store.LastError(); msg != "" {
				fmt.Printf("⚠️  Last sync error: %s\n", msg)
			}
			return nil
		},
	}

	cmd.Flags().String("technician", "", "Only show jobs booked for this technician id")
	cmd.Flags().Bool("unassigned", false, "Only show jobs with no assignments")
	cmd.Flags().Bool("occurrences", false, "Expand recurring jobs into upcoming occurrences")
	return cmd
}
