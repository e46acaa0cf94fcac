package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/fieldserve/dispatchboard/pkg/core/model"
)

// TechniciansCmd creates the technicians command
func TechniciansCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "technicians",
		Short: "List technicians on the board",
		RunE: func(cmd *cobra.Command, args []string) error {
			activeOnly, _ := cmd.Flags().GetBool("active")

			technicians := app.Store.Technicians()

			list := make([]model.Technician, 0, len(technicians))
			withLogin := 0
			for _, t := range technicians {
				if t.UserID != "" {
					withLogin++
				}
				if activeOnly && !t.IsActive {
					continue
				}
				list = append(list, t)
			}
			sort.Slice(list, func(i, j int) bool { return list[i].DisplayName < list[j].DisplayName })

			fmt.Printf("\n👷 Technicians (%d", len(list))
			if activeOnly {
				fmt.Printf(" active")
			}
			fmt.Printf(")\n\n")

			for _, t := range list {
				marker := "🟢"
				if t.Status == model.StatusOffline {
					marker = "⚫"
				}
				fmt.Printf("  %s %-25s %-12s member:%s", marker, t.DisplayName, t.Status, t.TeamMemberID)
				if t.UserID != "" {
					fmt.Printf(" user:%s", t.UserID)
				}
				if t.Department != "" {
					fmt.Printf("  [%s]", t.Department)
				}
				fmt.Println()
			}

			// Index sizes are a data-quality signal: fewer user ids than
			// canonical ids means members without login accounts
			fmt.Printf("\nDirectory: %d total, %d with login accounts\n", len(technicians), withLogin)
			return nil
		},
	}

	cmd.Flags().Bool("active", false, "Only show active technicians")
	return cmd
}
