package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fieldserve/dispatchboard/pkg/core/model"
	"github.com/fieldserve/dispatchboard/pkg/core/services"
	"github.com/fieldserve/dispatchboard/pkg/core/store"
)

// BulkUpdateCmd creates the bulkUpdate command
func BulkUpdateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bulkUpdate",
		Short: "Apply one change to several jobs at once",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, _ := cmd.Flags().GetStringSlice("jobs")
			statusStr, _ := cmd.Flags().GetString("status")
			notes, _ := cmd.Flags().GetString("notes")

			var patch store.JobPatch
			if statusStr != "" {
				status := model.JobStatus(statusStr)
				if !status.IsValid() {
					return fmt.Errorf("invalid status %q", statusStr)
				}
				patch.Status = &status
			}
			if cmd.Flags().Changed("notes") {
				patch.Notes = &notes
			}
			if patch.Status == nil && patch.Notes == nil {
				return fmt.Errorf("nothing to update: pass --status and/or --notes")
			}

			updated := app.Store.BulkUpdateJobs(ids, patch)
			app.Logger.Info("bulk update", zap.Int("requested", len(ids)), zap.Int("updated", updated))
			fmt.Printf("\n✅ Updated %d of %d jobs\n", updated, len(ids))

			if _, err := services.SaveSnapshot(app.Ctx, app.Snapshots, app.Store, app.Logger); err != nil {
				app.Logger.Warn("failed to persist snapshot after bulk update", zap.Error(err))
			}
			return nil
		},
	}

	cmd.Flags().StringSlice("jobs", nil, "Comma-separated job ids (required)")
	cmd.Flags().String("status", "", "New status for all listed jobs")
	cmd.Flags().String("notes", "", "New notes for all listed jobs")
	cmd.MarkFlagRequired("jobs")
	return cmd
}

// BulkDeleteCmd creates the bulkDelete command
func BulkDeleteCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bulkDelete",
		Short: "Delete several jobs at once",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, _ := cmd.Flags().GetStringSlice("jobs")

			deleted := app.Store.BulkDeleteJobs(ids)
			app.Logger.Info("bulk delete", zap.Int("requested", len(ids)), zap.Int("deleted", deleted))
			fmt.Printf("\n✅ Deleted %d of %d jobs\n", deleted, len(ids))

			if _, err := services.SaveSnapshot(app.Ctx, app.Snapshots, app.Store, app.Logger); err != nil {
				app.Logger.Warn("failed to persist snapshot after bulk delete", zap.Error(err))
			}
			return nil
		},
	}

	cmd.Flags().StringSlice("jobs", nil, "Comma-separated job ids (required)")
	cmd.MarkFlagRequired("jobs")
	return cmd
}
