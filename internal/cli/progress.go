package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rpggio/activation/internal/domain/progress"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show a workspace's activation progress",
	Long: `Show which of the five lifecycle steps a workspace has completed, the
recommended next action, and today's nudge if one applies.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := loadReport(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, report)
		}
		printReport(out, report)
		return nil
	},
}

var nudgeCmd = &cobra.Command{
	Use:   "nudge",
	Short: "Show today's nudge for a workspace",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := loadReport(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, map[string]any{
				"workspace_id":     report.WorkspaceID,
				"days_since_start": report.Snapshot.DaysSinceStart,
				"nudge":            report.Nudge,
			})
		}
		if report.Nudge == nil {
			fmt.Fprintln(out, "No nudge today.")
			return nil
		}
		fmt.Fprintf(out, "Day %d: %s\n", report.Nudge.Day, report.Nudge.Message)
		return nil
	},
}

func loadReport(cmd *cobra.Command) (*progress.Report, error) {
	app, err := openApp(false)
	if err != nil {
		return nil, err
	}
	defer app.DB.Close()

	ctx := commandContext(cmd)
	ws, err := app.Workspaces.Lookup(ctx, tenantID, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace: %w", err)
	}
	report, err := app.Progress.Report(ctx, tenantID, ws.ID)
	if err != nil {
		return nil, fmt.Errorf("deriving progress: %w", err)
	}
	return report, nil
}

func printReport(out io.Writer, report *progress.Report) {
	snap := report.Snapshot
	fmt.Fprintf(out, "Workspace %s: %d/%d steps complete\n\n", report.WorkspaceID, snap.CompletedCount, len(report.Steps))
	for _, step := range report.Steps {
		mark := " "
		if step.Complete {
			mark = "x"
		}
		suffix := ""
		if step.Next {
			suffix = "  <- next"
		}
		fmt.Fprintf(out, "  [%s] %s%s\n", mark, step.Label, suffix)
	}
	fmt.Fprintln(out)

	if snap.StartedAt == nil {
		fmt.Fprintln(out, "  Cycle not started")
	} else {
		fmt.Fprintf(out, "  %-16s %s\n", "Started:", snap.StartedAt.Format("2006-01-02"))
		fmt.Fprintf(out, "  %-16s %d\n", "Day:", snap.DaysSinceStart)
	}
	if report.DaysRemaining != nil {
		fmt.Fprintf(out, "  %-16s %d\n", "Days remaining:", *report.DaysRemaining)
	}
	fmt.Fprintf(out, "  %-16s %s (%s)\n", "Next action:", report.NextAction.Label, report.NextAction.Target)
	if report.Nudge != nil {
		fmt.Fprintf(out, "  %-16s %s\n", "Nudge:", report.Nudge.Message)
	}
}

func printJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("formatting JSON: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}

func init() {
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(nudgeCmd)
}
