package main

import (
	"fmt"

	"recmgr/internal/app"
	"recmgr/internal/recorded"

	"github.com/spf13/cobra"
)

func printReport(title string, report *recorded.SweepReport) {
	fmt.Println(renderTable(
		[]string{title, "Count"},
		[][]string{
			{"Rows removed", fmt.Sprint(report.RowsRemoved)},
			{"Files removed", fmt.Sprint(report.FilesRemoved)},
			{"Directories removed", fmt.Sprint(report.DirectoriesRemoved)},
			{"Directories kept", fmt.Sprint(report.DirectoriesKept)},
			{"Failures", fmt.Sprint(report.Failures.Len())},
		},
		[]columnAlignment{alignLeft, alignRight},
	))
	for _, f := range report.Failures.Items() {
		fmt.Printf("  %v\n", f)
	}
}

func runVideoSweep(a *app.App) error {
	report, err := a.ReconcileVideoFiles()
	if err != nil {
		return err
	}
	printReport("Video files", report)
	return nil
}

func runDropLogSweep(a *app.App) error {
	report, err := a.ReconcileDropLogs()
	if err != nil {
		return err
	}
	printReport("Drop logs", report)
	return nil
}

func runHistoryCleanup(a *app.App) error {
	removed, err := a.HistoryCleanup()
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d expired history row(s)\n", removed)
	return nil
}

// newCleanupCmd builds a cleanup subcommand that runs steps within one journaled operation.
func newCleanupCmd(use, short, operation string, steps ...func(*app.App) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirm(cmd, "Remove untracked files and stale rows?")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Aborted.")
				return nil
			}

			a, err := newApp(operation, args)
			if err != nil {
				return err
			}
			defer a.Close()

			for _, step := range steps {
				if err := step(a); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Run without asking")
	return cmd
}

// cleanup command
var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Reconcile the record store with the filesystem",
}

func init() {
	cleanupCmd.AddCommand(newCleanupCmd("videos", "Remove stale video file rows and untracked files", "ReconcileVideoFiles", runVideoSweep))
	cleanupCmd.AddCommand(newCleanupCmd("droplogs", "Remove stale drop log rows and untracked drop logs", "ReconcileDropLogs", runDropLogSweep))
	cleanupCmd.AddCommand(newCleanupCmd("history", "Remove expired recorded history", "HistoryCleanup", runHistoryCleanup))
	cleanupCmd.AddCommand(newCleanupCmd("all", "Run every cleanup", "Cleanup", runVideoSweep, runDropLogSweep, runHistoryCleanup))
}
