package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUndoCommand(ctx *commandContext) *cobra.Command {
	var list bool
	var limit int

	cmd := &cobra.Command{
		Use:   "undo [run-id]",
		Short: "Move the files of an organize run back where they came from",
		Long:  "Reverses the most recent run that has not been undone, or the given run. Files whose original path is taken again are left in place.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp(cmd)
			if err != nil {
				return err
			}

			if list {
				runs, err := app.Runs(limit)
				if err != nil {
					return err
				}
				if ctx.flags.json {
					return writeJSON(cmd, runs)
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No runs recorded.")
					return nil
				}
				rows := make([][]string, 0, len(runs))
				for _, r := range runs {
					state := ""
					if r.Undone {
						state = "undone"
					}
					rows = append(rows, []string{r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Root, state})
				}
				fmt.Fprintln(out, renderTable(out, []string{"Run", "Started", "Root", "State"}, rows, nil))
				return nil
			}

			var runID string
			if len(args) == 1 {
				runID = args[0]
			}
			summary, err := app.Undo(cmd.Context(), runID)
			if err != nil {
				return err
			}
			if ctx.flags.json {
				return writeJSON(cmd, summary)
			}
			printSummary(cmd, summary)
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "List recent runs instead of undoing")
	cmd.Flags().IntVar(&limit, "limit", 20, "Number of runs to list")
	return cmd
}
