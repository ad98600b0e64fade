package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vrsandeep/comic-sorter/internal/series"
)

func newConsolidateCommand(ctx *commandContext) *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "consolidate [root]",
		Short: "Find near-duplicate series folders and series hidden in other folders",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp(cmd)
			if err != nil {
				return err
			}
			var root string
			if len(args) == 1 {
				root = args[0]
			}
			report, err := app.Consolidate(root)
			if err != nil {
				return err
			}

			if !apply {
				if ctx.flags.json {
					return writeJSON(cmd, report)
				}
				printConsolidation(cmd, report.Merges, report.Hidden)
				return nil
			}

			summary, err := app.ApplyConsolidation(cmd.Context(), report, app.Config().DryRun)
			if ctx.flags.json {
				if jsonErr := writeJSON(cmd, summary); jsonErr != nil {
					return jsonErr
				}
			} else {
				printSummary(cmd, summary)
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&apply, "apply", false, "Move files as suggested")
	return cmd
}

func printConsolidation(cmd *cobra.Command, merges []series.FolderMerge, hidden []series.HiddenSeries) {
	out := cmd.OutOrStdout()
	if len(merges) == 0 && len(hidden) == 0 {
		fmt.Fprintln(out, "Nothing to consolidate.")
		return
	}
	if len(merges) > 0 {
		rows := make([][]string, 0, len(merges))
		for _, m := range merges {
			rows = append(rows, []string{m.Target, strings.Join(m.Sources, "\n")})
		}
		fmt.Fprintln(out, renderTable(out, []string{"Merge into", "From"}, rows, nil))
	}
	if len(hidden) > 0 {
		rows := [][]string{}
		for _, h := range hidden {
			for _, g := range h.Groups {
				rows = append(rows, []string{h.Folder, g.Name, fmt.Sprint(g.FileCount())})
			}
		}
		fmt.Fprintln(out, renderTable(out, []string{"Folder", "Hidden series", "Files"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight}))
	}
}
