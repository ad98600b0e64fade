package main

import (
	"github.com/spf13/cobra"

	"github.com/vrsandeep/comic-sorter/internal/core"
)

func newFilterCommand(ctx *commandContext) *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Sort inbox files with the manual regex filters from filters.path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp(cmd)
			if err != nil {
				return err
			}
			summary, err := app.Filter(cmd.Context(), core.OrganizeOptions{
				Input:  input,
				Output: output,
				DryRun: app.Config().DryRun,
			})
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
	cmd.Flags().StringVarP(&input, "input", "i", "", "Inbox directory (default library.input)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Library root (default library.output)")
	return cmd
}
