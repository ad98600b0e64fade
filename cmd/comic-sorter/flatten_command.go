package main

import (
	"github.com/spf13/cobra"
)

func newFlattenCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flatten [dir]",
		Short: "Move every nested comic file up into the directory and drop empty folders",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp(cmd)
			if err != nil {
				return err
			}
			var dir string
			if len(args) == 1 {
				dir = args[0]
			}
			summary, err := app.Flatten(cmd.Context(), dir, app.Config().DryRun)
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
	return cmd
}
