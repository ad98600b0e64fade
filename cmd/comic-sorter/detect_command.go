package main

import (
	"github.com/spf13/cobra"
)

func newDetectCommand(ctx *commandContext) *cobra.Command {
	var withMetadata bool

	cmd := &cobra.Command{
		Use:   "detect [dir]",
		Short: "Group files into series by name similarity",
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
			groups, err := app.DetectSeries(cmd.Context(), dir, withMetadata)
			if err != nil {
				return err
			}
			if ctx.flags.json {
				return writeJSON(cmd, groups)
			}
			printGroups(cmd, groups)
			return nil
		},
	}
	cmd.Flags().BoolVar(&withMetadata, "metadata", false, "Resolve files first and prefer series names from metadata")
	return cmd
}
