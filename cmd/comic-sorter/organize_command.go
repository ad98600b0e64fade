package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vrsandeep/comic-sorter/internal/core"
	"github.com/vrsandeep/comic-sorter/internal/models"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Resolve, group and move inbox files into the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp(cmd)
			if err != nil {
				return err
			}
			opts := core.OrganizeOptions{
				Input:  input,
				Output: output,
				DryRun: app.Config().DryRun,
			}
			if !ctx.flags.json {
				opts.Progress = func(index, total int, rec *models.ComicMetadata) {
					fmt.Fprintf(cmd.ErrOrStderr(), "[%d/%d] %s -> %s\n", index+1, total, rec.OriginalFilename, rec.SuggestedFolder)
				}
			}

			report, err := app.Organize(cmd.Context(), opts)
			if report != nil && ctx.flags.json {
				if jsonErr := writeJSON(cmd, report); jsonErr != nil {
					return jsonErr
				}
			} else if report != nil {
				printSummary(cmd, report.Summary)
			}
			if err != nil {
				return err
			}
			if failed := report.Summary.Failed(); len(failed) > 0 {
				return fmt.Errorf("%d file(s) could not be moved", len(failed))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Inbox directory (default library.input)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Library root (default library.output)")
	return cmd
}
