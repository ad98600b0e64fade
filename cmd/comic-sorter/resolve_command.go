package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vrsandeep/comic-sorter/internal/library"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <file|dir>...",
		Short: "Show the metadata resolved for comic files without moving them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp(cmd)
			if err != nil {
				return err
			}
			paths, err := expandPaths(args)
			if err != nil {
				return err
			}
			records, err := app.ResolveFiles(cmd.Context(), paths, nil)
			if ctx.flags.json {
				if jsonErr := writeJSON(cmd, records); jsonErr != nil {
					return jsonErr
				}
			} else {
				printRecords(cmd, records)
			}
			return err
		},
	}
	return cmd
}

// expandPaths replaces every directory argument with the comic files below
// it. File arguments are kept as given, whatever their extension.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		files, err := library.Scan(arg, true)
		if err != nil {
			return nil, err
		}
		paths = append(paths, files...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no comic files found")
	}
	return paths, nil
}
